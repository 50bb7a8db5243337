package quiz

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

type memoryStore struct {
	mu        sync.RWMutex
	questions map[int64]Question
	nextQID   int64
	users     map[string]User
	nextUID   int64
}

// NewMemoryStore returns a process-local Store. It has the same semantics
// as SQLStore and is used for DB_DRIVER=memory and in tests.
func NewMemoryStore() Store {
	return &memoryStore{
		questions: map[int64]Question{},
		users:     map[string]User{},
	}
}

func (m *memoryStore) Ping(context.Context) error { return nil }

func (m *memoryStore) Insert(_ context.Context, q Question) (Question, error) {
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextQID++
	q.ID = m.nextQID
	q.Choices = append([]string(nil), q.Choices...)
	m.questions[q.ID] = q
	return q, nil
}

func (m *memoryStore) BulkReplace(_ context.Context, qs []Question) error {
	if err := validateBatch(qs); err != nil {
		return err
	}
	// stage the new bank, then swap under the lock
	staged := make(map[int64]Question, len(qs))
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.nextQID
	for _, q := range qs {
		next++
		q.ID = next
		q.Choices = append([]string(nil), q.Choices...)
		staged[q.ID] = q
	}
	m.questions = staged
	m.nextQID = next
	return nil
}

func (m *memoryStore) FetchAll(context.Context) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Question, 0, len(m.questions))
	for _, q := range m.questions {
		out = append(out, cloneQuestion(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) FetchByIDs(_ context.Context, ids []int64) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[int64]struct{}, len(ids))
	out := make([]Question, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if q, ok := m.questions[id]; ok {
			out = append(out, cloneQuestion(q))
		}
	}
	return out, nil
}

func (m *memoryStore) AnswerKeys(ctx context.Context, ids []int64) ([]grading.Q, error) {
	qs, err := m.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return answerKeys(qs), nil
}

func (m *memoryStore) CreateUser(_ context.Context, username, passwordHash string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; ok {
		return User{}, ErrUserExists
	}
	m.nextUID++
	u := User{ID: m.nextUID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.users[username] = u
	return u, nil
}

func (m *memoryStore) GetUser(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *memoryStore) RaiseIfGreater(_ context.Context, username string, candidate int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return false, ErrUserNotFound
	}
	if candidate <= u.HighScore {
		return false, nil
	}
	u.HighScore = candidate
	m.users[username] = u
	return true, nil
}

func (m *memoryStore) Leaderboard(context.Context) ([]LeaderboardEntry, error) {
	m.mu.RLock()
	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	m.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		if users[i].HighScore != users[j].HighScore {
			return users[i].HighScore > users[j].HighScore
		}
		return users[i].ID < users[j].ID
	})
	out := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		out[i] = LeaderboardEntry{Username: u.Username, Score: u.HighScore}
	}
	return out, nil
}

func cloneQuestion(q Question) Question {
	q.Choices = append([]string(nil), q.Choices...)
	return q
}
