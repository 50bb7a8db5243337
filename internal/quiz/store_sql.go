package quiz

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mind-engage/mindengage-quiz/internal/db"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

// fetchChunk bounds the IN list of one FetchByIDs query.
const fetchChunk = 500

// SQLStore works against both sqlite and postgres; queries use $n
// placeholders which both drivers accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore {
	return &SQLStore{db: dbh}
}

func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *SQLStore) Insert(ctx context.Context, q Question) (Question, error) {
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	id, err := insertQuestion(ctx, s.db, q)
	if err != nil {
		return Question{}, err
	}
	q.ID = id
	return q, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertQuestion(ctx context.Context, qr queryRower, q Question) (int64, error) {
	cj, err := encodeChoices(q.Choices)
	if err != nil {
		return 0, err
	}
	var id int64
	err = qr.QueryRowContext(ctx,
		`INSERT INTO questions (prompt, choices_json, answer_index) VALUES ($1,$2,$3) RETURNING id`,
		q.Prompt, cj, q.AnswerIndex).Scan(&id)
	if err != nil {
		return 0, unavailable("insert question", err)
	}
	return id, nil
}

func (s *SQLStore) BulkReplace(ctx context.Context, qs []Question) error {
	if err := validateBatch(qs); err != nil {
		return err
	}
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
			return unavailable("clear questions", err)
		}
		for _, q := range qs {
			if _, err := insertQuestion(ctx, tx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrDataUnavailable) {
		return unavailable("replace questions", err)
	}
	return err
}

func (s *SQLStore) FetchAll(ctx context.Context) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, prompt, choices_json, answer_index FROM questions ORDER BY id`)
	if err != nil {
		return nil, unavailable("fetch questions", err)
	}
	return scanQuestions(rows)
}

func (s *SQLStore) FetchByIDs(ctx context.Context, ids []int64) ([]Question, error) {
	ids = uniqueIDs(ids)
	out := make([]Question, 0, len(ids))
	for start := 0; start < len(ids); start += fetchChunk {
		end := start + fetchChunk
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]
		ph := make([]string, len(chunk))
		args := make([]any, len(chunk))
		for i, id := range chunk {
			ph[i] = "$" + strconv.Itoa(i+1)
			args[i] = id
		}
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, prompt, choices_json, answer_index FROM questions WHERE id IN (`+strings.Join(ph, ",")+`) ORDER BY id`,
			args...)
		if err != nil {
			return nil, unavailable("fetch questions by id", err)
		}
		qs, err := scanQuestions(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, qs...)
	}
	return out, nil
}

func (s *SQLStore) AnswerKeys(ctx context.Context, ids []int64) ([]grading.Q, error) {
	qs, err := s.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return answerKeys(qs), nil
}

func scanQuestions(rows *sql.Rows) ([]Question, error) {
	defer rows.Close()
	var out []Question
	for rows.Next() {
		var q Question
		var cj string
		if err := rows.Scan(&q.ID, &q.Prompt, &cj, &q.AnswerIndex); err != nil {
			return nil, unavailable("scan question", err)
		}
		choices, err := decodeChoices(cj)
		if err != nil {
			return nil, err
		}
		q.Choices = choices
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("scan questions", err)
	}
	return out, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, username, passwordHash string) (User, error) {
	now := time.Now()
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, high_score, created_at) VALUES ($1,$2,0,$3) RETURNING id`,
		username, passwordHash, now.Unix()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUserExists
		}
		return User{}, unavailable("create user", err)
	}
	return User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: time.Unix(now.Unix(), 0)}, nil
}

func (s *SQLStore) GetUser(ctx context.Context, username string) (User, error) {
	var u User
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, high_score, created_at FROM users WHERE username=$1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.HighScore, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, unavailable("get user", err)
	}
	u.CreatedAt = time.Unix(created, 0)
	return u, nil
}

// RaiseIfGreater is a single conditional UPDATE; the comparison runs inside
// the database so concurrent submissions cannot lose the larger score.
func (s *SQLStore) RaiseIfGreater(ctx context.Context, username string, candidate int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET high_score=$1 WHERE username=$2 AND high_score < $1`, candidate, username)
	if err != nil {
		return false, unavailable("raise high score", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable("raise high score", err)
	}
	if n > 0 {
		return true, nil
	}
	// nothing updated: either not greater or no such user
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, unavailable("lookup user", err)
	}
	return false, nil
}

func (s *SQLStore) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username, high_score FROM users ORDER BY high_score DESC, id ASC`)
	if err != nil {
		return nil, unavailable("leaderboard", err)
	}
	defer rows.Close()
	out := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Score); err != nil {
			return nil, unavailable("scan leaderboard", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("scan leaderboard", err)
	}
	return out, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") // sqlite
}
