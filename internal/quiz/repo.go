package quiz

import (
	"context"

	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

// QuestionStore is the durable question bank.
type QuestionStore interface {
	Insert(ctx context.Context, q Question) (Question, error)
	// BulkReplace discards the bank and stores qs in its place. It is
	// all-or-nothing: on error the prior bank is intact.
	BulkReplace(ctx context.Context, qs []Question) error
	FetchAll(ctx context.Context) ([]Question, error)
	// FetchByIDs omits ids with no stored question.
	FetchByIDs(ctx context.Context, ids []int64) ([]Question, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (User, error)
	GetUser(ctx context.Context, username string) (User, error)
}

// ScoreStore holds the per-user monotonic high score.
type ScoreStore interface {
	// RaiseIfGreater stores candidate only if it beats the current high
	// score, as one atomic step, and reports whether it did.
	RaiseIfGreater(ctx context.Context, username string, candidate int) (bool, error)
	// Leaderboard orders by score descending, then registration order.
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}

// Store is everything the service needs from one backend.
type Store interface {
	QuestionStore
	UserStore
	ScoreStore
	grading.KeySource
	Ping(ctx context.Context) error
}

// answerKeys adapts a FetchByIDs result to the grading view.
func answerKeys(qs []Question) []grading.Q {
	out := make([]grading.Q, len(qs))
	for i, q := range qs {
		out[i] = grading.Q{ID: q.ID, AnswerIndex: q.AnswerIndex}
	}
	return out
}
