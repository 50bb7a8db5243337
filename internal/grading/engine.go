package grading

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mind-engage/mindengage-quiz/internal/logger"
)

// ErrMissingUser is returned when Grade is called without a resolved user.
var ErrMissingUser = errors.New("grading: missing user")

// Q is the minimal view of a question needed for grading.
type Q struct {
	ID          int64
	AnswerIndex int
}

// Answer is one submitted {id, choice} pair.
type Answer struct {
	QuestionID int64 `json:"id"`
	Choice     int   `json:"choice"`
}

// Result is the outcome of grading one submission.
type Result struct {
	CorrectCount  int  `json:"correct_count"`
	TotalGraded   int  `json:"total_graded"`
	ScoreAdvanced bool `json:"score_advanced"`
}

// KeySource returns answer keys for the given ids. Ids with no stored
// question are omitted; that is not an error.
type KeySource interface {
	AnswerKeys(ctx context.Context, ids []int64) ([]Q, error)
}

// ScoreStore performs the atomic conditional raise.
type ScoreStore interface {
	RaiseIfGreater(ctx context.Context, username string, candidate int) (bool, error)
}

// ScoreMirror receives accepted high scores (e.g. a Redis leaderboard).
type ScoreMirror interface {
	Publish(ctx context.Context, username string, score int) error
}

type Option func(*Engine)

func WithMirror(m ScoreMirror) Option    { return func(e *Engine) { e.mirror = m } }
func WithLogger(l *logger.Logger) Option { return func(e *Engine) { e.log = l } }

type Engine struct {
	keys   KeySource
	scores ScoreStore
	mirror ScoreMirror
	log    *logger.Logger
}

func NewEngine(keys KeySource, scores ScoreStore, opts ...Option) *Engine {
	e := &Engine{keys: keys, scores: scores, log: logger.Nop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Grade scores answers for username and offers the correct count to the
// score store as a new high score. Duplicate question ids resolve to the
// last submitted choice. An empty submission touches no storage.
func (e *Engine) Grade(ctx context.Context, username string, answers []Answer) (Result, error) {
	if username == "" {
		return Result{}, ErrMissingUser
	}

	picked := make(map[int64]int, len(answers))
	for _, a := range answers {
		picked[a.QuestionID] = a.Choice
	}
	if len(picked) == 0 {
		return Result{}, nil
	}

	ids := make([]int64, 0, len(picked))
	for id := range picked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	keys, err := e.keys.AnswerKeys(ctx, ids)
	if err != nil {
		return Result{}, fmt.Errorf("load answer keys: %w", err)
	}

	var res Result
	graded := make(map[int64]struct{}, len(keys))
	for _, k := range keys {
		choice, ok := picked[k.ID]
		if !ok {
			continue
		}
		if _, dup := graded[k.ID]; dup {
			continue
		}
		graded[k.ID] = struct{}{}
		res.TotalGraded++
		if choice == k.AnswerIndex {
			res.CorrectCount++
		}
	}

	advanced, err := e.scores.RaiseIfGreater(ctx, username, res.CorrectCount)
	if err != nil {
		return Result{}, fmt.Errorf("raise high score: %w", err)
	}
	res.ScoreAdvanced = advanced

	if advanced && e.mirror != nil {
		if err := e.mirror.Publish(ctx, username, res.CorrectCount); err != nil {
			e.log.Warn("score mirror publish failed", "username", username, "score", res.CorrectCount, "error", err)
		}
	}
	return res, nil
}
