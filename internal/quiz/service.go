package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/mind-engage/mindengage-quiz/internal/events"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
	"github.com/mind-engage/mindengage-quiz/internal/logger"
)

// Generator supplies procedural questions for seeding.
type Generator interface {
	GenerateBatch(n int) []Question
}

type ServiceOption func(*Service)

func WithMaxQuestions(n int) ServiceOption      { return func(s *Service) { s.maxQuestions = n } }
func WithRand(r Rand) ServiceOption             { return func(s *Service) { s.rng = r } }
func WithEvents(sink events.Sink) ServiceOption { return func(s *Service) { s.events = sink } }
func WithLogger(l *logger.Logger) ServiceOption { return func(s *Service) { s.log = l } }

// WithSeed sets what SeedIfEmpty and Reseed load: the static puzzles plus
// procedural items from gen (gen may be nil).
func WithSeed(static []Question, gen Generator, procedural int) ServiceOption {
	return func(s *Service) {
		s.static = static
		s.gen = gen
		s.procedural = procedural
	}
}

// Service is the quiz core as seen by the request layer. Callers pass
// already-authenticated usernames; authorization of bank replacement is the
// caller's concern.
type Service struct {
	store  Store
	engine *grading.Engine

	maxQuestions int
	rng          Rand
	events       events.Sink
	log          *logger.Logger

	static     []Question
	gen        Generator
	procedural int
}

func NewService(store Store, engine *grading.Engine, opts ...ServiceOption) *Service {
	s := &Service{
		store:        store,
		engine:       engine,
		maxQuestions: DefaultMaxQuestions,
		rng:          globalRand{},
		log:          logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DeliveryQuestions samples an answer-free delivery set from the bank.
func (s *Service) DeliveryQuestions(ctx context.Context) ([]DeliveredQuestion, error) {
	all, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return SelectForAttempt(all, s.maxQuestions, s.rng)
}

// Grade resolves username, grades answers and conditionally raises the
// user's high score. A submission naming only unknown question ids grades
// as 0 of 0, the same as an empty one.
func (s *Service) Grade(ctx context.Context, username string, answers []SubmittedAnswer) (GradeResult, error) {
	if strings.TrimSpace(username) == "" {
		return GradeResult{}, ErrUserNotFound
	}
	if _, err := s.store.GetUser(ctx, username); err != nil {
		return GradeResult{}, err
	}
	res, err := s.engine.Grade(ctx, username, answers)
	if err != nil {
		if errors.Is(err, grading.ErrMissingUser) {
			return GradeResult{}, ErrUserNotFound
		}
		return GradeResult{}, err
	}
	if res.ScoreAdvanced {
		s.record(ctx, events.TypeHighScoreRaised, username, map[string]any{"score": res.CorrectCount, "total": res.TotalGraded})
	}
	return res, nil
}

func (s *Service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	return s.store.Leaderboard(ctx)
}

// ReplaceQuestionBank validates every record, then swaps the whole bank.
func (s *Service) ReplaceQuestionBank(ctx context.Context, in []QuestionInput) (int, error) {
	qs := make([]Question, len(in))
	for i, q := range in {
		qs[i] = q.toQuestion()
	}
	return s.replace(ctx, qs, "replace")
}

// Reseed replaces the bank with the static puzzles plus n procedural ones.
func (s *Service) Reseed(ctx context.Context, n int) (int, error) {
	return s.replace(ctx, s.seedSet(n), "reseed")
}

// SeedIfEmpty loads the configured seed set when the bank has no questions.
// It returns how many questions were stored (0 if the bank was not empty).
func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	all, err := s.store.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(all) > 0 {
		return 0, nil
	}
	return s.replace(ctx, s.seedSet(s.procedural), "seed")
}

// Register creates a user with a zero high score. Hashing the password is
// the caller's job.
func (s *Service) Register(ctx context.Context, username, passwordHash string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrInvalidUsername
	}
	return s.store.CreateUser(ctx, username, passwordHash)
}

func (s *Service) User(ctx context.Context, username string) (User, error) {
	return s.store.GetUser(ctx, username)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) seedSet(n int) []Question {
	qs := make([]Question, 0, len(s.static)+n)
	qs = append(qs, s.static...)
	if s.gen != nil && n > 0 {
		qs = append(qs, s.gen.GenerateBatch(n)...)
	}
	return qs
}

func (s *Service) replace(ctx context.Context, qs []Question, reason string) (int, error) {
	if err := validateBatch(qs); err != nil {
		return 0, err
	}
	if err := s.store.BulkReplace(ctx, qs); err != nil {
		return 0, err
	}
	s.log.Info("question bank replaced", "reason", reason, "total", len(qs))
	s.record(ctx, events.TypeQuestionBankReplaced, "bank", map[string]any{"total": len(qs), "reason": reason})
	return len(qs), nil
}

func (s *Service) record(ctx context.Context, typ, key string, data any) {
	if s.events == nil {
		return
	}
	e, err := events.New(typ, key, data)
	if err == nil {
		err = s.events.Append(ctx, e)
	}
	if err != nil {
		s.log.Warn("event append failed", "type", typ, "key", key, "error", err)
	}
}
