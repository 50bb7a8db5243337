package quiz

import (
	"fmt"
	"time"

	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

// ChoiceCount is the fixed number of options every question carries.
const ChoiceCount = 4

// DefaultMaxQuestions caps a delivery set when no explicit limit is given.
const DefaultMaxQuestions = 50

// Question is the stored form, including the answer. It never leaves the
// process before grading; clients only see DeliveredQuestion.
type Question struct {
	ID          int64    `json:"id"`
	Prompt      string   `json:"question"`
	Choices     []string `json:"choices"`
	AnswerIndex int      `json:"answer"`
}

// DeliveredQuestion is the answer-free projection sent to players.
type DeliveredQuestion struct {
	ID      int64    `json:"id"`
	Prompt  string   `json:"question"`
	Choices []string `json:"choices"`
}

// Deliver strips the answer.
func (q Question) Deliver() DeliveredQuestion {
	choices := make([]string, len(q.Choices))
	copy(choices, q.Choices)
	return DeliveredQuestion{ID: q.ID, Prompt: q.Prompt, Choices: choices}
}

// Validate checks the 4-choice / in-range answer invariant. Choices must also
// be distinct so a choice index identifies exactly one display value.
func (q Question) Validate() error {
	if len(q.Choices) != ChoiceCount {
		return fmt.Errorf("%w: expected %d choices, got %d", ErrInvalidQuestionRecord, ChoiceCount, len(q.Choices))
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= ChoiceCount {
		return fmt.Errorf("%w: answer index %d out of range", ErrInvalidQuestionRecord, q.AnswerIndex)
	}
	seen := make(map[string]struct{}, len(q.Choices))
	for _, c := range q.Choices {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: duplicate choice %q", ErrInvalidQuestionRecord, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// QuestionInput is the bulk-replace wire shape: {question, choices[4], answer}.
type QuestionInput struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   int      `json:"answer"`
}

func (in QuestionInput) toQuestion() Question {
	return Question{Prompt: in.Question, Choices: in.Choices, AnswerIndex: in.Answer}
}

// SubmittedAnswer is one {id, choice} pair from a player.
type SubmittedAnswer = grading.Answer

// GradeResult is the ephemeral outcome of one graded submission.
type GradeResult = grading.Result

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	HighScore    int       `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// validateBatch rejects the whole batch on the first bad record.
func validateBatch(qs []Question) error {
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}
