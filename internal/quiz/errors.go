package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrNoQuestionsAvailable  = errors.New("no questions available")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("username already exists")
	ErrInvalidUsername       = errors.New("username required")
	ErrDataUnavailable       = errors.New("data unavailable")
	ErrInvalidQuestionRecord = errors.New("invalid question record")
)

// unavailable tags a storage failure so callers can match ErrDataUnavailable
// while the driver error stays inspectable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataUnavailable, op, err)
}
