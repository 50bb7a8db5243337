package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps quiz sentinels to HTTP statuses. Storage failures keep
// their driver detail out of the response body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrNoQuestionsAvailable), errors.Is(err, quiz.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quiz.ErrInvalidQuestionRecord), errors.Is(err, quiz.ErrInvalidUsername):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, quiz.ErrUserExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, quiz.ErrDataUnavailable):
		http.Error(w, "data unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

const maxBodyBytes = 4 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
