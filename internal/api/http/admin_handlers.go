package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

// PUT /api/admin/questions  { "questions": [ { "question", "choices", "answer" } ] }
func ReplaceQuestionsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Questions []quiz.QuestionInput `json:"questions"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		n, err := svc.ReplaceQuestionBank(r.Context(), req.Questions)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"total": n})
	}
}

// POST /api/admin/reseed  { "count": 100 }
func ReseedHandler(svc *quiz.Service, defaultCount int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			Count *int `json:"count"`
		}{}
		if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		n := defaultCount
		if req.Count != nil {
			if *req.Count < 0 {
				http.Error(w, "count must be >= 0", http.StatusBadRequest)
				return
			}
			n = *req.Count
		}
		total, err := svc.Reseed(r.Context(), n)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"total": total})
	}
}
