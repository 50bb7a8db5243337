package http

import (
	"context"
	"net/http"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

// Ranker answers rank lookups from the score mirror.
type Ranker interface {
	Rank(ctx context.Context, username string) (int64, bool, error)
}

// GET /api/questions
func QuestionsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := svc.DeliveryQuestions(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"questions": qs})
	}
}

// POST /api/submit  { "answers": [ { "id": 1, "choice": 2 }, ... ] }
func SubmitHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answers []quiz.SubmittedAnswer `json:"answers"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		username := authmw.SubjectFromContext(r.Context())
		res, err := svc.Grade(r.Context(), username, req.Answers)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /api/leaderboard
func LeaderboardHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.Leaderboard(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if entries == nil {
			entries = []quiz.LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
	}
}

// GET /api/rank
func RankHandler(ranker Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ranker == nil {
			http.Error(w, "rank unavailable", http.StatusNotFound)
			return
		}
		username := authmw.SubjectFromContext(r.Context())
		rank, found, err := ranker.Rank(r.Context(), username)
		if err != nil {
			http.Error(w, "rank lookup failed", http.StatusServiceUnavailable)
			return
		}
		if !found {
			http.Error(w, "no score yet", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"username": username, "rank": rank})
	}
}
