package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
	"github.com/mind-engage/mindengage-quiz/internal/rbac"
)

type Deps struct {
	Service            *quiz.Service
	Auth               *authmw.AuthService
	Ranker             Ranker // nil when no score mirror is configured
	AdminKey           string
	EnableRegistration bool
	ReseedCount        int
}

// Mount registers the quiz API and health probes on r.
func Mount(r chi.Router, d Deps) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", ReadyHandler(d.Service.Ping))

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/register", RegisterHandler(d.Service, d.EnableRegistration))
		ar.Post("/login", LoginHandler(d.Service, d.Auth))
		ar.Get("/leaderboard", LeaderboardHandler(d.Service))

		ar.Group(func(pr chi.Router) {
			pr.Use(authmw.JWTMiddleware(d.Auth), rbac.Require(rbac.PermQuizPlay))
			pr.Get("/questions", QuestionsHandler(d.Service))
			pr.Post("/submit", SubmitHandler(d.Service))
			pr.Get("/rank", RankHandler(d.Ranker))
		})

		ar.Route("/admin", func(adm chi.Router) {
			adm.Use(authmw.AdminKey(d.AdminKey), rbac.Require(rbac.PermBankReplace))
			adm.Put("/questions", ReplaceQuestionsHandler(d.Service))
			adm.Post("/reseed", ReseedHandler(d.Service, d.ReseedCount))
		})
	})
}

// ReadyHandler reports 503 until ping succeeds.
func ReadyHandler(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
