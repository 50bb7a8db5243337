package http

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

var bcryptCost = 12

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// readCredentials accepts a JSON body or an HTML form post.
func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, error) {
	var c credentials
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return c, err
		}
		c.Username, c.Password = r.FormValue("username"), r.FormValue("password")
		return c, nil
	}
	err := decodeJSON(w, r, &c)
	return c, err
}

// POST /api/register  (JSON or form: username, password)
func RegisterHandler(svc *quiz.Service, enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !enabled {
			http.Error(w, "registration disabled", http.StatusForbidden)
			return
		}
		req, err := readCredentials(w, r)
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Username) == "" || req.Password == "" {
			http.Error(w, "username and password required", http.StatusBadRequest)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			http.Error(w, "hash password", http.StatusBadRequest)
			return
		}
		u, err := svc.Register(r.Context(), req.Username, string(hash))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"message": "User registered", "username": u.Username})
	}
}

// POST /api/login  (JSON or form: username, password)
func LoginHandler(svc *quiz.Service, a *authmw.AuthService) http.HandlerFunc {
	type out struct {
		Message     string `json:"message"`
		AccessToken string `json:"access_token"`
		Username    string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readCredentials(w, r)
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		u, err := svc.User(r.Context(), strings.TrimSpace(req.Username))
		if errors.Is(err, quiz.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := a.IssueJWT(u.Username, authmw.RolePlayer)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, out{Message: "Login successful", AccessToken: tok, Username: u.Username})
	}
}
