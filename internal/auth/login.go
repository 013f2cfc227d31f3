// Package auth holds the parent-facing account handlers. Token handling
// itself lives in the middleware subpackage.
package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authmw "github.com/gleegrow/gleegrow-api/internal/auth/middleware"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

// RegisterHandler creates a parent account. Emails are unique; a second
// registration with the same email is rejected rather than overwritten.
func RegisterHandler(a *authmw.AuthService, store storage.Store) http.HandlerFunc {
	type out struct {
		AccessToken string `json:"access_token"`
		UID         string `json:"uid"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || len(req.Password) < 8 {
			http.Error(w, "email and a password of at least 8 characters required", http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		if _, exists, err := store.GetParentByEmail(ctx, req.Email); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		} else if exists {
			http.Error(w, "account already exists", http.StatusConflict)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hashing password", http.StatusInternalServerError)
			return
		}
		p := storage.Parent{
			UID:          uuid.NewString(),
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}
		if err := store.PutParent(ctx, p); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}

		tok, err := a.IssueJWT(p.UID, "parent")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, UID: p.UID})
	}
}

// LoginHandler exchanges parent credentials for a bearer token.
func LoginHandler(a *authmw.AuthService, store storage.Store) http.HandlerFunc {
	type out struct {
		AccessToken string `json:"access_token"`
		UID         string `json:"uid"`
		Name        string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		p, ok, err := store.GetParentByEmail(r.Context(), req.Email)
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		if !ok || bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		tok, err := a.IssueJWT(p.UID, "parent")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, UID: p.UID, Name: p.Name})
	}
}
