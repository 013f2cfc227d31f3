// Package http holds the HTTP handlers. Each handler is a closure over
// its dependencies; routing and middleware live in the server main.
package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authmw "github.com/gleegrow/gleegrow-api/internal/auth/middleware"
	"github.com/gleegrow/gleegrow-api/internal/level"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

// CreateChildHandler adds a child profile under the authenticated parent.
func CreateChildHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name  string `json:"name"`
			Age   int    `json:"age"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.Age < 3 || req.Age > 16 {
			http.Error(w, "name and an age between 3 and 16 required", http.StatusBadRequest)
			return
		}

		c := storage.Child{
			ID:        uuid.NewString(),
			ParentUID: authmw.SubjectFromContext(r.Context()),
			Name:      req.Name,
			Age:       req.Age,
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		}
		if err := store.PutChild(r.Context(), c); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"child":            c,
			"starting_level":   level.StartingLevel(c.Age),
			"age_group":        level.GroupForAge(c.Age),
			"suggested_levels": level.SuggestedLevels(c.Age),
		})
	}
}

// ListChildrenHandler returns the authenticated parent's children.
func ListChildrenHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		children, err := store.ListChildren(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"children": children})
	}
}

// GetChildHandler returns one child profile. Ownership is enforced by
// middleware before this runs.
func GetChildHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		child, ok, err := store.GetChild(r.Context(), chi.URLParam(r, "childID"))
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		if !ok {
			http.Error(w, "child not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(child)
	}
}
