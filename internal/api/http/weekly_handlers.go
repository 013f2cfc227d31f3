package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gleegrow/gleegrow-api/internal/leveltest"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

// SaveWeeklyAssignmentHandler upserts one week's assigned work for a
// child. Re-posting the same week replaces it.
func SaveWeeklyAssignmentHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Week    string                          `json:"week"`
			Modules map[string]storage.WeeklyModule `json:"modules"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Week == "" {
			req.Week = leveltest.ISOWeek(time.Now())
		}
		if len(req.Modules) == 0 {
			http.Error(w, "modules required", http.StatusBadRequest)
			return
		}

		a := storage.WeeklyAssignment{
			ChildID:   chi.URLParam(r, "childID"),
			Week:      req.Week,
			Modules:   req.Modules,
			CreatedAt: time.Now(),
		}
		if err := store.PutWeeklyAssignment(r.Context(), a); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

// ListWeeklyAssignmentsHandler returns a child's recent weeks, newest
// first.
func ListWeeklyAssignmentsHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := leveltest.WeeksScanned
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		list, err := store.ListWeeklyAssignments(r.Context(), chi.URLParam(r, "childID"), limit)
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"weeks": list})
	}
}
