package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gleegrow/gleegrow-api/internal/completion"
	"github.com/gleegrow/gleegrow-api/internal/level"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

func childKeyFor(r *http.Request, store storage.Store) (string, string, int) {
	child, ok, err := store.GetChild(r.Context(), chi.URLParam(r, "childID"))
	if err != nil {
		return "", "storage unavailable", http.StatusServiceUnavailable
	}
	if !ok {
		return "", "child not found", http.StatusNotFound
	}
	return child.Key(), "", 0
}

// SaveCompletionHandler records the outcome of a worked page. The
// completed flag is derived from the module's rules, never trusted from
// the client; re-saving the same identifier overwrites and bumps the
// attempt count.
func SaveCompletionHandler(store storage.Store, gate *completion.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childKey, msg, code := childKeyFor(r, store)
		if msg != "" {
			http.Error(w, msg, code)
			return
		}

		var req struct {
			Module         string `json:"module"`
			Identifier     string `json:"identifier"`
			Score          int    `json:"score"`
			CorrectCount   int    `json:"correct_count"`
			TotalProblems  int    `json:"total_problems"`
			ManuallyMarked bool   `json:"manually_marked"`
			ElapsedTime    string `json:"elapsed_time"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Module == "" || req.Identifier == "" {
			http.Error(w, "module and identifier required", http.StatusBadRequest)
			return
		}

		state := gate.IsPageCompleted(req.Module, req.Score, req.ManuallyMarked)

		attempts := 1
		if prev, ok, err := store.GetCompletion(r.Context(), childKey, req.Module, req.Identifier); err == nil && ok {
			attempts = prev.Attempts + 1
		}

		rec := storage.CompletionRecord{
			CompletionID:   uuid.NewString(),
			ChildID:        chi.URLParam(r, "childID"),
			ChildKey:       childKey,
			Module:         req.Module,
			Identifier:     req.Identifier,
			Score:          req.Score,
			CorrectCount:   req.CorrectCount,
			TotalProblems:  req.TotalProblems,
			Completed:      state.Completed,
			ManuallyMarked: req.ManuallyMarked,
			ElapsedTime:    req.ElapsedTime,
			Attempts:       attempts,
			Timestamp:      time.Now(),
		}
		saveFailed := false
		if err := store.PutCompletion(r.Context(), rec); err != nil {
			saveFailed = true
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"record":      rec,
			"completed":   state.Completed,
			"reason":      state.Reason,
			"save_failed": saveFailed,
		})
	}
}

// ListCompletionsHandler returns a child's completion records for a
// module, optionally narrowed to an identifier prefix.
func ListCompletionsHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childKey, msg, code := childKeyFor(r, store)
		if msg != "" {
			http.Error(w, msg, code)
			return
		}
		module := r.URL.Query().Get("module")
		if module == "" {
			http.Error(w, "module required", http.StatusBadRequest)
			return
		}
		recs, err := store.ListCompletions(r.Context(), childKey, module, r.URL.Query().Get("prefix"))
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"completions": recs})
	}
}

// GatePageHandler answers "may this child open that page".
func GatePageHandler(store storage.Store, gate *completion.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childKey, msg, code := childKeyFor(r, store)
		if msg != "" {
			http.Error(w, msg, code)
			return
		}
		q := r.URL.Query()
		module := q.Get("module")
		target, err1 := strconv.Atoi(q.Get("target"))
		current, err2 := strconv.Atoi(q.Get("current"))
		prefix := q.Get("prefix")
		if module == "" || err1 != nil || err2 != nil || prefix == "" {
			http.Error(w, "module, target, current and prefix required", http.StatusBadRequest)
			return
		}

		d, err := gate.CanAccessPage(r.Context(), childKey, module, target, current, prefix)
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(d)
	}
}

// GateLevelHandler answers "may this child open that level" and reports
// progress toward it.
func GateLevelHandler(store storage.Store, gate *completion.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childKey, msg, code := childKeyFor(r, store)
		if msg != "" {
			http.Error(w, msg, code)
			return
		}
		q := r.URL.Query()
		module := q.Get("module")
		lvl, err := strconv.Atoi(q.Get("level"))
		if module == "" || err != nil {
			http.Error(w, "module and level required", http.StatusBadRequest)
			return
		}

		d, progress, err := gate.CanAccessLevel(r.Context(), childKey, module, level.Level(lvl))
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"allowed":  d.Allowed,
			"reason":   d.Reason,
			"progress": progress,
		})
	}
}
