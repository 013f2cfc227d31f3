package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/leveltest"
)

func leveltestParams(r *http.Request) (childID, module string, subject content.Subject, op content.Operation, ok bool) {
	childID = chi.URLParam(r, "childID")
	module = chi.URLParam(r, "module")
	op = content.Operation(r.URL.Query().Get("operation"))
	switch module {
	case "math":
		return childID, module, content.SubjectMath, op, op.Known()
	case "english":
		return childID, module, content.SubjectEnglish, "", true
	default:
		return "", "", "", "", false
	}
}

// LevelTestEligibilityHandler reports whether the child can take this
// week's level-up test and why not otherwise.
func LevelTestEligibilityHandler(svc *leveltest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, module, subject, _, ok := leveltestParams(r)
		if !ok {
			http.Error(w, "unknown module or operation", http.StatusBadRequest)
			return
		}
		el, err := svc.Eligibility(r.Context(), childID, module, subject)
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(el)
	}
}

// LevelTestStartHandler returns this week's test questions.
func LevelTestStartHandler(svc *leveltest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, module, subject, op, ok := leveltestParams(r)
		if !ok {
			http.Error(w, "unknown module or operation", http.StatusBadRequest)
			return
		}
		el, err := svc.Eligibility(r.Context(), childID, module, subject)
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		if !el.Eligible {
			http.Error(w, el.Reason, http.StatusForbidden)
			return
		}
		questions, err := svc.Questions(r.Context(), childID, subject, op)
		if err != nil {
			http.Error(w, "building level test: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"questions":     questions,
			"current_level": el.CurrentLevel,
			"week":          el.Week,
		})
	}
}

// LevelTestSubmitHandler grades the test; a pass advances the level.
func LevelTestSubmitHandler(svc *leveltest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, module, subject, op, ok := leveltestParams(r)
		if !ok {
			http.Error(w, "unknown module or operation", http.StatusBadRequest)
			return
		}
		var req struct {
			Answers []string `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res, err := svc.Submit(r.Context(), childID, module, subject, op, req.Answers)
		if err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}
