package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gleegrow/gleegrow-api/internal/assessment"
	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/level"
	"github.com/gleegrow/gleegrow-api/internal/recognize"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

func assessmentTarget(r *http.Request, store storage.Store) (childID string, subject content.Subject, op content.Operation, age level.AgeGroup, errMsg string, code int) {
	childID = chi.URLParam(r, "childID")
	subject = content.Subject(chi.URLParam(r, "subject"))
	op = content.Operation(r.URL.Query().Get("operation"))

	switch subject {
	case content.SubjectMath:
		if !op.Known() {
			return "", "", "", "", "unknown operation", http.StatusBadRequest
		}
	case content.SubjectEnglish:
		op = ""
	default:
		return "", "", "", "", "unknown subject", http.StatusBadRequest
	}

	child, ok, err := store.GetChild(r.Context(), childID)
	if err != nil {
		return "", "", "", "", "storage unavailable", http.StatusServiceUnavailable
	}
	if !ok {
		return "", "", "", "", "child not found", http.StatusNotFound
	}
	return childID, subject, op, level.GroupForAge(child.Age), "", 0
}

// StartAssessmentHandler builds the placement test for a child. Expected
// answers never leave the server; grading regenerates the set.
func StartAssessmentHandler(svc *assessment.Service, store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, subject, op, age, msg, code := assessmentTarget(r, store)
		if msg != "" {
			http.Error(w, msg, code)
			return
		}

		questions, err := svc.Start(childID, subject, op, age)
		if err != nil {
			http.Error(w, "building assessment: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"questions": questions,
			"age_group": age,
		})
	}
}

// answerInput is one submitted answer: typed text, or a handwriting
// capture to be recognized server-side.
type answerInput struct {
	Value   string `json:"value"`
	Capture string `json:"capture,omitempty"` // base64 stroke/image data
}

func resolveAnswers(ctx context.Context, rec recognize.Recognizer, inputs []answerInput) []string {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		if in.Value != "" || in.Capture == "" {
			out[i] = in.Value
			continue
		}
		capture, err := base64.StdEncoding.DecodeString(in.Capture)
		if err != nil {
			continue
		}
		out[i] = recognize.Resolve(ctx, rec, capture, "")
	}
	return out
}

// SubmitAssessmentHandler grades a placement test and returns the
// assigned level. Handwritten answers are recognized first; a result is
// returned even when saving it fails.
func SubmitAssessmentHandler(svc *assessment.Service, store storage.Store, rec recognize.Recognizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, subject, op, age, msg, code := assessmentTarget(r, store)
		if msg != "" {
			http.Error(w, msg, code)
			return
		}

		var req struct {
			Answers []answerInput `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		answers := resolveAnswers(r.Context(), rec, req.Answers)
		res, err := svc.Submit(r.Context(), childID, subject, op, age, answers)
		if err != nil {
			http.Error(w, "grading assessment: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

// GetAssessmentHandler returns the child's current placement for a
// subject; taken=false when none exists yet.
func GetAssessmentHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID := chi.URLParam(r, "childID")
		subject := content.Subject(chi.URLParam(r, "subject"))

		rec, ok, err := svc.Current(r.Context(), childID, subject)
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{"taken": false})
			return
		}
		_ = json.NewEncoder(w).Encode(rec)
	}
}
