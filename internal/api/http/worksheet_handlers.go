package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/level"
)

type worksheetProblem struct {
	Prompt string `json:"prompt"`
}

// MathWorksheetHandler serves one worksheet page for a level. Pages are
// regenerated from their identifier, so the same page always shows the
// same problems and answers never need storing.
func MathWorksheetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op := content.Operation(chi.URLParam(r, "operation"))
		if !op.Known() {
			http.Error(w, "unknown operation", http.StatusBadRequest)
			return
		}
		lvlNum, err := strconv.Atoi(chi.URLParam(r, "level"))
		if err != nil || !level.Level(lvlNum).Valid() {
			http.Error(w, "invalid level", http.StatusBadRequest)
			return
		}
		page, err := strconv.Atoi(chi.URLParam(r, "page"))
		if err != nil {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}

		lvl := level.Level(lvlNum)
		problems, info, err := content.PageProblems(op, lvl.AgeGroup(), lvl.Difficulty(), page)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out := make([]worksheetProblem, len(problems))
		for i, p := range problems {
			out[i] = worksheetProblem{Prompt: p.Prompt(op)}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"identifier": level.PageIdentifier(string(op), lvl, page),
			"name":       info.Name,
			"problems":   out,
		})
	}
}

// MathWorksheetSubmitHandler grades a worksheet page against its
// regenerated answer key.
func MathWorksheetSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op := content.Operation(chi.URLParam(r, "operation"))
		if !op.Known() {
			http.Error(w, "unknown operation", http.StatusBadRequest)
			return
		}
		lvlNum, err := strconv.Atoi(chi.URLParam(r, "level"))
		if err != nil || !level.Level(lvlNum).Valid() {
			http.Error(w, "invalid level", http.StatusBadRequest)
			return
		}
		page, err := strconv.Atoi(chi.URLParam(r, "page"))
		if err != nil {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}

		var req struct {
			Answers []string `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		lvl := level.Level(lvlNum)
		problems, _, err := content.PageProblems(op, lvl.AgeGroup(), lvl.Difficulty(), page)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		correct := 0
		results := make([]bool, len(problems))
		for i, p := range problems {
			var user string
			if i < len(req.Answers) {
				user = req.Answers[i]
			}
			if content.CompareAnswers(user, p.Answer) {
				results[i] = true
				correct++
			}
		}
		score := 0
		if len(problems) > 0 {
			score = int(float64(correct)/float64(len(problems))*100 + 0.5)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"identifier":     level.PageIdentifier(string(op), lvl, page),
			"correct_count":  correct,
			"total_problems": len(problems),
			"score":          score,
			"results":        results,
		})
	}
}
