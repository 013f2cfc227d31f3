// Package leveltest runs the weekly level-up test: a child who keeps
// finishing their assigned work at a high standard earns one shot per
// week at a harder test that advances them a level.
package leveltest

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/gleegrow/gleegrow-api/internal/assessment"
	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/level"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

// Eligibility thresholds. A child qualifies after four strong weeks and
// keeps qualifying weekly until they hit the top level.
const (
	MinCompletedWeeks = 4
	MinAverageScore   = 85
	WeeksScanned      = 8
	PassScore         = 90
)

// Question mix: mostly hard, so passing means the current level is
// genuinely outgrown.
const (
	easyCount   = 1
	mediumCount = 3
	hardCount   = 6
	TotalCount  = easyCount + mediumCount + hardCount
)

// Store is the persistence slice the service needs.
type Store interface {
	GetAssessment(ctx context.Context, childID, subject string) (storage.AssessmentRecord, bool, error)
	PutAssessment(ctx context.Context, childID, subject string, rec storage.AssessmentRecord) error
	GetLevelTest(ctx context.Context, childID, module, week string) (storage.LevelTestRecord, bool, error)
	PutLevelTest(ctx context.Context, rec storage.LevelTestRecord) error
	ListWeeklyAssignments(ctx context.Context, childID string, limit int) ([]storage.WeeklyAssignment, error)
}

// Eligibility is the verdict on whether a child may take the test now.
type Eligibility struct {
	Eligible       bool        `json:"eligible"`
	Reason         string      `json:"reason"`
	CompletedWeeks int         `json:"completed_weeks"`
	AverageScore   int         `json:"average_score"`
	CurrentLevel   level.Level `json:"current_level"`
	Week           string      `json:"week"`
}

// Result is a graded attempt.
type Result struct {
	Score        int         `json:"score"`
	Correct      int         `json:"correct"`
	Total        int         `json:"total"`
	Passed       bool        `json:"passed"`
	CurrentLevel level.Level `json:"current_level"`
	NewLevel     level.Level `json:"new_level"`
	SaveFailed   bool        `json:"save_failed,omitempty"`
}

// Service builds, gates, and grades level-up tests.
type Service struct {
	registry *content.Registry
	store    Store
	now      func() time.Time
}

func NewService(registry *content.Registry, store Store) *Service {
	return &Service{registry: registry, store: store, now: time.Now}
}

// ISOWeek formats a time as the week key records are filed under,
// e.g. "2026-W35".
func ISOWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Eligibility checks whether a child may take this week's test for a
// module. Each denial carries the reason shown to the child.
func (s *Service) Eligibility(ctx context.Context, childID, module string, subject content.Subject) (Eligibility, error) {
	week := ISOWeek(s.now())
	el := Eligibility{Week: week}

	rec, ok, err := s.store.GetAssessment(ctx, childID, string(subject))
	if err != nil {
		return el, err
	}
	if !ok || !rec.Taken {
		el.Reason = "take the placement assessment first"
		return el, nil
	}
	el.CurrentLevel = rec.Level
	if rec.Level >= level.MaxLevel {
		el.Reason = "already at the highest level"
		return el, nil
	}

	if _, taken, err := s.store.GetLevelTest(ctx, childID, module, week); err != nil {
		return el, err
	} else if taken {
		el.Reason = "level test already taken this week"
		return el, nil
	}

	assignments, err := s.store.ListWeeklyAssignments(ctx, childID, WeeksScanned)
	if err != nil {
		return el, err
	}
	scoreSum, scored := 0, 0
	for _, a := range assignments {
		m, ok := a.Modules[module]
		if !ok || !m.Done() {
			continue
		}
		el.CompletedWeeks++
		if avg := m.AverageScore(); avg > 0 {
			scoreSum += avg
			scored++
		}
	}
	if scored > 0 {
		el.AverageScore = int(math.Round(float64(scoreSum) / float64(scored)))
	}

	if el.CompletedWeeks < MinCompletedWeeks {
		el.Reason = fmt.Sprintf("complete %d weeks of assigned work first (%d done)", MinCompletedWeeks, el.CompletedWeeks)
		return el, nil
	}
	if el.AverageScore < MinAverageScore {
		el.Reason = fmt.Sprintf("average score %d%% is below the %d%% requirement", el.AverageScore, MinAverageScore)
		return el, nil
	}

	el.Eligible = true
	el.Reason = "eligible"
	return el, nil
}

// SeedKey derives the deterministic generation key for this week's test.
func SeedKey(childID string, op content.Operation, week string) string {
	return fmt.Sprintf("leveltest-%s-%s-%s", childID, op, week)
}

// Questions builds the weekly test for a child's current level: one
// easy, three medium, six hard, all from the level's age group. The set
// is deterministic for the week so a retaken page load shows the same
// test, and grading regenerates it instead of storing it.
func (s *Service) Questions(ctx context.Context, childID string, subject content.Subject, op content.Operation) ([]assessment.Question, error) {
	rec, ok, err := s.store.GetAssessment(ctx, childID, string(subject))
	if err != nil {
		return nil, err
	}
	if !ok || !rec.Taken {
		return nil, fmt.Errorf("leveltest: child %s has no %s level assigned", childID, subject)
	}

	week := ISOWeek(s.now())
	r := content.NewRand(content.HashCode(SeedKey(childID, op, week)))
	age := rec.Level.AgeGroup()

	pulls := []struct {
		diff  level.Difficulty
		count int
	}{
		{level.Easy, easyCount},
		{level.Medium, mediumCount},
		{level.Hard, hardCount},
	}
	questions := make([]assessment.Question, 0, TotalCount)
	for _, pull := range pulls {
		cfg, ok := s.registry.Lookup(subject, op, age, pull.diff)
		if !ok {
			return nil, fmt.Errorf("leveltest: no generator for %s/%s age %s %s", subject, op, age, pull.diff)
		}
		for i := 0; i < pull.count; i++ {
			p := cfg.Generator(r)
			questions = append(questions, assessment.Question{
				Subject:          subject,
				Operation:        op,
				Prompt:           assessment.Prompt(subject, op, p),
				Answer:           p.Answer,
				SourceAge:        age,
				SourceDifficulty: pull.diff,
			})
		}
	}
	return questions, nil
}

// Submit grades this week's test and, on a pass, advances the child one
// level. The attempt record is the per-week lock: once written, the
// eligibility check denies further attempts until next week.
func (s *Service) Submit(ctx context.Context, childID, module string, subject content.Subject, op content.Operation, answers []string) (Result, error) {
	el, err := s.Eligibility(ctx, childID, module, subject)
	if err != nil {
		return Result{}, err
	}
	if !el.Eligible {
		return Result{}, fmt.Errorf("leveltest: not eligible: %s", el.Reason)
	}

	questions, err := s.Questions(ctx, childID, subject, op)
	if err != nil {
		return Result{}, err
	}
	gr := assessment.Grade(questions, answers)

	res := Result{
		Score:        gr.Percentage,
		Correct:      gr.CorrectCount,
		Total:        gr.Total,
		Passed:       gr.Percentage >= PassScore,
		CurrentLevel: el.CurrentLevel,
		NewLevel:     el.CurrentLevel,
	}
	if res.Passed {
		res.NewLevel = el.CurrentLevel + 1
	}

	rec := storage.LevelTestRecord{
		ID:           uuid.NewString(),
		ChildID:      childID,
		Module:       module,
		Week:         el.Week,
		CurrentLevel: res.CurrentLevel,
		NewLevel:     res.NewLevel,
		Score:        res.Score,
		Correct:      res.Correct,
		Total:        res.Total,
		Passed:       res.Passed,
		Timestamp:    s.now(),
	}
	if err := s.store.PutLevelTest(ctx, rec); err != nil {
		log.Printf("leveltest: saving attempt for child %s failed: %v", childID, err)
		res.SaveFailed = true
	}

	if res.Passed {
		updated := storage.AssessmentRecord{
			Level: res.NewLevel,
			Score: res.Score,
			Date:  s.now(),
			Taken: true,
		}
		if err := s.store.PutAssessment(ctx, childID, string(subject), updated); err != nil {
			log.Printf("leveltest: advancing child %s to level %d failed: %v", childID, res.NewLevel, err)
			res.SaveFailed = true
		}
	}
	return res, nil
}
