package assessment

import (
	"fmt"
	"math"

	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/level"
)

// Grade scores an answer set against its questions. Missing or blank
// answers count as wrong, never as errors; non-numeric input where a
// number is expected is wrong. An empty question set grades to 0 percent
// and is flagged degenerate rather than dividing by zero.
func Grade(questions []Question, answers []string) GradeResult {
	if len(questions) == 0 {
		return GradeResult{Degenerate: true, Feedback: []Feedback{}}
	}

	res := GradeResult{Total: len(questions), Feedback: make([]Feedback, 0, len(questions))}
	for i, q := range questions {
		var user string
		if i < len(answers) {
			user = answers[i]
		}
		fb := Feedback{Index: i, UserAnswer: user, Expected: q.Answer, Tier: q.Tier}
		if isBlank(user) {
			fb.Empty = true
		} else if content.CompareAnswers(user, q.Answer) {
			fb.Correct = true
			res.CorrectCount++
		}
		res.Feedback = append(res.Feedback, fb)
	}
	res.Percentage = int(math.Round(float64(res.CorrectCount) / float64(res.Total) * 100))
	return res
}

func isBlank(s string) bool {
	for _, c := range s {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return false
		}
	}
	return true
}

// Bands holds the score-band cut points. Both boundaries are inclusive to
// the middle band: score < TooHard remediates, score > TooEasy stretches.
type Bands struct {
	TooHard int // below this: one group younger, easy
	TooEasy int // above this: one group older, medium
}

// DefaultBands are the production cut points.
func DefaultBands() Bands { return Bands{TooHard: 30, TooEasy: 75} }

// AssignLevel applies the score-band policy and folds the outcome through
// the level table.
func AssignLevel(b Bands, percentage int, age level.AgeGroup) LevelResult {
	var (
		targetAge  level.AgeGroup
		targetDiff level.Difficulty
		reason     string
	)
	switch {
	case percentage < b.TooHard:
		targetAge = age.Younger()
		targetDiff = level.Easy
		reason = fmt.Sprintf("Score below %d%% - assigned easier content for building foundation", b.TooHard)
	case percentage <= b.TooEasy:
		targetAge = age
		targetDiff = level.Medium
		reason = fmt.Sprintf("Score %d-%d%% - assigned age-appropriate content", b.TooHard, b.TooEasy)
	default:
		targetAge = age.Older()
		targetDiff = level.Medium
		reason = fmt.Sprintf("Score above %d%% - assigned advanced content for challenge", b.TooEasy)
	}

	return LevelResult{
		Level:      level.MustLevel(targetAge, targetDiff),
		AgeGroup:   targetAge,
		Difficulty: targetDiff,
		Reason:     reason,
	}
}
