// Package assessment builds diagnostic question sets, grades them, and
// turns a score into a level assignment.
package assessment

import (
	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/level"
)

// Tier identifies which diagnostic band a question was pulled from. The
// label survives shuffling so scoring and telemetry can see why each
// question was asked.
type Tier string

const (
	TierYoungerEasy   Tier = "younger-easy"
	TierCurrentEasy   Tier = "current-easy"
	TierCurrentMedium Tier = "current-medium"
	TierOlderEasy     Tier = "older-easy"
)

// Tiers is the fixed pull order before shuffling.
var Tiers = []Tier{TierYoungerEasy, TierCurrentEasy, TierCurrentMedium, TierOlderEasy}

// Question is one diagnostic item. Questions are built fresh per
// assessment and discarded after grading; only the aggregate result is
// persisted.
type Question struct {
	Subject          content.Subject   `json:"subject"`
	Operation        content.Operation `json:"operation,omitempty"`
	Prompt           string            `json:"prompt"`
	Answer           string            `json:"-"`
	SourceAge        level.AgeGroup    `json:"source_age"`
	SourceDifficulty level.Difficulty  `json:"source_difficulty"`
	Tier             Tier              `json:"tier"`
}

// Feedback is the per-question grading outcome.
type Feedback struct {
	Index      int    `json:"index"`
	Correct    bool   `json:"correct"`
	Empty      bool   `json:"empty,omitempty"`
	UserAnswer string `json:"user_answer,omitempty"`
	Expected   string `json:"expected"`
	Tier       Tier   `json:"tier"`
}

// GradeResult aggregates one graded answer set.
type GradeResult struct {
	CorrectCount int        `json:"correct_count"`
	Total        int        `json:"total"`
	Percentage   int        `json:"percentage"`
	Degenerate   bool       `json:"degenerate,omitempty"` // graded with zero questions
	Feedback     []Feedback `json:"feedback"`
}

// LevelResult is the outcome of applying the score-band policy.
type LevelResult struct {
	Level      level.Level      `json:"level"`
	AgeGroup   level.AgeGroup   `json:"age_group"`
	Difficulty level.Difficulty `json:"difficulty"`
	Reason     string           `json:"reason"`
}
