// Package storage owns the persisted record types and their stores.
// Records are keyed by composite keys (child+subject, child+module+
// identifier) and every write is an overwrite-merge: last write wins,
// no history is kept.
package storage

import (
	"time"

	"github.com/gleegrow/gleegrow-api/internal/level"
)

// Parent is an account that owns children and logs in.
type Parent struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Child is the minimal profile the API needs: ownership, age bucket
// input, and the key completion records are filed under.
type Child struct {
	ID        string `json:"id"`
	ParentUID string `json:"parent_uid"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Email     string `json:"email"` // completion key; falls back to parent email
}

// Key returns the identifier completion records are filed under.
func (c Child) Key() string {
	if c.Email != "" {
		return c.Email
	}
	return c.ID
}

// AssessmentRecord is the single per-(child, subject) result. A retake
// overwrites it; the prior score is intentionally discarded.
type AssessmentRecord struct {
	Level level.Level `json:"level"`
	Score int         `json:"score"`
	Date  time.Time   `json:"date"`
	Taken bool        `json:"taken"`
}

// CompletionRecord is the stored fact that a child worked a page. One
// record per (child, module, identifier); re-saves merge over it.
type CompletionRecord struct {
	CompletionID   string    `json:"completion_id"`
	ChildID        string    `json:"child_id"`
	ChildKey       string    `json:"child_key"`
	Module         string    `json:"module"`
	Identifier     string    `json:"identifier"`
	Score          int       `json:"score"`
	CorrectCount   int       `json:"correct_count"`
	TotalProblems  int       `json:"total_problems"`
	Completed      bool      `json:"completed"`
	ManuallyMarked bool      `json:"manually_marked"`
	ElapsedTime    string    `json:"elapsed_time"`
	Attempts       int       `json:"attempts"`
	Timestamp      time.Time `json:"timestamp"`
}

// LevelTestRecord stores one level-up test attempt. Keyed by
// (child, module, week) so a test can only be taken once per week.
type LevelTestRecord struct {
	ID           string      `json:"id"`
	ChildID      string      `json:"child_id"`
	Module       string      `json:"module"`
	Week         string      `json:"week"` // ISO week, e.g. "2026-W35"
	CurrentLevel level.Level `json:"current_level"`
	NewLevel     level.Level `json:"new_level"`
	Score        int         `json:"score"`
	Correct      int         `json:"correct"`
	Total        int         `json:"total"`
	Passed       bool        `json:"passed"`
	Timestamp    time.Time   `json:"timestamp"`
}

// WeeklyPage is one page's outcome inside a weekly assignment summary.
type WeeklyPage struct {
	Completed bool `json:"completed"`
	Score     int  `json:"score"`
}

// WeeklyModule summarizes a module's progress for one assigned week.
type WeeklyModule struct {
	CompletedCount int          `json:"completed_count"`
	TotalPages     int          `json:"total_pages"`
	Pages          []WeeklyPage `json:"pages"`
}

// Done reports whether every assigned page of the week was finished.
func (w WeeklyModule) Done() bool {
	return w.TotalPages > 0 && w.CompletedCount >= w.TotalPages
}

// AverageScore averages the scores of completed pages; 0 when none.
func (w WeeklyModule) AverageScore() int {
	sum, n := 0, 0
	for _, p := range w.Pages {
		if p.Completed && p.Score > 0 {
			sum += p.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(float64(sum)/float64(n) + 0.5)
}

// WeeklyAssignment is one week's assigned work for a child across modules.
type WeeklyAssignment struct {
	ChildID   string                  `json:"child_id"`
	Week      string                  `json:"week"`
	Modules   map[string]WeeklyModule `json:"modules"`
	CreatedAt time.Time               `json:"created_at"`
}
