package storage

import (
	"context"
	"errors"
)

// ErrStorageUnavailable wraps any transport-level failure so callers can
// distinguish "the backend is down" (degrade, warn) from "the data is
// absent" (treat as not completed).
var ErrStorageUnavailable = errors.New("storage: unavailable")

// Store is the persistence adapter for all record types. Get methods
// return ok=false for absent records, never an error; errors are reserved
// for transport failures.
type Store interface {
	GetParentByEmail(ctx context.Context, email string) (Parent, bool, error)
	PutParent(ctx context.Context, p Parent) error

	GetChild(ctx context.Context, childID string) (Child, bool, error)
	PutChild(ctx context.Context, c Child) error
	ListChildren(ctx context.Context, parentUID string) ([]Child, error)

	GetAssessment(ctx context.Context, childID, subject string) (AssessmentRecord, bool, error)
	PutAssessment(ctx context.Context, childID, subject string, rec AssessmentRecord) error

	GetCompletion(ctx context.Context, childKey, module, identifier string) (CompletionRecord, bool, error)
	PutCompletion(ctx context.Context, rec CompletionRecord) error
	ListCompletions(ctx context.Context, childKey, module, identifierPrefix string) ([]CompletionRecord, error)

	GetLevelTest(ctx context.Context, childID, module, week string) (LevelTestRecord, bool, error)
	PutLevelTest(ctx context.Context, rec LevelTestRecord) error

	ListWeeklyAssignments(ctx context.Context, childID string, limit int) ([]WeeklyAssignment, error)
	PutWeeklyAssignment(ctx context.Context, a WeeklyAssignment) error
}
