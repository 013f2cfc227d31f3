package completion

import (
	"context"
	"fmt"

	"github.com/gleegrow/gleegrow-api/internal/level"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

// Store is the slice of persistence the gate reads. The gate never
// writes; it derives page/level state purely from completion records.
type Store interface {
	GetCompletion(ctx context.Context, childKey, module, identifier string) (storage.CompletionRecord, bool, error)
	ListCompletions(ctx context.Context, childKey, module, identifierPrefix string) ([]storage.CompletionRecord, error)
}

// Decision is a gate verdict with the human-readable reason shown when
// navigation is denied.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// LevelProgress is the aggregate completion of one level.
type LevelProgress struct {
	CompletedPages int  `json:"completed_pages"`
	TotalPages     int  `json:"total_pages"`
	Done           bool `json:"done"`
}

// Gate answers page and level navigation questions for one rule set.
// Every method is read-only and treats absent records as "not completed",
// never as an error. Storage failures bubble up so the caller can decide
// whether to deny or degrade.
type Gate struct {
	rules *RuleSet
	store Store
}

func NewGate(rules *RuleSet, store Store) *Gate {
	return &Gate{rules: rules, store: store}
}

// PageState reports whether a worked page counts as completed under the
// module's rules. Manual-completion modules only look at the mark;
// score-gated modules only look at the score.
type PageState struct {
	Completed bool   `json:"completed"`
	Reason    string `json:"reason"`
}

func (g *Gate) IsPageCompleted(module string, score int, manuallyMarked bool) PageState {
	r := g.rules.For(module)
	if !r.RequiresScore {
		if manuallyMarked {
			return PageState{Completed: true, Reason: "marked complete"}
		}
		return PageState{Reason: "not yet marked complete"}
	}
	if score >= r.MinimumScore {
		return PageState{Completed: true, Reason: fmt.Sprintf("score %d%% meets the %d%% requirement", score, r.MinimumScore)}
	}
	return PageState{Reason: fmt.Sprintf("score %d%% is below the %d%% requirement", score, r.MinimumScore)}
}

// CanAccessPage decides forward page navigation. Moving backward or
// staying put is always allowed; moving forward in a sequential module
// requires the immediately preceding page to be completed.
func (g *Gate) CanAccessPage(ctx context.Context, childKey, module string, targetPage, currentPage int, identifierPrefix string) (Decision, error) {
	r := g.rules.For(module)
	if !r.SequentialPages {
		return Decision{Allowed: true}, nil
	}
	if targetPage <= currentPage {
		return Decision{Allowed: true}, nil
	}
	if targetPage == 1 {
		return Decision{Allowed: true}, nil
	}

	prev := fmt.Sprintf("%s-page%d", identifierPrefix, targetPage-1)
	rec, ok, err := g.store.GetCompletion(ctx, childKey, module, prev)
	if err != nil {
		return Decision{}, err
	}
	if ok && rec.Completed {
		return Decision{Allowed: true}, nil
	}
	return Decision{
		Reason: fmt.Sprintf("complete page %d with at least %d%% first", targetPage-1, r.MinimumScore),
	}, nil
}

// CanAccessLevel decides level navigation. Level 1 is the entry point.
// A sequential module requires the whole previous level to be done; a
// level whose configured page count is zero or unknown can never be done,
// so an unconfigured module stays locked rather than silently opening.
func (g *Gate) CanAccessLevel(ctx context.Context, childKey, module string, target level.Level) (Decision, LevelProgress, error) {
	r := g.rules.For(module)
	if !r.SequentialLevels || target <= 1 {
		return Decision{Allowed: true}, LevelProgress{}, nil
	}

	prev := target - 1
	progress, err := g.LevelCompletion(ctx, childKey, module, prev)
	if err != nil {
		return Decision{}, LevelProgress{}, err
	}
	if progress.Done {
		return Decision{Allowed: true}, progress, nil
	}
	return Decision{
		Reason: fmt.Sprintf("finish all %d pages of level %d first (%d done)", progress.TotalPages, prev, progress.CompletedPages),
	}, progress, nil
}

// LevelCompletion aggregates a level's completion records against the
// module's configured page count.
func (g *Gate) LevelCompletion(ctx context.Context, childKey, module string, lvl level.Level) (LevelProgress, error) {
	total := g.rules.TotalPages(module)
	prefix := level.LevelPrefix(module, lvl)
	recs, err := g.store.ListCompletions(ctx, childKey, module, prefix)
	if err != nil {
		return LevelProgress{}, err
	}
	done := 0
	for _, rec := range recs {
		if rec.Completed {
			done++
		}
	}
	return LevelProgress{
		CompletedPages: done,
		TotalPages:     total,
		Done:           total > 0 && done >= total,
	}, nil
}
