package completion

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleegrow/gleegrow-api/internal/level"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

func seedCompletion(t *testing.T, mem *storage.MemoryStore, childKey, module, identifier string, score int, completed bool) {
	t.Helper()
	err := mem.PutCompletion(context.Background(), storage.CompletionRecord{
		ChildKey:   childKey,
		Module:     module,
		Identifier: identifier,
		Score:      score,
		Completed:  completed,
		Timestamp:  time.Now(),
	})
	require.NoError(t, err)
}

func TestIsPageCompletedScoreGated(t *testing.T) {
	g := NewGate(DefaultRuleSet(), storage.NewMemoryStore())

	assert.True(t, g.IsPageCompleted("math", 95, false).Completed)
	assert.True(t, g.IsPageCompleted("math", 100, false).Completed)
	assert.False(t, g.IsPageCompleted("math", 94, false).Completed)
	// Score-gated modules ignore the manual mark.
	assert.False(t, g.IsPageCompleted("math", 0, true).Completed)
}

func TestIsPageCompletedManualModules(t *testing.T) {
	g := NewGate(DefaultRuleSet(), storage.NewMemoryStore())

	assert.True(t, g.IsPageCompleted("drawing", 0, true).Completed)
	assert.False(t, g.IsPageCompleted("drawing", 100, false).Completed)
}

func TestCanAccessPageClosedWorld(t *testing.T) {
	mem := storage.NewMemoryStore()
	g := NewGate(DefaultRuleSet(), mem)
	ctx := context.Background()

	// No records at all: moving forward is denied.
	d, err := g.CanAccessPage(ctx, "kid@example.com", "math", 3, 2, "math-level1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)

	// Backward and same-page navigation is always open.
	d, err = g.CanAccessPage(ctx, "kid@example.com", "math", 2, 2, "math-level1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	d, err = g.CanAccessPage(ctx, "kid@example.com", "math", 1, 5, "math-level1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCanAccessPageAfterCompletion(t *testing.T) {
	mem := storage.NewMemoryStore()
	g := NewGate(DefaultRuleSet(), mem)
	ctx := context.Background()

	seedCompletion(t, mem, "kid@example.com", "math", "math-level1-page2", 96, true)
	d, err := g.CanAccessPage(ctx, "kid@example.com", "math", 3, 2, "math-level1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	// An incomplete record is as good as none.
	seedCompletion(t, mem, "kid@example.com", "math", "math-level1-page3", 60, false)
	d, err = g.CanAccessPage(ctx, "kid@example.com", "math", 4, 3, "math-level1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestCanAccessPageFreeNavigation(t *testing.T) {
	g := NewGate(DefaultRuleSet(), storage.NewMemoryStore())
	ctx := context.Background()

	for _, module := range []string{"drawing", "stories", "eq", "german", "unknown-module"} {
		d, err := g.CanAccessPage(ctx, "kid@example.com", module, 5, 1, module+"-level1")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "module %s", module)
	}
}

func TestCanAccessLevel(t *testing.T) {
	mem := storage.NewMemoryStore()
	rs := &RuleSet{
		rules: map[string]Rules{"math": moduleRules["math"]},
		pages: map[string]int{"math": 3},
	}
	g := NewGate(rs, mem)
	ctx := context.Background()

	// Level 1 is the entry point.
	d, _, err := g.CanAccessLevel(ctx, "kid@example.com", "math", 1)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	// Level 2 locked until all of level 1 is done.
	d, prog, err := g.CanAccessLevel(ctx, "kid@example.com", "math", 2)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, prog.CompletedPages)
	assert.Equal(t, 3, prog.TotalPages)

	for page := 1; page <= 3; page++ {
		seedCompletion(t, mem, "kid@example.com", "math", level.PageIdentifier("math", 1, page), 97, true)
	}
	d, prog, err = g.CanAccessLevel(ctx, "kid@example.com", "math", 2)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.True(t, prog.Done)
}

func TestCanAccessLevelFailsClosedOnZeroPages(t *testing.T) {
	mem := storage.NewMemoryStore()
	rs := &RuleSet{
		rules: map[string]Rules{"mystery": {SequentialLevels: true}},
		pages: map[string]int{"mystery": 0},
	}
	g := NewGate(rs, mem)

	// Even with stray completion records, a zero page count never unlocks.
	seedCompletion(t, mem, "kid@example.com", "mystery", "mystery-level1-page1", 100, true)
	d, prog, err := g.CanAccessLevel(context.Background(), "kid@example.com", "mystery", 2)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.False(t, prog.Done)
}

func TestUnknownModuleIsFree(t *testing.T) {
	rs := DefaultRuleSet()
	assert.Equal(t, Free, rs.For("minecraft"))
	assert.Equal(t, defaultPages, rs.TotalPages("minecraft"))
}

func TestLoadRuleSetOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	data := `modules:
  math:
    requires_score: true
    minimum_score: 80
    sequential_pages: true
    sequential_levels: false
  chess:
    requires_score: true
    minimum_score: 50
pages:
  chess: 12
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	rs, err := LoadRuleSet(path)
	require.NoError(t, err)

	math := rs.For("math")
	assert.Equal(t, 80, math.MinimumScore)
	assert.False(t, math.SequentialLevels)

	chess := rs.For("chess")
	assert.True(t, chess.RequiresScore)
	assert.Equal(t, 12, rs.TotalPages("chess"))

	// Untouched modules keep their defaults.
	assert.Equal(t, moduleRules["english"], rs.For("english"))
	assert.Equal(t, 150, rs.TotalPages("math"))
}

func TestLoadRuleSetMissingFile(t *testing.T) {
	_, err := LoadRuleSet("/nonexistent/rules.yaml")
	assert.Error(t, err)
}
