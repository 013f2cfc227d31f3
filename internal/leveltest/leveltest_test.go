package leveltest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/level"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, lvl level.Level) (*Service, *storage.MemoryStore) {
	t.Helper()
	mem := storage.NewMemoryStore()
	svc := NewService(content.NewRegistry(), mem)
	svc.now = func() time.Time { return testNow }
	require.NoError(t, mem.PutAssessment(context.Background(), "c1", "math", storage.AssessmentRecord{
		Level: lvl, Score: 60, Date: testNow.AddDate(0, -2, 0), Taken: true,
	}))
	return svc, mem
}

func seedWeeks(t *testing.T, mem *storage.MemoryStore, module string, weeks int, avgScore int) {
	t.Helper()
	for i := 0; i < weeks; i++ {
		created := testNow.AddDate(0, 0, -7*(i+1))
		require.NoError(t, mem.PutWeeklyAssignment(context.Background(), storage.WeeklyAssignment{
			ChildID: "c1",
			Week:    fmt.Sprintf("2026-W%02d", 34-i),
			Modules: map[string]storage.WeeklyModule{
				module: {
					CompletedCount: 2,
					TotalPages:     2,
					Pages: []storage.WeeklyPage{
						{Completed: true, Score: avgScore},
						{Completed: true, Score: avgScore},
					},
				},
			},
			CreatedAt: created,
		}))
	}
}

func TestISOWeek(t *testing.T) {
	assert.Equal(t, "2026-W35", ISOWeek(testNow))
	// Early January can belong to the previous ISO year.
	assert.Equal(t, "2020-W53", ISOWeek(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestEligibilityHappyPath(t *testing.T) {
	svc, mem := newFixture(t, 4)
	seedWeeks(t, mem, "math", 4, 92)

	el, err := svc.Eligibility(context.Background(), "c1", "math", content.SubjectMath)
	require.NoError(t, err)
	assert.True(t, el.Eligible)
	assert.Equal(t, 4, el.CompletedWeeks)
	assert.Equal(t, 92, el.AverageScore)
	assert.Equal(t, level.Level(4), el.CurrentLevel)
}

func TestEligibilityDenials(t *testing.T) {
	t.Run("no assessment", func(t *testing.T) {
		mem := storage.NewMemoryStore()
		svc := NewService(content.NewRegistry(), mem)
		svc.now = func() time.Time { return testNow }
		el, err := svc.Eligibility(context.Background(), "c1", "math", content.SubjectMath)
		require.NoError(t, err)
		assert.False(t, el.Eligible)
	})

	t.Run("too few weeks", func(t *testing.T) {
		svc, mem := newFixture(t, 4)
		seedWeeks(t, mem, "math", 3, 92)
		el, err := svc.Eligibility(context.Background(), "c1", "math", content.SubjectMath)
		require.NoError(t, err)
		assert.False(t, el.Eligible)
		assert.Equal(t, 3, el.CompletedWeeks)
	})

	t.Run("low average", func(t *testing.T) {
		svc, mem := newFixture(t, 4)
		seedWeeks(t, mem, "math", 4, 80)
		el, err := svc.Eligibility(context.Background(), "c1", "math", content.SubjectMath)
		require.NoError(t, err)
		assert.False(t, el.Eligible)
	})

	t.Run("max level", func(t *testing.T) {
		svc, mem := newFixture(t, level.MaxLevel)
		seedWeeks(t, mem, "math", 4, 95)
		el, err := svc.Eligibility(context.Background(), "c1", "math", content.SubjectMath)
		require.NoError(t, err)
		assert.False(t, el.Eligible)
	})

	t.Run("already taken this week", func(t *testing.T) {
		svc, mem := newFixture(t, 4)
		seedWeeks(t, mem, "math", 4, 95)
		require.NoError(t, mem.PutLevelTest(context.Background(), storage.LevelTestRecord{
			ChildID: "c1", Module: "math", Week: ISOWeek(testNow),
		}))
		el, err := svc.Eligibility(context.Background(), "c1", "math", content.SubjectMath)
		require.NoError(t, err)
		assert.False(t, el.Eligible)
	})
}

func TestQuestionsMixAndDeterminism(t *testing.T) {
	svc, _ := newFixture(t, 4)

	qs, err := svc.Questions(context.Background(), "c1", content.SubjectMath, content.Addition)
	require.NoError(t, err)
	require.Len(t, qs, TotalCount)

	counts := map[level.Difficulty]int{}
	for _, q := range qs {
		counts[q.SourceDifficulty]++
		assert.Equal(t, level.Level(4).AgeGroup(), q.SourceAge)
	}
	assert.Equal(t, easyCount, counts[level.Easy])
	assert.Equal(t, mediumCount, counts[level.Medium])
	assert.Equal(t, hardCount, counts[level.Hard])

	again, err := svc.Questions(context.Background(), "c1", content.SubjectMath, content.Addition)
	require.NoError(t, err)
	assert.Equal(t, qs, again)
}

func TestQuestionsEnglishPrompts(t *testing.T) {
	mem := storage.NewMemoryStore()
	svc := NewService(content.NewRegistry(), mem)
	svc.now = func() time.Time { return testNow }
	require.NoError(t, mem.PutAssessment(context.Background(), "c1", "english", storage.AssessmentRecord{
		Level: 4, Score: 60, Date: testNow.AddDate(0, -2, 0), Taken: true,
	}))

	qs, err := svc.Questions(context.Background(), "c1", content.SubjectEnglish, "")
	require.NoError(t, err)
	require.Len(t, qs, TotalCount)

	for _, q := range qs {
		assert.True(t, strings.HasPrefix(q.Prompt, "Fill in the missing letter: "), q.Prompt)
		assert.Contains(t, q.Prompt, "_")
		assert.NotContains(t, q.Prompt, "=")
		assert.NotContains(t, q.Prompt, "+")
	}
}

func TestSubmitPassAdvancesLevel(t *testing.T) {
	svc, mem := newFixture(t, 4)
	seedWeeks(t, mem, "math", 4, 95)
	ctx := context.Background()

	qs, err := svc.Questions(ctx, "c1", content.SubjectMath, content.Addition)
	require.NoError(t, err)
	answers := make([]string, len(qs))
	for i, q := range qs {
		answers[i] = q.Answer
	}

	res, err := svc.Submit(ctx, "c1", "math", content.SubjectMath, content.Addition, answers)
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Equal(t, level.Level(4), res.CurrentLevel)
	assert.Equal(t, level.Level(5), res.NewLevel)

	rec, ok, _ := mem.GetAssessment(ctx, "c1", "math")
	require.True(t, ok)
	assert.Equal(t, level.Level(5), rec.Level)

	attempt, ok, _ := mem.GetLevelTest(ctx, "c1", "math", ISOWeek(testNow))
	require.True(t, ok)
	assert.True(t, attempt.Passed)

	// The recorded attempt blocks a second try this week.
	_, err = svc.Submit(ctx, "c1", "math", content.SubjectMath, content.Addition, answers)
	assert.Error(t, err)
}

func TestSubmitFailKeepsLevel(t *testing.T) {
	svc, mem := newFixture(t, 4)
	seedWeeks(t, mem, "math", 4, 95)
	ctx := context.Background()

	res, err := svc.Submit(ctx, "c1", "math", content.SubjectMath, content.Addition, make([]string, TotalCount))
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, res.CurrentLevel, res.NewLevel)

	rec, ok, _ := mem.GetAssessment(ctx, "c1", "math")
	require.True(t, ok)
	assert.Equal(t, level.Level(4), rec.Level)

	// The failed attempt still consumes this week's slot.
	_, ok, _ = mem.GetLevelTest(ctx, "c1", "math", ISOWeek(testNow))
	assert.True(t, ok)
}

func TestSubmitPassBoundary(t *testing.T) {
	svc, mem := newFixture(t, 4)
	seedWeeks(t, mem, "math", 4, 95)
	ctx := context.Background()

	qs, err := svc.Questions(ctx, "c1", content.SubjectMath, content.Addition)
	require.NoError(t, err)

	// 9 of 10 correct is exactly the pass mark.
	answers := make([]string, len(qs))
	for i, q := range qs {
		answers[i] = q.Answer
	}
	answers[0] = "wrong"
	res, err := svc.Submit(ctx, "c1", "math", content.SubjectMath, content.Addition, answers)
	require.NoError(t, err)
	assert.Equal(t, 90, res.Score)
	assert.True(t, res.Passed)
}
