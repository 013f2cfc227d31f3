package content

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleegrow/gleegrow-api/internal/level"
)

func TestRandIsDeterministic(t *testing.T) {
	a := NewRand(HashCode("addition-6-easy-1"))
	b := NewRand(HashCode("addition-6-easy-1"))
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestRandDiffersAcrossSeeds(t *testing.T) {
	a := NewRand(HashCode("addition-6-easy-1"))
	b := NewRand(HashCode("addition-6-easy-2"))
	same := true
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	assert.False(t, same, "different pages must not share a problem stream")
}

func TestPageProblemsReproducible(t *testing.T) {
	p1, info, err := PageProblems(Addition, level.Age6, level.Easy, 3)
	require.NoError(t, err)
	p2, _, err := PageProblems(Addition, level.Age6, level.Easy, 3)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Len(t, p1, info.ProblemCount)
	assert.Equal(t, 20, info.ProblemCount)
}

func TestPageProblemsAnswersConsistent(t *testing.T) {
	for _, op := range Operations {
		for _, age := range level.AgeGroups {
			for _, diff := range level.Difficulties {
				problems, _, err := PageProblems(op, age, diff, 1)
				require.NoError(t, err, "%s %s %s", op, age, diff)
				require.Len(t, problems, 20)
				for _, p := range problems {
					assert.NotEmpty(t, p.Answer, "%s %s %s: %+v", op, age, diff, p)
				}
			}
		}
	}
}

func TestSimpleAdditionRespectsSumLimit(t *testing.T) {
	problems, _, err := PageProblems(Addition, level.Age4to5, level.Easy, 1)
	require.NoError(t, err)
	for _, p := range problems {
		sum, err := strconv.Atoi(p.Answer)
		require.NoError(t, err)
		assert.LessOrEqual(t, sum, 5, "ages 4-5 easy addition stays within 5: %+v", p)
	}
}

func TestDivisionAnswersAreExact(t *testing.T) {
	problems, _, err := PageProblems(Division, level.Age6, level.Easy, 2)
	require.NoError(t, err)
	for _, p := range problems {
		a, _ := strconv.Atoi(p.A)
		b, _ := strconv.Atoi(p.B)
		q, err := strconv.Atoi(p.Answer)
		require.NoError(t, err)
		assert.Equal(t, a, b*q, "dividend must be divisor*quotient: %+v", p)
	}
}

func TestAbsolutePageBands(t *testing.T) {
	_, info, err := AbsolutePageProblems(Addition, level.Age7, 1)
	require.NoError(t, err)
	assert.Equal(t, level.Easy, info.Difficulty)
	assert.Equal(t, 1, info.RelativePage)

	_, info, err = AbsolutePageProblems(Addition, level.Age7, 51)
	require.NoError(t, err)
	assert.Equal(t, level.Medium, info.Difficulty)
	assert.Equal(t, 1, info.RelativePage)

	_, info, err = AbsolutePageProblems(Addition, level.Age7, 150)
	require.NoError(t, err)
	assert.Equal(t, level.Hard, info.Difficulty)
	assert.Equal(t, 50, info.RelativePage)

	_, _, err = AbsolutePageProblems(Addition, level.Age7, 0)
	assert.Error(t, err)
	_, _, err = AbsolutePageProblems(Addition, level.Age7, 151)
	assert.Error(t, err)
}

func TestCompareAnswers(t *testing.T) {
	assert.True(t, CompareAnswers("7", "7"))
	assert.True(t, CompareAnswers(" 07 ", "7"))
	assert.True(t, CompareAnswers("3.50", "3.5"))
	assert.False(t, CompareAnswers("8", "7"))
	assert.False(t, CompareAnswers("", "7"))
	assert.False(t, CompareAnswers("seven", "7"))

	assert.True(t, CompareAnswers("Cat", "cat"))
	assert.True(t, CompareAnswers("1 2/4", "1 2/4"))
	assert.True(t, CompareAnswers("12 r 3", "12 r 3"))
	assert.False(t, CompareAnswers("dog", "cat"))
}

func TestConfigByLevelFoldsMediumAndHard(t *testing.T) {
	// Level 4 (age 6, medium/hard) serves the hard cell.
	cfg, ok := ConfigByLevel(Addition, 4)
	require.True(t, ok)
	assert.Equal(t, "Age 6 - Hard Addition", cfg.Name)

	// Odd levels serve the easy cell.
	cfg, ok = ConfigByLevel(Addition, 3)
	require.True(t, ok)
	assert.Equal(t, "Age 6 - Easy Addition", cfg.Name)
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()

	cfg, ok := reg.Lookup(SubjectMath, Subtraction, level.Age7, level.Medium)
	require.True(t, ok)
	assert.NotNil(t, cfg.Generator)

	cfg, ok = reg.Lookup(SubjectEnglish, "", level.Age6, level.Easy)
	require.True(t, ok)
	p := cfg.Generator(NewRand(1))
	assert.Contains(t, p.A, "_")
	assert.NotEmpty(t, p.Answer)

	_, ok = reg.Lookup("story-time", "", level.Age6, level.Easy)
	assert.False(t, ok)

	// Removing a cell makes the tier unavailable.
	reg.Register(SubjectMath, Addition, level.Age6, level.Easy, Config{})
	_, ok = reg.Lookup(SubjectMath, Addition, level.Age6, level.Easy)
	assert.False(t, ok)
}

func TestEnglishPromptBlanksOneLetter(t *testing.T) {
	cfg, ok := EnglishConfigByAge(level.Age8, level.Hard)
	require.True(t, ok)
	r := NewRand(HashCode("english-8-hard"))
	for i := 0; i < 20; i++ {
		p := cfg.Generator(r)
		assert.Equal(t, 1, strings.Count(p.A, "_"))
		assert.Len(t, p.A, len(p.Answer))
	}
}
