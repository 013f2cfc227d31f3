package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, l := range All() {
		got, err := ToLevel(l.AgeGroup(), l.Difficulty())
		require.NoError(t, err, "level %d", l)
		assert.Equal(t, l, got, "round trip for level %d", l)
	}
}

func TestToLevelTable(t *testing.T) {
	cases := []struct {
		age  AgeGroup
		diff Difficulty
		want Level
	}{
		{Age4to5, Easy, 1},
		{Age4to5, Medium, 2},
		{Age4to5, Hard, 2},
		{Age6, Easy, 3},
		{Age7, Medium, 6},
		{Age8, Hard, 8},
		{Age9Plus, Easy, 9},
		{Age10Up, Medium, 12},
		{Age10Up, Hard, 12},
	}
	for _, c := range cases {
		got, err := ToLevel(c.age, c.diff)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s/%s", c.age, c.diff)
	}
}

func TestToLevelRejectsUnknownPairs(t *testing.T) {
	_, err := ToLevel("14", Easy)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ToLevel(Age6, "impossible")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, MinLevel, MustLevel("14", Easy))
}

func TestNeighborSaturation(t *testing.T) {
	assert.Equal(t, Age4to5, Age4to5.Younger())
	assert.Equal(t, Age10Up, Age10Up.Older())

	assert.Equal(t, Age6, Age7.Younger())
	assert.Equal(t, Age8, Age7.Older())
	assert.Equal(t, Age9Plus, Age8.Older())
	assert.Equal(t, Age9Plus, Age10Up.Younger())
}

func TestNeighborsWalkTheWholeOrder(t *testing.T) {
	// Starting from the youngest group, Older must visit every group.
	a := Age4to5
	for i := 1; i < len(AgeGroups); i++ {
		a = a.Older()
		assert.Equal(t, AgeGroups[i], a)
	}
	for i := len(AgeGroups) - 2; i >= 0; i-- {
		a = a.Younger()
		assert.Equal(t, AgeGroups[i], a)
	}
}

func TestGroupForAge(t *testing.T) {
	assert.Equal(t, Age4to5, GroupForAge(4))
	assert.Equal(t, Age4to5, GroupForAge(5))
	assert.Equal(t, Age9Plus, GroupForAge(9))
	assert.Equal(t, Age10Up, GroupForAge(12))
	// Out-of-table ages fall back to group 6.
	assert.Equal(t, Age6, GroupForAge(0))
	assert.Equal(t, Age6, GroupForAge(40))
}

func TestStartingLevel(t *testing.T) {
	assert.Equal(t, Level(1), StartingLevel(4))
	assert.Equal(t, Level(5), StartingLevel(7))
	assert.Equal(t, Level(11), StartingLevel(10))
	assert.Equal(t, []Level{7, 8}, SuggestedLevels(8))
}

func TestIdentifierConversion(t *testing.T) {
	assert.Equal(t, "addition-level4", AgeIdentifierToLevel("addition-6-medium"))
	assert.Equal(t, "addition-level1", AgeIdentifierToLevel("addition-4-5-easy"))
	assert.Equal(t, "addition-6-medium", LevelIdentifierToAge("addition-level4"))
	// Non-identifier strings pass through.
	assert.Equal(t, "freeform", AgeIdentifierToLevel("freeform"))
	assert.Equal(t, "freeform", LevelIdentifierToAge("freeform"))

	assert.Equal(t, "addition-level2-page7", PageIdentifier("addition", 2, 7))
	assert.Equal(t, "math-level3", LevelPrefix("math", 3))
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "Level 1 - Basic Foundations", Level(1).DisplayName())
	assert.Equal(t, "Level 99", Level(99).DisplayName())
	assert.Equal(t, "Level 3", Level(3).ShortName())
	assert.NotEmpty(t, Level(12).Description())
}
