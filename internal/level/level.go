// Package level maps between age-group/difficulty pairs and the linear
// 1-12 level scale used for content unlocking.
//
// Level 1:  Age 4-5 easy        Level 7:  Age 8 easy
// Level 2:  Age 4-5 medium/hard Level 8:  Age 8 medium/hard
// Level 3:  Age 6 easy          Level 9:  Age 9+ easy
// Level 4:  Age 6 medium/hard   Level 10: Age 9+ medium/hard
// Level 5:  Age 7 easy          Level 11: Age 10+ easy
// Level 6:  Age 7 medium/hard   Level 12: Age 10+ hard
package level

import (
	"errors"
	"fmt"
)

// AgeGroup is one of six coarse age buckets.
type AgeGroup string

const (
	Age4to5  AgeGroup = "4-5"
	Age6     AgeGroup = "6"
	Age7     AgeGroup = "7"
	Age8     AgeGroup = "8"
	Age9Plus AgeGroup = "9+"
	Age10Up  AgeGroup = "10+"
)

// AgeGroups is ordered youngest to oldest.
var AgeGroups = []AgeGroup{Age4to5, Age6, Age7, Age8, Age9Plus, Age10Up}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var Difficulties = []Difficulty{Easy, Medium, Hard}

// Level is a 1-12 integer. MinLevel..MaxLevel is the only valid range.
type Level int

const (
	MinLevel Level = 1
	MaxLevel Level = 12
)

var ErrInvalidInput = errors.New("level: invalid age group or difficulty")

// levelTable folds the 18 nominal (age, difficulty) pairs onto 12 levels.
// Medium and hard collapse onto the even level for each group.
var levelTable = map[AgeGroup]map[Difficulty]Level{
	Age4to5:  {Easy: 1, Medium: 2, Hard: 2},
	Age6:     {Easy: 3, Medium: 4, Hard: 4},
	Age7:     {Easy: 5, Medium: 6, Hard: 6},
	Age8:     {Easy: 7, Medium: 8, Hard: 8},
	Age9Plus: {Easy: 9, Medium: 10, Hard: 10},
	Age10Up:  {Easy: 11, Medium: 12, Hard: 12},
}

// ToLevel converts an age group plus difficulty to a level number.
func ToLevel(age AgeGroup, diff Difficulty) (Level, error) {
	byDiff, ok := levelTable[age]
	if !ok {
		return 0, fmt.Errorf("%w: age group %q", ErrInvalidInput, age)
	}
	lvl, ok := byDiff[diff]
	if !ok {
		return 0, fmt.Errorf("%w: difficulty %q", ErrInvalidInput, diff)
	}
	return lvl, nil
}

// MustLevel is ToLevel for callers holding already-validated inputs.
// Unknown pairs fall back to Level 1, matching the content engine's
// defensive lookup.
func MustLevel(age AgeGroup, diff Difficulty) Level {
	lvl, err := ToLevel(age, diff)
	if err != nil {
		return MinLevel
	}
	return lvl
}

// Valid reports whether l is in the 1-12 range.
func (l Level) Valid() bool { return l >= MinLevel && l <= MaxLevel }

// AgeGroup returns the age bucket a level belongs to.
func (l Level) AgeGroup() AgeGroup {
	switch {
	case l <= 2:
		return Age4to5
	case l <= 4:
		return Age6
	case l <= 6:
		return Age7
	case l <= 8:
		return Age8
	case l <= 10:
		return Age9Plus
	default:
		return Age10Up
	}
}

// Difficulty returns the canonical difficulty for a level: odd levels are
// easy, even levels medium. (Hard also maps onto even levels but medium is
// the round-trip representative.)
func (l Level) Difficulty() Difficulty {
	if l%2 == 1 {
		return Easy
	}
	return Medium
}

// Younger returns the next younger age group, saturating at 4-5.
func (a AgeGroup) Younger() AgeGroup {
	switch a {
	case Age6:
		return Age4to5
	case Age7:
		return Age6
	case Age8:
		return Age7
	case Age9Plus:
		return Age8
	case Age10Up:
		return Age9Plus
	default:
		return a
	}
}

// Older returns the next older age group, saturating at 10+.
func (a AgeGroup) Older() AgeGroup {
	switch a {
	case Age4to5:
		return Age6
	case Age6:
		return Age7
	case Age7:
		return Age8
	case Age8:
		return Age9Plus
	case Age9Plus:
		return Age10Up
	default:
		return a
	}
}

// Known reports whether a is one of the six defined groups.
func (a AgeGroup) Known() bool {
	_, ok := levelTable[a]
	return ok
}

// GroupForAge buckets a numeric age in years. Ages outside the table
// default to group 6, matching historical behavior for malformed profiles.
func GroupForAge(years int) AgeGroup {
	switch {
	case years == 4 || years == 5:
		return Age4to5
	case years == 6:
		return Age6
	case years == 7:
		return Age7
	case years == 8:
		return Age8
	case years == 9:
		return Age9Plus
	case years >= 10 && years <= 13:
		return Age10Up
	default:
		return Age6
	}
}

// StartingLevel is the conservative entry level suggested for a numeric age
// before any assessment has been taken.
func StartingLevel(years int) Level {
	switch {
	case years <= 5:
		return 1
	case years == 6:
		return 3
	case years == 7:
		return 5
	case years == 8:
		return 7
	case years == 9:
		return 9
	default:
		return 11
	}
}

// SuggestedLevels returns the level pair usually appropriate for an age.
func SuggestedLevels(years int) []Level {
	start := StartingLevel(years)
	return []Level{start, start + 1}
}

// All returns every level in order.
func All() []Level {
	out := make([]Level, 0, int(MaxLevel))
	for l := MinLevel; l <= MaxLevel; l++ {
		out = append(out, l)
	}
	return out
}
