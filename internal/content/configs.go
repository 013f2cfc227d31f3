package content

import (
	"github.com/gleegrow/gleegrow-api/internal/level"
)

// Config describes one (operation, age, difficulty) content cell.
type Config struct {
	Name         string
	Description  string
	ProblemCount int
	Generator    GenFunc
}

// mathConfigs mirrors the worksheet content table: four operations across
// six age groups and three difficulties, each with its own number ranges.
var mathConfigs = map[Operation]map[level.AgeGroup]map[level.Difficulty]Config{
	Addition: {
		level.Age4to5: {
			level.Easy:   {Name: "Ages 4-5 - Easy Addition", Description: "Adding numbers up to 5", ProblemCount: 20, Generator: simpleAddition(1, 4, 5)},
			level.Medium: {Name: "Ages 4-5 - Medium Addition", Description: "Adding numbers up to 10", ProblemCount: 20, Generator: simpleAddition(1, 9, 10)},
			level.Hard:   {Name: "Ages 4-5 - Hard Addition", Description: "Adding numbers up to 15", ProblemCount: 20, Generator: simpleAddition(1, 10, 15)},
		},
		level.Age6: {
			level.Easy:   {Name: "Age 6 - Easy Addition", Description: "Adding numbers up to 12", ProblemCount: 20, Generator: simpleAddition(2, 10, 12)},
			level.Medium: {Name: "Age 6 - Medium Addition", Description: "Adding numbers up to 20", ProblemCount: 20, Generator: simpleAddition(5, 15, 20)},
			level.Hard:   {Name: "Age 6 - Hard Addition", Description: "Two-digit + One-digit numbers", ProblemCount: 20, Generator: mixedAddition(10, 99, 1, 9)},
		},
		level.Age7: {
			level.Easy:   {Name: "Age 7 - Easy Addition", Description: "Adding numbers up to 25", ProblemCount: 20, Generator: simpleAddition(10, 20, 25)},
			level.Medium: {Name: "Age 7 - Medium Addition", Description: "Two-digit + One-digit numbers", ProblemCount: 20, Generator: mixedAddition(10, 99, 1, 9)},
			level.Hard:   {Name: "Age 7 - Hard Addition", Description: "Two-digit + Two-digit numbers", ProblemCount: 20, Generator: mixedAddition(10, 99, 10, 99)},
		},
		level.Age8: {
			level.Easy:   {Name: "Age 8 - Easy Addition", Description: "Two-digit + Two-digit (small numbers)", ProblemCount: 20, Generator: mixedAddition(10, 50, 10, 50)},
			level.Medium: {Name: "Age 8 - Medium Addition", Description: "Two-digit + Two-digit numbers", ProblemCount: 20, Generator: mixedAddition(10, 99, 10, 99)},
			level.Hard:   {Name: "Age 8 - Hard Addition", Description: "Three-digit operations", ProblemCount: 20, Generator: mixedAddition(100, 999, 10, 99)},
		},
		level.Age9Plus: {
			level.Easy:   {Name: "Ages 9+ - Easy Addition", Description: "Complex two-digit addition", ProblemCount: 20, Generator: mixedAddition(50, 99, 50, 99)},
			level.Medium: {Name: "Ages 9+ - Medium Addition", Description: "Three-digit addition", ProblemCount: 20, Generator: mixedAddition(100, 999, 100, 999)},
			level.Hard:   {Name: "Ages 9+ - Hard Addition", Description: "Decimal addition", ProblemCount: 20, Generator: decimalAddition(1, 100, 1)},
		},
		level.Age10Up: {
			level.Easy:   {Name: "Ages 10+ - Easy Addition", Description: "Four-digit addition", ProblemCount: 20, Generator: mixedAddition(1000, 9999, 100, 999)},
			level.Medium: {Name: "Ages 10+ - Medium Addition", Description: "Decimal addition (2 places)", ProblemCount: 20, Generator: decimalAddition(1, 100, 2)},
			level.Hard:   {Name: "Ages 10+ - Hard Addition", Description: "Fraction addition", ProblemCount: 20, Generator: fractionAddition()},
		},
	},
	Subtraction: {
		level.Age4to5: {
			level.Easy:   {Name: "Ages 4-5 - Easy Subtraction", Description: "Subtracting within 5", ProblemCount: 20, Generator: simpleSubtraction(1, 5)},
			level.Medium: {Name: "Ages 4-5 - Medium Subtraction", Description: "Subtracting within 10", ProblemCount: 20, Generator: simpleSubtraction(1, 10)},
			level.Hard:   {Name: "Ages 4-5 - Hard Subtraction", Description: "Subtracting within 15", ProblemCount: 20, Generator: simpleSubtraction(1, 15)},
		},
		level.Age6: {
			level.Easy:   {Name: "Age 6 - Easy Subtraction", Description: "Subtracting within 12", ProblemCount: 20, Generator: simpleSubtraction(3, 12)},
			level.Medium: {Name: "Age 6 - Medium Subtraction", Description: "Subtracting within 20", ProblemCount: 20, Generator: simpleSubtraction(5, 20)},
			level.Hard:   {Name: "Age 6 - Hard Subtraction", Description: "Two-digit - One-digit numbers", ProblemCount: 20, Generator: mixedSubtraction(10, 99, 1, 9)},
		},
		level.Age7: {
			level.Easy:   {Name: "Age 7 - Easy Subtraction", Description: "Subtracting within 25", ProblemCount: 20, Generator: simpleSubtraction(10, 25)},
			level.Medium: {Name: "Age 7 - Medium Subtraction", Description: "Two-digit - One-digit numbers", ProblemCount: 20, Generator: mixedSubtraction(10, 99, 1, 9)},
			level.Hard:   {Name: "Age 7 - Hard Subtraction", Description: "Two-digit - Two-digit numbers", ProblemCount: 20, Generator: mixedSubtraction(20, 99, 10, 30)},
		},
		level.Age8: {
			level.Easy:   {Name: "Age 8 - Easy Subtraction", Description: "Two-digit - Two-digit (easier)", ProblemCount: 20, Generator: mixedSubtraction(30, 99, 10, 40)},
			level.Medium: {Name: "Age 8 - Medium Subtraction", Description: "Two-digit - Two-digit numbers", ProblemCount: 20, Generator: mixedSubtraction(20, 99, 10, 30)},
			level.Hard:   {Name: "Age 8 - Hard Subtraction", Description: "Three-digit operations", ProblemCount: 20, Generator: mixedSubtraction(100, 999, 10, 99)},
		},
		level.Age9Plus: {
			level.Easy:   {Name: "Ages 9+ - Easy Subtraction", Description: "Complex two-digit subtraction", ProblemCount: 20, Generator: mixedSubtraction(50, 99, 10, 50)},
			level.Medium: {Name: "Ages 9+ - Medium Subtraction", Description: "Three-digit subtraction", ProblemCount: 20, Generator: mixedSubtraction(100, 999, 100, 500)},
			level.Hard:   {Name: "Ages 9+ - Hard Subtraction", Description: "Decimal subtraction", ProblemCount: 20, Generator: decimalSubtraction(1, 100, 1)},
		},
		level.Age10Up: {
			level.Easy:   {Name: "Ages 10+ - Easy Subtraction", Description: "Four-digit subtraction", ProblemCount: 20, Generator: mixedSubtraction(1000, 9999, 100, 999)},
			level.Medium: {Name: "Ages 10+ - Medium Subtraction", Description: "Decimal subtraction (2 places)", ProblemCount: 20, Generator: decimalSubtraction(1, 100, 2)},
			level.Hard:   {Name: "Ages 10+ - Hard Subtraction", Description: "Fraction subtraction", ProblemCount: 20, Generator: fractionSubtraction()},
		},
	},
	Multiplication: {
		level.Age4to5: {
			level.Easy:   {Name: "Ages 4-5 - Easy Multiplication", Description: "Multiply by 1", ProblemCount: 20, Generator: multiplication([]int{1}, 1, 10)},
			level.Medium: {Name: "Ages 4-5 - Medium Multiplication", Description: "Multiply by 1 and 2", ProblemCount: 20, Generator: multiplication([]int{1, 2}, 1, 5)},
			level.Hard:   {Name: "Ages 4-5 - Hard Multiplication", Description: "Multiply by 1 and 2", ProblemCount: 20, Generator: multiplication([]int{1, 2}, 1, 10)},
		},
		level.Age6: {
			level.Easy:   {Name: "Age 6 - Easy Multiplication", Description: "Multiply by 2 and 3", ProblemCount: 20, Generator: multiplication([]int{2, 3}, 1, 10)},
			level.Medium: {Name: "Age 6 - Medium Multiplication", Description: "Multiply by 3, 4, 5", ProblemCount: 20, Generator: multiplication([]int{3, 4, 5}, 1, 10)},
			level.Hard:   {Name: "Age 6 - Hard Multiplication", Description: "Multiply by 2-5", ProblemCount: 20, Generator: multiplication([]int{2, 3, 4, 5}, 1, 10)},
		},
		level.Age7: {
			level.Easy:   {Name: "Age 7 - Easy Multiplication", Description: "Multiply by 4, 5, 6", ProblemCount: 20, Generator: multiplication([]int{4, 5, 6}, 1, 10)},
			level.Medium: {Name: "Age 7 - Medium Multiplication", Description: "Multiply by 6, 7, 8, 9", ProblemCount: 20, Generator: multiplication([]int{6, 7, 8, 9}, 1, 10)},
			level.Hard:   {Name: "Age 7 - Hard Multiplication", Description: "Two-digit x One-digit", ProblemCount: 20, Generator: advancedMultiplication(10, 99, 2, 9)},
		},
		level.Age8: {
			level.Easy:   {Name: "Age 8 - Easy Multiplication", Description: "Multiply by 7, 8, 9, 10", ProblemCount: 20, Generator: multiplication([]int{7, 8, 9, 10}, 1, 12)},
			level.Medium: {Name: "Age 8 - Medium Multiplication", Description: "Two-digit x One-digit", ProblemCount: 20, Generator: advancedMultiplication(10, 99, 2, 9)},
			level.Hard:   {Name: "Age 8 - Hard Multiplication", Description: "Two-digit x Two-digit", ProblemCount: 20, Generator: advancedMultiplication(10, 50, 10, 50)},
		},
		level.Age9Plus: {
			level.Easy:   {Name: "Ages 9+ - Easy Multiplication", Description: "Two-digit x One-digit (larger)", ProblemCount: 20, Generator: advancedMultiplication(20, 99, 5, 9)},
			level.Medium: {Name: "Ages 9+ - Medium Multiplication", Description: "Larger two-digit multiplication", ProblemCount: 20, Generator: advancedMultiplication(20, 99, 10, 99)},
			level.Hard:   {Name: "Ages 9+ - Hard Multiplication", Description: "Three-digit x Two-digit", ProblemCount: 20, Generator: advancedMultiplication(100, 999, 10, 99)},
		},
		level.Age10Up: {
			level.Easy:   {Name: "Ages 10+ - Easy Multiplication", Description: "Two-digit x Two-digit (larger)", ProblemCount: 20, Generator: advancedMultiplication(30, 99, 20, 99)},
			level.Medium: {Name: "Ages 10+ - Medium Multiplication", Description: "Decimal multiplication", ProblemCount: 20, Generator: decimalMultiplication(1, 50, 1)},
			level.Hard:   {Name: "Ages 10+ - Hard Multiplication", Description: "Fraction multiplication", ProblemCount: 20, Generator: fractionMultiplication()},
		},
	},
	Division: {
		level.Age4to5: {
			level.Easy:   {Name: "Ages 4-5 - Easy Division", Description: "Divide by 1", ProblemCount: 20, Generator: division([]int{1}, 1, 10)},
			level.Medium: {Name: "Ages 4-5 - Medium Division", Description: "Divide by 1 and 2", ProblemCount: 20, Generator: division([]int{1, 2}, 1, 5)},
			level.Hard:   {Name: "Ages 4-5 - Hard Division", Description: "Divide by 1 and 2", ProblemCount: 20, Generator: division([]int{1, 2}, 1, 10)},
		},
		level.Age6: {
			level.Easy:   {Name: "Age 6 - Easy Division", Description: "Divide by 2 and 3", ProblemCount: 20, Generator: division([]int{2, 3}, 1, 10)},
			level.Medium: {Name: "Age 6 - Medium Division", Description: "Divide by 3, 4, 5", ProblemCount: 20, Generator: division([]int{3, 4, 5}, 1, 10)},
			level.Hard:   {Name: "Age 6 - Hard Division", Description: "Divide by 2-5", ProblemCount: 20, Generator: division([]int{2, 3, 4, 5}, 1, 10)},
		},
		level.Age7: {
			level.Easy:   {Name: "Age 7 - Easy Division", Description: "Divide by 4, 5, 6", ProblemCount: 20, Generator: division([]int{4, 5, 6}, 1, 10)},
			level.Medium: {Name: "Age 7 - Medium Division", Description: "Divide by 6, 7, 8, 9", ProblemCount: 20, Generator: division([]int{6, 7, 8, 9}, 1, 10)},
			level.Hard:   {Name: "Age 7 - Hard Division", Description: "Two-digit / One-digit", ProblemCount: 20, Generator: advancedDivision(10, 99, 2, 9, false)},
		},
		level.Age8: {
			level.Easy:   {Name: "Age 8 - Easy Division", Description: "Divide by 7, 8, 9, 10", ProblemCount: 20, Generator: division([]int{7, 8, 9, 10}, 1, 12)},
			level.Medium: {Name: "Age 8 - Medium Division", Description: "Two-digit / One-digit", ProblemCount: 20, Generator: advancedDivision(10, 99, 2, 9, false)},
			level.Hard:   {Name: "Age 8 - Hard Division", Description: "Division with remainders", ProblemCount: 20, Generator: advancedDivision(10, 99, 2, 9, true)},
		},
		level.Age9Plus: {
			level.Easy:   {Name: "Ages 9+ - Easy Division", Description: "Two-digit / One-digit (larger)", ProblemCount: 20, Generator: advancedDivision(20, 99, 5, 9, false)},
			level.Medium: {Name: "Ages 9+ - Medium Division", Description: "Three-digit / Two-digit", ProblemCount: 20, Generator: advancedDivision(100, 999, 10, 50, false)},
			level.Hard:   {Name: "Ages 9+ - Hard Division", Description: "Complex division with remainders", ProblemCount: 20, Generator: advancedDivision(100, 999, 10, 50, true)},
		},
		level.Age10Up: {
			level.Easy:   {Name: "Ages 10+ - Easy Division", Description: "Division with remainders (advanced)", ProblemCount: 20, Generator: advancedDivision(50, 200, 6, 12, true)},
			level.Medium: {Name: "Ages 10+ - Medium Division", Description: "Decimal division", ProblemCount: 20, Generator: decimalDivision(10, 100, 1)},
			level.Hard:   {Name: "Ages 10+ - Hard Division", Description: "Fraction division", ProblemCount: 20, Generator: fractionDivision()},
		},
	},
}

// ConfigByAge resolves the content cell for an operation, age group and
// difficulty by going through the level fold, so medium and hard land on
// the same cell their shared level points to.
func ConfigByAge(op Operation, age level.AgeGroup, diff level.Difficulty) (Config, bool) {
	lvl, err := level.ToLevel(age, diff)
	if err != nil {
		return Config{}, false
	}
	return ConfigByLevel(op, lvl)
}

// ConfigByLevel picks the cell for a level. Even levels fold medium and
// hard together; hard wins when both map to the same level so each level
// serves its most demanding variant.
func ConfigByLevel(op Operation, lvl level.Level) (Config, bool) {
	age := lvl.AgeGroup()
	for _, diff := range []level.Difficulty{level.Hard, level.Medium, level.Easy} {
		if mapped, err := level.ToLevel(age, diff); err == nil && mapped == lvl {
			if cfg, ok := mathConfigs[op][age][diff]; ok {
				return cfg, true
			}
		}
	}
	return Config{}, false
}
