// Package content is the deterministic worksheet/problem engine. Given the
// same (operation, age group, difficulty, page) it always produces the same
// problems with the same answers; the validation service relies on this to
// regenerate a page server-side instead of trusting client-reported scores.
package content

import (
	"fmt"
	"strconv"
	"strings"
)

// Operation is a math worksheet operation.
type Operation string

const (
	Addition       Operation = "addition"
	Subtraction    Operation = "subtraction"
	Multiplication Operation = "multiplication"
	Division       Operation = "division"
)

var Operations = []Operation{Addition, Subtraction, Multiplication, Division}

var opSymbols = map[Operation]string{
	Addition:       "+",
	Subtraction:    "−",
	Multiplication: "×",
	Division:       "÷",
}

// Symbol returns the display symbol for an operation.
func (o Operation) Symbol() string {
	if s, ok := opSymbols[o]; ok {
		return s
	}
	return "+"
}

// Known reports whether o is a supported operation.
func (o Operation) Known() bool {
	_, ok := opSymbols[o]
	return ok
}

// Problem is a single generated exercise. Operands and answer are kept as
// strings because higher levels produce decimals, remainders ("12 r 3") and
// fractions ("3/4") alongside plain integers.
type Problem struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Answer string `json:"answer"`
}

// Prompt renders the problem the way worksheets display it.
func (p Problem) Prompt(op Operation) string {
	return fmt.Sprintf("%s %s %s =", p.A, op.Symbol(), p.B)
}

func itoa(n int) string { return strconv.Itoa(n) }

// ftoa formats a float the way the worksheet engine always has: fixed
// decimals, then trimmed of a trailing ".0" run so 3.50 prints as 3.5 and
// 4.0 as 4.
func ftoa(f float64, places int) string {
	s := strconv.FormatFloat(f, 'f', places, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// CompareAnswers grades a raw user answer against the expected one.
// Blank input is always wrong. If the expected answer parses as a number,
// both sides are compared numerically (so "07" matches "7" and "3.50"
// matches "3.5"); otherwise the comparison is case-insensitive with all
// whitespace stripped.
func CompareAnswers(user, expected string) bool {
	user = strings.TrimSpace(user)
	if user == "" {
		return false
	}
	ev, eErr := strconv.ParseFloat(strings.TrimSpace(expected), 64)
	if eErr == nil {
		uv, uErr := strconv.ParseFloat(user, 64)
		return uErr == nil && uv == ev
	}
	norm := func(s string) string {
		return strings.ToLower(strings.Join(strings.Fields(s), ""))
	}
	return norm(user) == norm(expected)
}
