package level

import "fmt"

var displayNames = map[Level]string{
	1:  "Level 1 - Basic Foundations",
	2:  "Level 2 - Pre-K Advanced",
	3:  "Level 3 - Kindergarten Basics",
	4:  "Level 4 - Kindergarten Advanced",
	5:  "Level 5 - 1st Grade Basics",
	6:  "Level 6 - 1st Grade Advanced",
	7:  "Level 7 - 2nd Grade Basics",
	8:  "Level 8 - 2nd Grade Advanced",
	9:  "Level 9 - 3rd Grade Basics",
	10: "Level 10 - 4th Grade Advanced",
	11: "Level 11 - Advanced Basics",
	12: "Level 12 - Pre-Teen Advanced",
}

var descriptions = map[Level]string{
	1:  "Basic foundations for early learners",
	2:  "Advanced pre-kindergarten content",
	3:  "Kindergarten level basics",
	4:  "Advanced kindergarten content",
	5:  "First grade fundamentals",
	6:  "Advanced first grade content",
	7:  "Second grade fundamentals",
	8:  "Advanced second grade content",
	9:  "Third grade level content",
	10: "Fourth grade level content",
	11: "Advanced elementary content",
	12: "Pre-teen advanced content",
}

// DisplayName returns the long form name shown in level pickers.
func (l Level) DisplayName() string {
	if n, ok := displayNames[l]; ok {
		return n
	}
	return fmt.Sprintf("Level %d", l)
}

// ShortName returns the compact form.
func (l Level) ShortName() string { return fmt.Sprintf("Level %d", l) }

// Description returns a one-line summary of a level's content.
func (l Level) Description() string {
	if d, ok := descriptions[l]; ok {
		return d
	}
	return fmt.Sprintf("Level %d content", l)
}
