package level

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Completion records were historically keyed "operation-ageGroup-difficulty"
// and are now keyed "operation-levelN". Both directions are needed while
// stored data from the age-based scheme is still around.

var levelIDPattern = regexp.MustCompile(`^(.+)-level(\d+)$`)

// AgeIdentifierToLevel rewrites an age-based identifier such as
// "addition-6-medium" to "addition-level4". Identifiers that do not parse
// pass through unchanged.
func AgeIdentifierToLevel(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 3 {
		return id
	}
	op := parts[0]
	age := AgeGroup(parts[1])
	diff := Difficulty(parts[2])
	// "4-5" splits into two parts; re-join when the middle looks numeric-range.
	if len(parts) >= 4 && parts[1] == "4" && parts[2] == "5" {
		age = Age4to5
		diff = Difficulty(parts[3])
	}
	lvl, err := ToLevel(age, diff)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%s-level%d", op, lvl)
}

// LevelIdentifierToAge rewrites "addition-level4" back to
// "addition-6-medium" for the migration path.
func LevelIdentifierToAge(id string) string {
	m := levelIDPattern.FindStringSubmatch(id)
	if m == nil {
		return id
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return id
	}
	lvl := Level(n)
	return fmt.Sprintf("%s-%s-%s", m[1], lvl.AgeGroup(), lvl.Difficulty())
}

// PageIdentifier builds the completion key for one page within a level,
// e.g. ("addition", 1, 3) -> "addition-level1-page3".
func PageIdentifier(prefix string, lvl Level, page int) string {
	return fmt.Sprintf("%s-level%d-page%d", prefix, lvl, page)
}

// LevelPrefix builds the identifier prefix shared by all pages of a level.
func LevelPrefix(module string, lvl Level) string {
	return fmt.Sprintf("%s-level%d", module, lvl)
}
