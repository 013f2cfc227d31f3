package content

import (
	"fmt"

	"github.com/gleegrow/gleegrow-api/internal/level"
)

// PageInfo describes the content cell a generated page came from.
type PageInfo struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	ProblemCount int              `json:"problem_count"`
	Difficulty   level.Difficulty `json:"difficulty"`
	RelativePage int              `json:"relative_page"`
}

// MaxAbsolutePage is the number of worksheet pages per math operation:
// 50 easy, 50 medium, 50 hard.
const MaxAbsolutePage = 150

// PageProblems regenerates the fixed problem set for one worksheet page.
// The seed is derived from the full coordinate, so the same page always
// holds the same problems.
func PageProblems(op Operation, age level.AgeGroup, diff level.Difficulty, page int) ([]Problem, PageInfo, error) {
	cfg, ok := ConfigByAge(op, age, diff)
	if !ok {
		return nil, PageInfo{}, fmt.Errorf("content: no config for %s %s %s", op, age, diff)
	}
	r := NewRand(HashCode(fmt.Sprintf("%s-%s-%s-%d", op, age, diff, page)))
	problems := make([]Problem, 0, cfg.ProblemCount)
	for i := 0; i < cfg.ProblemCount; i++ {
		problems = append(problems, cfg.Generator(r))
	}
	return problems, PageInfo{
		Name:         cfg.Name,
		Description:  cfg.Description,
		ProblemCount: cfg.ProblemCount,
		Difficulty:   diff,
	}, nil
}

// AbsolutePageProblems maps an absolute page number (1-150) onto its
// difficulty band and relative page, then generates that page.
func AbsolutePageProblems(op Operation, age level.AgeGroup, absolutePage int) ([]Problem, PageInfo, error) {
	if absolutePage < 1 || absolutePage > MaxAbsolutePage {
		return nil, PageInfo{}, fmt.Errorf("content: absolute page %d out of range 1-%d", absolutePage, MaxAbsolutePage)
	}
	var diff level.Difficulty
	var rel int
	switch {
	case absolutePage <= 50:
		diff, rel = level.Easy, absolutePage
	case absolutePage <= 100:
		diff, rel = level.Medium, absolutePage-50
	default:
		diff, rel = level.Hard, absolutePage-100
	}
	problems, info, err := PageProblems(op, age, diff, rel)
	if err != nil {
		return nil, PageInfo{}, err
	}
	info.RelativePage = rel
	return problems, info, nil
}
