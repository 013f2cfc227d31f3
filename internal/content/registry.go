package content

import (
	"github.com/gleegrow/gleegrow-api/internal/level"
)

// Subject selects which content family a generator lookup targets.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectEnglish Subject = "english"
)

// Registry resolves (subject, operation, age, difficulty) to an optional
// content cell. Lookups that have no registered generator return ok=false;
// callers decide whether that degrades or aborts. The default registry
// serves the built-in math and English tables; tests and future modules
// (aptitude, EQ) can register their own cells.
type Registry struct {
	overrides map[string]Config
}

// NewRegistry returns a registry backed by the built-in content tables.
func NewRegistry() *Registry {
	return &Registry{overrides: map[string]Config{}}
}

func key(subject Subject, op Operation, age level.AgeGroup, diff level.Difficulty) string {
	return string(subject) + "|" + string(op) + "|" + string(age) + "|" + string(diff)
}

// Register installs or replaces a content cell. Registering with a zero
// Generator removes the cell, which is how tests simulate a missing tier.
func (g *Registry) Register(subject Subject, op Operation, age level.AgeGroup, diff level.Difficulty, cfg Config) {
	g.overrides[key(subject, op, age, diff)] = cfg
}

// Lookup resolves a content cell. Overrides win over the built-in tables.
func (g *Registry) Lookup(subject Subject, op Operation, age level.AgeGroup, diff level.Difficulty) (Config, bool) {
	if cfg, ok := g.overrides[key(subject, op, age, diff)]; ok {
		if cfg.Generator == nil {
			return Config{}, false
		}
		return cfg, true
	}
	switch subject {
	case SubjectMath:
		return ConfigByAge(op, age, diff)
	case SubjectEnglish:
		return EnglishConfigByAge(age, diff)
	default:
		return Config{}, false
	}
}
