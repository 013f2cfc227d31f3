package assessment

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/level"
)

// TierPolicy controls what happens when a tier has no registered content
// generator.
type TierPolicy string

const (
	// TierProceed logs the gap and continues with fewer questions. The
	// percentage is then computed over the questions actually asked.
	TierProceed TierPolicy = "proceed"
	// TierStrict aborts the whole generation.
	TierStrict TierPolicy = "strict"
)

// PerTier and TotalQuestions fix the diagnostic shape: four tiers of five.
const (
	PerTier        = 5
	TotalQuestions = 20
)

// ErrNoGenerators is returned when no tier could contribute anything.
var ErrNoGenerators = errors.New("assessment: no content generators registered for any tier")

// MissingTierError reports a single unregistered tier under TierStrict.
type MissingTierError struct {
	Subject    content.Subject
	Operation  content.Operation
	Age        level.AgeGroup
	Difficulty level.Difficulty
}

func (e *MissingTierError) Error() string {
	return fmt.Sprintf("assessment: no generator for %s/%s age %s %s", e.Subject, e.Operation, e.Age, e.Difficulty)
}

// Generator builds tiered diagnostic question sets from the content
// registry.
type Generator struct {
	registry *content.Registry
	policy   TierPolicy
}

func NewGenerator(registry *content.Registry, policy TierPolicy) *Generator {
	if policy == "" {
		policy = TierProceed
	}
	return &Generator{registry: registry, policy: policy}
}

// Generate pulls five questions from each of four tiers — (younger, easy),
// (current, easy), (current, medium), (older, easy) — then shuffles. When
// seedKey is non-empty the whole set is deterministic for that key, which
// is how a submission is regenerated server-side for grading; an empty
// seedKey produces a fresh set every call.
func (g *Generator) Generate(subject content.Subject, op content.Operation, age level.AgeGroup, seedKey string) ([]Question, error) {
	var r *content.Rand
	if seedKey != "" {
		r = content.NewRand(content.HashCode(seedKey))
	} else {
		r = content.NewRand(time.Now().UnixNano() % 233280)
	}

	younger := age.Younger()
	older := age.Older()
	pulls := []struct {
		age  level.AgeGroup
		diff level.Difficulty
		tier Tier
	}{
		{younger, level.Easy, TierYoungerEasy},
		{age, level.Easy, TierCurrentEasy},
		{age, level.Medium, TierCurrentMedium},
		{older, level.Easy, TierOlderEasy},
	}

	questions := make([]Question, 0, TotalQuestions)
	missing := 0
	for _, pull := range pulls {
		cfg, ok := g.registry.Lookup(subject, op, pull.age, pull.diff)
		if !ok {
			if g.policy == TierStrict {
				return nil, &MissingTierError{Subject: subject, Operation: op, Age: pull.age, Difficulty: pull.diff}
			}
			log.Printf("assessment: no generator for %s/%s age %s %s, tier skipped", subject, op, pull.age, pull.diff)
			missing++
			continue
		}
		for i := 0; i < PerTier; i++ {
			p := cfg.Generator(r)
			questions = append(questions, Question{
				Subject:          subject,
				Operation:        op,
				Prompt:           Prompt(subject, op, p),
				Answer:           p.Answer,
				SourceAge:        pull.age,
				SourceDifficulty: pull.diff,
				Tier:             pull.tier,
			})
		}
	}

	if missing == len(pulls) {
		return []Question{}, ErrNoGenerators
	}

	shuffle(r, questions)
	if len(questions) > TotalQuestions {
		questions = questions[:TotalQuestions]
	}
	return questions, nil
}

// Prompt renders a generated problem for a subject: math problems become
// an expression, English problems a missing-letter spelling prompt.
func Prompt(subject content.Subject, op content.Operation, p content.Problem) string {
	if subject == content.SubjectEnglish {
		return fmt.Sprintf("Fill in the missing letter: %s", p.A)
	}
	return p.Prompt(op)
}

// shuffle is an in-place Fisher-Yates walk: last index down, swapping with
// a uniformly chosen earlier-or-equal slot.
func shuffle(r *content.Rand, qs []Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// SeedKey derives the deterministic generation key for a child's
// assessment, matching what the validation side regenerates from.
func SeedKey(childID string, subject content.Subject, op content.Operation) string {
	if subject == content.SubjectEnglish {
		return fmt.Sprintf("assessment-%s-english", childID)
	}
	return fmt.Sprintf("assessment-%s-%s", childID, op)
}
