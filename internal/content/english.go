package content

import (
	"fmt"
	"strings"

	"github.com/gleegrow/gleegrow-api/internal/level"
)

// English assessment items are spelling/word prompts drawn from a per-age
// word bank. The bank here is the diagnostic subset; the full vocabulary
// lists live with the worksheet content and are not part of this engine.

var englishWords = map[level.AgeGroup]map[level.Difficulty][]string{
	level.Age4to5: {
		level.Easy:   {"cat", "dog", "sun", "hat", "cup"},
		level.Medium: {"fish", "bird", "ball", "tree", "milk"},
		level.Hard:   {"apple", "house", "water", "happy", "chair"},
	},
	level.Age6: {
		level.Easy:   {"frog", "star", "cake", "ship", "ring"},
		level.Medium: {"plant", "cloud", "smile", "bread", "grass"},
		level.Hard:   {"school", "friend", "orange", "yellow", "garden"},
	},
	level.Age7: {
		level.Easy:   {"train", "horse", "light", "sound", "night"},
		level.Medium: {"planet", "window", "animal", "family", "little"},
		level.Hard:   {"morning", "kitchen", "picture", "country", "teacher"},
	},
	level.Age8: {
		level.Easy:   {"castle", "rocket", "forest", "winter", "summer"},
		level.Medium: {"journey", "giraffe", "whistle", "thunder", "rainbow"},
		level.Hard:   {"mountain", "elephant", "favorite", "question", "sandwich"},
	},
	level.Age9Plus: {
		level.Easy:   {"library", "history", "weather", "science", "holiday"},
		level.Medium: {"adventure", "beautiful", "important", "different", "chocolate"},
		level.Hard:   {"celebrate", "dangerous", "knowledge", "neighbour", "vegetable"},
	},
	level.Age10Up: {
		level.Easy:   {"character", "continent", "direction", "invention", "furniture"},
		level.Medium: {"temperature", "electricity", "imagination", "environment", "celebration"},
		level.Hard:   {"pronunciation", "encyclopedia", "extraordinary", "communication", "Mediterranean"},
	},
}

// englishGenerator builds a missing-letter spelling prompt from the word
// bank: one letter blanked, the full word is the expected answer.
func englishGenerator(age level.AgeGroup, diff level.Difficulty) GenFunc {
	words := englishWords[age][diff]
	return func(r *Rand) Problem {
		w := words[r.IntN(len(words))]
		pos := r.IntN(len(w))
		blanked := w[:pos] + "_" + w[pos+1:]
		return Problem{
			A:      blanked,
			Answer: strings.ToLower(w),
		}
	}
}

// EnglishConfigByAge resolves the English content cell. English is keyed by
// (age, difficulty) only; there is no operation dimension.
func EnglishConfigByAge(age level.AgeGroup, diff level.Difficulty) (Config, bool) {
	if _, ok := englishWords[age][diff]; !ok {
		return Config{}, false
	}
	return Config{
		Name:         fmt.Sprintf("Age %s - %s English", age, diff),
		Description:  "Spelling with a missing letter",
		ProblemCount: 20,
		Generator:    englishGenerator(age, diff),
	}, true
}
