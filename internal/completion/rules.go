// Package completion decides when a page counts as done and which pages
// and levels a child may open next.
package completion

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules is the per-module progression policy.
type Rules struct {
	RequiresScore    bool `yaml:"requires_score" json:"requires_score"`
	MinimumScore     int  `yaml:"minimum_score" json:"minimum_score"`
	SequentialPages  bool `yaml:"sequential_pages" json:"sequential_pages"`
	SequentialLevels bool `yaml:"sequential_levels" json:"sequential_levels"`
}

// Free is the policy for modules with no gating at all.
var Free = Rules{}

// moduleRules is the built-in policy table. Academic modules gate on a
// near-perfect score and strict ordering; creative modules are open.
var moduleRules = map[string]Rules{
	"math":        {RequiresScore: true, MinimumScore: 95, SequentialPages: true, SequentialLevels: true},
	"english":     {RequiresScore: true, MinimumScore: 95, SequentialPages: true, SequentialLevels: true},
	"aptitude":    {RequiresScore: true, MinimumScore: 95, SequentialPages: true, SequentialLevels: true},
	"drawing":     Free,
	"german":      Free,
	"german-kids": Free,
	"stories":     Free,
	"eq":          Free,
}

// modulePages is how many pages each module's catalog holds per level
// span. Unknown modules fall back to 10.
var modulePages = map[string]int{
	"math":        150,
	"aptitude":    50,
	"english":     20,
	"stories":     10,
	"drawing":     5,
	"german":      5,
	"german-kids": 5,
	"eq":          10,
}

const defaultPages = 10

// RuleSet resolves modules to their progression rules. An unknown module
// gets Free: a module nobody configured must never lock a child out.
type RuleSet struct {
	rules map[string]Rules
	pages map[string]int
}

// DefaultRuleSet returns the built-in policy table.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{rules: moduleRules, pages: modulePages}
}

// rulesFile is the YAML override layout.
type rulesFile struct {
	Modules map[string]Rules `yaml:"modules"`
	Pages   map[string]int   `yaml:"pages"`
}

// LoadRuleSet reads a YAML policy file layered over the built-in table.
// Modules absent from the file keep their defaults.
func LoadRuleSet(path string) (*RuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("completion: reading rules file: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("completion: parsing rules file %s: %w", path, err)
	}

	rs := &RuleSet{rules: map[string]Rules{}, pages: map[string]int{}}
	for k, v := range moduleRules {
		rs.rules[k] = v
	}
	for k, v := range modulePages {
		rs.pages[k] = v
	}
	for k, v := range f.Modules {
		rs.rules[k] = v
	}
	for k, v := range f.Pages {
		rs.pages[k] = v
	}
	return rs, nil
}

// For returns the rules for a module, Free when unknown.
func (rs *RuleSet) For(module string) Rules {
	if r, ok := rs.rules[module]; ok {
		return r
	}
	return Free
}

// TotalPages returns the module's catalog size.
func (rs *RuleSet) TotalPages(module string) int {
	if n, ok := rs.pages[module]; ok {
		return n
	}
	return defaultPages
}
