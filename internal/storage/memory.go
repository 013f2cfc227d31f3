package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is the in-process Store used by tests and offline runs.
type MemoryStore struct {
	mu          sync.RWMutex
	parents     map[string]Parent // keyed by email
	children    map[string]Child
	assessments map[string]AssessmentRecord // childID|subject
	completions map[string]CompletionRecord // childKey|module|identifier
	levelTests  map[string]LevelTestRecord  // childID|module|week
	weekly      map[string][]WeeklyAssignment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		parents:     map[string]Parent{},
		children:    map[string]Child{},
		assessments: map[string]AssessmentRecord{},
		completions: map[string]CompletionRecord{},
		levelTests:  map[string]LevelTestRecord{},
		weekly:      map[string][]WeeklyAssignment{},
	}
}

func join(parts ...string) string { return strings.Join(parts, "|") }

func (m *MemoryStore) GetParentByEmail(_ context.Context, email string) (Parent, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.parents[email]
	return p, ok, nil
}

func (m *MemoryStore) PutParent(_ context.Context, p Parent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parents[p.Email] = p
	return nil
}

func (m *MemoryStore) GetChild(_ context.Context, childID string) (Child, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.children[childID]
	return c, ok, nil
}

func (m *MemoryStore) PutChild(_ context.Context, c Child) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.children[c.ID] = c
	return nil
}

func (m *MemoryStore) ListChildren(_ context.Context, parentUID string) ([]Child, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Child{}
	for _, c := range m.children {
		if c.ParentUID == parentUID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetAssessment(_ context.Context, childID, subject string) (AssessmentRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.assessments[join(childID, subject)]
	return rec, ok, nil
}

func (m *MemoryStore) PutAssessment(_ context.Context, childID, subject string, rec AssessmentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments[join(childID, subject)] = rec
	return nil
}

func (m *MemoryStore) GetCompletion(_ context.Context, childKey, module, identifier string) (CompletionRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.completions[join(childKey, module, identifier)]
	return rec, ok, nil
}

func (m *MemoryStore) PutCompletion(_ context.Context, rec CompletionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completions[join(rec.ChildKey, rec.Module, rec.Identifier)] = rec
	return nil
}

func (m *MemoryStore) ListCompletions(_ context.Context, childKey, module, identifierPrefix string) ([]CompletionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []CompletionRecord{}
	for _, rec := range m.completions {
		if rec.ChildKey == childKey && rec.Module == module && strings.HasPrefix(rec.Identifier, identifierPrefix) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out, nil
}

func (m *MemoryStore) GetLevelTest(_ context.Context, childID, module, week string) (LevelTestRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.levelTests[join(childID, module, week)]
	return rec, ok, nil
}

func (m *MemoryStore) PutLevelTest(_ context.Context, rec LevelTestRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levelTests[join(rec.ChildID, rec.Module, rec.Week)] = rec
	return nil
}

func (m *MemoryStore) ListWeeklyAssignments(_ context.Context, childID string, limit int) ([]WeeklyAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := append([]WeeklyAssignment(nil), m.weekly[childID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MemoryStore) PutWeeklyAssignment(_ context.Context, a WeeklyAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.weekly[a.ChildID]
	for i, existing := range list {
		if existing.Week == a.Week {
			list[i] = a
			m.weekly[a.ChildID] = list
			return nil
		}
	}
	m.weekly[a.ChildID] = append(list, a)
	return nil
}

var _ Store = (*MemoryStore)(nil)
