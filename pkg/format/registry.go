package format

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds formatting rules.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Rule
	byName map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Rule),
		byName: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// If a rule with the same ID already exists, it is replaced.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byID[rule.ID()]; ok {
		delete(r.byName, old.Name())
	}
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
}

// Get retrieves a rule by ID or name.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[key]; ok {
		return rule, true
	}
	rule, ok := r.byName[key]
	return rule, ok
}

// Resolve returns the canonical ID for a rule ID or name.
func (r *Registry) Resolve(key string) (string, bool) {
	rule, ok := r.Get(key)
	if !ok {
		return "", false
	}
	return rule.ID(), true
}

// Rules returns all registered rules in pipeline order: by stage, then by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}

	slices.SortFunc(result, func(a, b Rule) int {
		if c := cmp.Compare(a.Stage(), b.Stage()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})

	return result
}

// IDs returns all registered rule IDs in pipeline order.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, len(rules))
	for i, rule := range rules {
		ids[i] = rule.ID()
	}
	return ids
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
