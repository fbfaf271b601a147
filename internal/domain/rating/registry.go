package rating

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry errors.
var (
	ErrUnknownSystem   = errors.New("unknown rating system")
	ErrDuplicateSystem = errors.New("rating system already registered")
)

// Registry maps rating-system ids to strategies. Systems are registered once
// while the process starts; afterwards the registry is only read. Register,
// Unregister and Clear take the write lock and are not meant for request
// paths.
type Registry struct {
	mu      sync.RWMutex
	systems map[string]Strategy
}

// NewRegistry returns a registry holding the given strategies.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	r := &Registry{systems: make(map[string]Strategy, len(strategies))}
	for _, s := range strategies {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a strategy. It fails if the id is already taken.
func (r *Registry) Register(s Strategy) error {
	if s == nil {
		return errors.New("rating system must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.systems[s.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSystem, s.ID())
	}
	r.systems[s.ID()] = s
	return nil
}

// Lookup returns the strategy registered under id, if any.
func (r *Registry) Lookup(id string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.systems[id]
	return s, ok
}

// Get returns the strategy registered under id. The error for an unknown id
// lists the registered ids, or "none".
func (r *Registry) Get(id string) (Strategy, error) {
	if s, ok := r.Lookup(id); ok {
		return s, nil
	}
	available := "none"
	if ids := r.IDs(); len(ids) > 0 {
		available = strings.Join(ids, ", ")
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownSystem, id, available)
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.systems))
	for id := range r.systems {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Unregister removes id and reports whether it was present.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.systems[id]; !ok {
		return false
	}
	delete(r.systems, id)
	return true
}

// Clear removes every strategy. Intended for test isolation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.systems)
}
