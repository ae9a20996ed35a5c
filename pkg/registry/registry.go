package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/molssi-seamm/anistep/pkg/errors"
)

// Registry stores items by name, safe for concurrent use. The zero
// value is not usable; create one with New.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register adds item under name. The name must be non-empty and not
// yet taken.
func (r *Registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.items[name]; taken {
		return errors.Newf(errors.ErrAlreadyExists, "'%s' already registered", name)
	}
	r.items[name] = item
	return nil
}

// Get returns the item registered under name.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	if !ok {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "'%s' not registered", name)
	}
	return item, nil
}

// Remove deletes the item registered under name.
func (r *Registry[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[name]; !ok {
		return errors.Newf(errors.ErrNotFound, "'%s' not registered", name)
	}
	delete(r.items, name)
	return nil
}

// Has reports whether name is registered.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[name]
	return ok
}

// List returns the registered names, sorted.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered items.
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics on failure. Meant for
// init() time registration, where a clash is a programming error.
func MustRegister[T any](r *Registry[T], name string, item T) {
	if err := r.Register(name, item); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}
