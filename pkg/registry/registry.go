package registry

import (
	"sort"
	"sync"

	"github.com/arthur-debert/fae/pkg/errors"
)

// Table is a thread-safe lookup table of items by name
type Table[T any] interface {
	// Register adds an item, failing when the name is empty or taken
	Register(name string, item T) error

	// Get retrieves an item
	Get(name string) (T, bool)

	// List returns all registered names in sorted order
	List() []string
}

type table[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewTable creates an empty Table
func NewTable[T any]() Table[T] {
	return &table[T]{
		items: make(map[string]T),
	}
}

func (t *table[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "table entry name cannot be empty")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.items[name]; exists {
		return errors.Newf(errors.ErrInvalidInput, "%q is already registered", name)
	}

	t.items[name] = item
	return nil
}

func (t *table[T]) Get(name string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, exists := t.items[name]
	return item, exists
}

func (t *table[T]) List() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.items))
	for name := range t.items {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// MustRegister registers an item and panics if registration fails.
// Meant for init() functions, where a failure is a programming error.
func MustRegister[T any](t Table[T], name string, item T) {
	if err := t.Register(name, item); err != nil {
		panic("failed to register " + name + ": " + err.Error())
	}
}
