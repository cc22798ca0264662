// Package registry provides test class registration, lookup, and
// name-ordered retrieval.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"digital.vasic.browserrunner/pkg/suite"
)

var (
	// ErrClassNotFound is returned when no class has the name.
	ErrClassNotFound = errors.New("class not found")

	// ErrMethodNotFound is returned when a class has no method
	// with the name.
	ErrMethodNotFound = errors.New("method not found")
)

// Registry defines the interface for managing test classes.
type Registry interface {
	// Register adds a class.
	Register(c *suite.Class) error

	// Get retrieves a class by name.
	Get(name string) (*suite.Class, error)

	// Method retrieves a method of a registered class.
	Method(class, method string) (*suite.Method, error)

	// Update runs fn on a method while holding the write lock.
	Update(class, method string, fn func(*suite.Method)) error

	// List returns all registered classes sorted by name.
	List() []*suite.Class

	// Clear removes all classes.
	Clear()

	// Count returns the number of registered classes.
	Count() int
}

// DefaultRegistry is the standard Registry implementation.
// It is safe for concurrent use.
type DefaultRegistry struct {
	mu      sync.RWMutex
	classes map[string]*suite.Class
}

// NewRegistry creates a new, empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		classes: make(map[string]*suite.Class),
	}
}

// Default is the package-level default registry instance.
var Default = NewRegistry()

// Register adds a class to the registry. Returns an error if a
// class with the same name is already registered.
func (r *DefaultRegistry) Register(c *suite.Class) error {
	if c == nil || c.Name == "" {
		return errors.New("class must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[c.Name]; exists {
		return fmt.Errorf("class already registered: %s", c.Name)
	}
	r.classes[c.Name] = c
	return nil
}

// Get retrieves a class by name.
func (r *DefaultRegistry) Get(name string) (*suite.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.classes[name]
	if !exists {
		return nil, fmt.Errorf("%s: %w", name, ErrClassNotFound)
	}
	return c, nil
}

// Method retrieves a method of a registered class.
func (r *DefaultRegistry) Method(class, method string) (*suite.Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lookup(class, method)
}

// Update applies fn to a method under the write lock, so that bank
// records never race with readers.
func (r *DefaultRegistry) Update(class, method string, fn func(*suite.Method)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.lookup(class, method)
	if err != nil {
		return err
	}
	fn(m)
	return nil
}

func (r *DefaultRegistry) lookup(class, method string) (*suite.Method, error) {
	c, exists := r.classes[class]
	if !exists {
		return nil, fmt.Errorf("%s: %w", class, ErrClassNotFound)
	}
	m := c.Method(method)
	if m == nil {
		return nil, fmt.Errorf("%s.%s: %w", class, method, ErrMethodNotFound)
	}
	return m, nil
}

// List returns all registered classes sorted by name.
func (r *DefaultRegistry) List() []*suite.Class {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*suite.Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Clear removes all classes.
func (r *DefaultRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.classes = make(map[string]*suite.Class)
}

// Count returns the number of registered classes.
func (r *DefaultRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}
