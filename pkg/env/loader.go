// Package env provides the ambient property layer: .env files,
// the process environment, and explicitly set values.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Properties is a read-only view over ambient configuration.
type Properties interface {
	// Lookup returns the value for key and whether it is set.
	Lookup(key string) (string, bool)
}

// Loader defines the interface for property management.
type Loader interface {
	Properties
	// Load reads properties from one or more .env files.
	Load(paths ...string) error
	// LoadIfExists is like Load but ignores missing files.
	LoadIfExists(paths ...string) error
	// Get retrieves a property value.
	Get(key string) string
	// GetWithDefault retrieves a property with a default fallback.
	GetWithDefault(key, defaultValue string) string
	// Set sets a property for this loader only.
	Set(key, value string)
	// All returns all loaded and set properties.
	All() map[string]string
}

// DefaultLoader implements Loader on top of godotenv. The OS
// environment takes precedence over file and explicitly set
// values.
type DefaultLoader struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewLoader creates an empty DefaultLoader.
func NewLoader() *DefaultLoader {
	return &DefaultLoader{vars: make(map[string]string)}
}

// Default is the process-wide loader.
var Default = NewLoader()

// Load reads the given .env files. Later files override earlier
// ones.
func (l *DefaultLoader) Load(paths ...string) error {
	for _, p := range paths {
		vars, err := godotenv.Read(p)
		if err != nil {
			return fmt.Errorf("read env file %s: %w", p, err)
		}
		l.merge(vars)
	}
	return nil
}

// LoadIfExists reads the given .env files, skipping the ones that
// do not exist.
func (l *DefaultLoader) LoadIfExists(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := l.Load(p); err != nil {
			return err
		}
	}
	return nil
}

func (l *DefaultLoader) merge(vars map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, v := range vars {
		l.vars[k] = v
	}
}

// Lookup resolves key against the OS environment (exact, then
// normalized) and then against loaded values.
func (l *DefaultLoader) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	if v, ok := os.LookupEnv(NormalizeKey(key)); ok {
		return v, true
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if v, ok := l.vars[key]; ok {
		return v, true
	}
	v, ok := l.vars[NormalizeKey(key)]
	return v, ok
}

func (l *DefaultLoader) Get(key string) string {
	v, _ := l.Lookup(key)
	return v
}

func (l *DefaultLoader) GetWithDefault(key, defaultValue string) string {
	if v, ok := l.Lookup(key); ok {
		return v
	}
	return defaultValue
}

func (l *DefaultLoader) Set(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vars[key] = value
}

func (l *DefaultLoader) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]string, len(l.vars))
	for k, v := range l.vars {
		result[k] = v
	}
	return result
}

// NormalizeKey maps a dotted property name to its environment
// variable form: selenium.browser.version -> SELENIUM_BROWSER_VERSION.
func NormalizeKey(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return strings.ToUpper(r.Replace(key))
}

// MapProperties is a map-backed Properties.
type MapProperties map[string]string

// Lookup returns the mapped value.
func (m MapProperties) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Bool reads key as a boolean. Only a case-insensitive "true" is
// true, with no surrounding whitespace; an unset key yields def.
func Bool(props Properties, key string, def bool) bool {
	if props == nil {
		return def
	}
	v, ok := props.Lookup(key)
	if !ok {
		return def
	}
	return strings.EqualFold(v, "true")
}
