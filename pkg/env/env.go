// Package env provides access to environment variables through an interface
// so that callers can swap the process environment for an in-memory one.
package env

import (
	"maps"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Env is a set of environment variables.
type Env interface {
	// Get returns the value of key, or "" when unset.
	Get(key string) string

	// Lookup returns the value of key and whether it is set.
	Lookup(key string) (string, bool)

	// Set assigns value to key.
	Set(key, value string) error

	// Unset removes key.
	Unset(key string) error

	// Environ returns a snapshot of all variables.
	Environ() map[string]string
}

// OS returns the process environment.
func OS() Env {
	return osEnv{}
}

type osEnv struct{}

func (osEnv) Get(key string) string { return os.Getenv(key) }

func (osEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

func (osEnv) Set(key, value string) error { return os.Setenv(key, value) }

func (osEnv) Unset(key string) error { return os.Unsetenv(key) }

func (osEnv) Environ() map[string]string {
	return Parse(os.Environ())
}

// Map is an in-memory Env. It is safe for concurrent use.
type Map struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMap returns a Map holding a copy of vars.
func NewMap(vars map[string]string) *Map {
	m := &Map{vars: make(map[string]string, len(vars))}
	maps.Copy(m.vars, vars)
	return m
}

// Get implements Env.
func (m *Map) Get(key string) string {
	value, _ := m.Lookup(key)
	return value
}

// Lookup implements Env.
func (m *Map) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.vars[key]
	return value, ok
}

// Set implements Env.
func (m *Map) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

// Unset implements Env.
func (m *Map) Unset(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vars, key)
	return nil
}

// Environ implements Env.
func (m *Map) Environ() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.vars)
}

// Parse converts KEY=VALUE pairs, as returned by os.Environ, into a map.
// Entries without '=' are skipped.
func Parse(pairs []string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// LookupFold finds key ignoring case, the way Windows treats variable
// names. An exact match wins over a folded one.
func LookupFold(e Env, key string) (string, bool) {
	if value, ok := e.Lookup(key); ok {
		return value, true
	}
	folder := cases.Fold()
	want := folder.String(key)
	for name, value := range e.Environ() {
		if folder.String(name) == want {
			return value, true
		}
	}
	return "", false
}

// Apply writes vars into e. Existing variables are kept unless override is
// set.
func Apply(e Env, vars map[string]string, override bool) error {
	for key, value := range vars {
		if !override {
			if _, ok := e.Lookup(key); ok {
				continue
			}
		}
		if err := e.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}
