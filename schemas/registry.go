// Package schemas holds the named schema sets the CLI can generate. Sets
// register themselves from init functions of their packages.
package schemas

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Alia5/flatgen/schema"
)

// Builder constructs the root types of a schema set.
type Builder func() ([]schema.Type, error)

var (
	registry   = make(map[string]Builder)
	registryMu sync.RWMutex
)

// Register registers a schema set. This should be called from package init()
// functions. The name is case-insensitive and will be lowercased.
func Register(name string, b Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[toLower(name)] = b
}

// Get retrieves a registered builder by name. Returns nil if not found.
func Get(name string) Builder {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[toLower(name)]
}

// List returns the registered set names in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Types builds the named set.
func Types(name string) ([]schema.Type, error) {
	b := Get(name)
	if b == nil {
		return nil, fmt.Errorf("unknown schema set %q (registered: %v)", name, List())
	}
	types, err := b()
	if err != nil {
		return nil, fmt.Errorf("build schema set %q: %w", name, err)
	}
	return types, nil
}

func toLower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
