// Package codec serializes the canonical configuration document into the
// wire formats accepted by the CI workflow: JSON, strict ENV, HOCON and
// Java properties. All codecs agree on every scalar's rendered value up to
// format-specific escaping, and none of them fail on a well-formed
// document; malformed pieces degrade to best-effort output plus a logged
// diagnostic.
package codec

import (
	"fmt"
	"sort"
	"sync"

	"github.com/perfgate/perfgate/pkg/canonical"
)

// Codec encodes a canonical document into one wire format.
type Codec interface {
	Name() string
	Encode(doc *canonical.Document) (string, error)
}

// Decoder is implemented by codecs that can also parse their output back
// into a canonical document.
type Decoder interface {
	Decode(text string) (*canonical.Document, error)
}

// Registry manages the available codecs by format name.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]func() Codec
}

// NewRegistry creates a new codec registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]func() Codec)}
}

// Register adds a codec factory to the registry.
func (r *Registry) Register(name string, factory func() Codec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codecs[name]; exists {
		return fmt.Errorf("codec %s already registered", name)
	}
	r.codecs[name] = factory
	return nil
}

// Get returns a codec for the requested format.
func (r *Registry) Get(name string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.codecs[name]
	if !exists {
		return nil, fmt.Errorf("codec %s not found", name)
	}
	return factory(), nil
}

// List returns all registered format names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global codec registry.
var DefaultRegistry = NewRegistry()

func init() {
	_ = DefaultRegistry.Register("json", func() Codec { return JSONCodec{} })
	_ = DefaultRegistry.Register("env", func() Codec { return EnvCodec{} })
	_ = DefaultRegistry.Register("hocon", func() Codec { return HoconCodec{} })
	_ = DefaultRegistry.Register("properties", func() Codec { return PropertiesCodec{} })
}

// sortedKeys returns a map's keys in sorted order so every encoder walks
// the document deterministically.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
