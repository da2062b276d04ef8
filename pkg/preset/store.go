// Package preset persists named, reusable form configurations. Presets
// hold the flat pre-canonical input shape, not the canonical document.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/perfgate/perfgate/pkg/canonical"
	"github.com/perfgate/perfgate/pkg/logger"
)

// presetsKey is the fixed backend key holding the preset array.
const presetsKey = "perfgate.presets"

const (
	maxNameLen        = 100
	maxDescriptionLen = 300
	defaultRetention  = 20
)

// Preset is one saved configuration.
type Preset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Created     time.Time `json:"created"`
	Config      Config    `json:"config"`
}

// Config is the flat input shape a preset captures.
type Config struct {
	Selections   canonical.Selections      `json:"selections"`
	LoadData     canonical.LoadProfileData `json:"loadData"`
	ScenarioData map[string]interface{}    `json:"scenarioData,omitempty"`
}

// Envelope is the export/import file format.
type Envelope struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Presets    []Preset  `json:"presets"`
}

// EnvelopeVersion is the only export format version this build writes and
// accepts.
const EnvelopeVersion = 1

// Store is the preset CRUD store over a Backend.
type Store struct {
	backend Backend
	retain  int
}

// Option configures a Store.
type Option func(*Store)

// WithRetention sets how many presets survive a quota eviction.
func WithRetention(n int) Option {
	return func(s *Store) { s.retain = n }
}

// NewStore creates a preset store over the given backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, retain: defaultRetention}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a preset under name, overwriting an existing preset with the
// same name. Free-text fields are sanitized before persisting.
func (s *Store) Save(name, description, icon string, cfg Config) (Preset, error) {
	name = sanitize(name, maxNameLen)
	if name == "" {
		return Preset{}, errors.New("preset name must not be empty")
	}

	presets, err := s.load()
	if err != nil {
		return Preset{}, err
	}

	p := Preset{
		ID:          uuid.NewString(),
		Name:        name,
		Description: sanitize(description, maxDescriptionLen),
		Icon:        sanitize(icon, maxNameLen),
		Created:     time.Now().UTC(),
		Config:      cfg,
	}

	replaced := false
	for i := range presets {
		if presets[i].Name == name {
			p.ID = presets[i].ID
			presets[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		presets = append(presets, p)
	}

	if err := s.persist(presets); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// List returns all presets, newest first.
func (s *Store) List() ([]Preset, error) {
	presets, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Created.After(presets[j].Created)
	})
	return presets, nil
}

// Get returns the preset with the given name.
func (s *Store) Get(name string) (Preset, bool, error) {
	presets, err := s.load()
	if err != nil {
		return Preset{}, false, err
	}
	for _, p := range presets {
		if p.Name == name {
			return p, true, nil
		}
	}
	return Preset{}, false, nil
}

// Delete removes the preset with the given name.
func (s *Store) Delete(name string) error {
	presets, err := s.load()
	if err != nil {
		return err
	}

	kept := presets[:0]
	found := false
	for _, p := range presets {
		if p.Name == name {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("preset %q not found", name)
	}
	return s.persist(kept)
}

// Export renders all presets as a version-1 envelope.
func (s *Store) Export() ([]byte, error) {
	presets, err := s.List()
	if err != nil {
		return nil, err
	}
	env := Envelope{
		Version:    EnvelopeVersion,
		ExportedAt: time.Now().UTC(),
		Presets:    presets,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode preset export: %w", err)
	}
	return data, nil
}

// Import merges presets from an export envelope, overwriting by name.
// Entries missing a name or a structurally valid config.selections are
// discarded; surviving entries get fresh ids. Returns how many were
// imported.
func (s *Store) Import(data []byte) (int, error) {
	var env struct {
		Version int `json:"version"`
		Presets []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
			Config      struct {
				Selections   *canonical.Selections     `json:"selections"`
				LoadData     canonical.LoadProfileData `json:"loadData"`
				ScenarioData map[string]interface{}    `json:"scenarioData"`
			} `json:"config"`
		} `json:"presets"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, fmt.Errorf("failed to parse preset import: %w", err)
	}
	if env.Version != EnvelopeVersion {
		return 0, fmt.Errorf("unsupported preset export version %d", env.Version)
	}

	imported := 0
	for _, entry := range env.Presets {
		if sanitize(entry.Name, maxNameLen) == "" || entry.Config.Selections == nil {
			logger.Warnf("skipping invalid preset entry %q", entry.Name)
			continue
		}
		cfg := Config{
			Selections:   *entry.Config.Selections,
			LoadData:     entry.Config.LoadData,
			ScenarioData: entry.Config.ScenarioData,
		}
		if _, err := s.Save(entry.Name, entry.Description, entry.Icon, cfg); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (s *Store) load() ([]Preset, error) {
	data, ok, err := s.backend.Get(presetsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var presets []Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse stored presets: %w", err)
	}
	return presets, nil
}

// persist writes the preset array. On a quota failure it evicts the oldest
// presets beyond the retention count and retries once; a second failure
// propagates, leaving in-memory state intact.
func (s *Store) persist(presets []Preset) error {
	data, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}

	err = s.backend.Set(presetsKey, data)
	if !errors.Is(err, ErrQuotaExceeded) {
		return err
	}

	trimmed := trimOldest(presets, s.retain)
	logger.Warnf("preset storage quota exceeded, evicting %d oldest presets", len(presets)-len(trimmed))

	data, err = json.Marshal(trimmed)
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	if err := s.backend.Set(presetsKey, data); err != nil {
		return fmt.Errorf("preset storage quota recovery failed: %w", err)
	}
	return nil
}

// trimOldest keeps the retain newest presets.
func trimOldest(presets []Preset, retain int) []Preset {
	if retain <= 0 || len(presets) <= retain {
		return presets
	}
	sorted := append([]Preset(nil), presets...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Created.After(sorted[j].Created)
	})
	return sorted[:retain]
}

// sanitize trims whitespace, strips control characters and caps length.
func sanitize(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
