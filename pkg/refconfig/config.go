// Package refconfig loads the reference configuration that drives the
// form: known load profiles, target environments, scenarios and per-field
// metadata.
package refconfig

import (
	"github.com/perfgate/perfgate/pkg/fields"
)

// Config is the parsed reference configuration. All four sections are
// required; loading fails if any is missing.
type Config struct {
	LoadConfig     map[string]LoadProfile     `json:"loadConfig"`
	Environments   map[string]Environment     `json:"environment"`
	ScenarioConfig map[string]Scenario        `json:"scenarioConfig"`
	FieldMetadata  map[string]fields.Metadata `json:"fieldMetadata"`
}

// LoadProfile describes one selectable load profile and the default values
// of its form fields.
type LoadProfile struct {
	Label  string                 `json:"label"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// Environment is one selectable target environment.
type Environment struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Scenario describes one selectable scenario, keyed by its fully-qualified
// identifier, with the scenario-specific form fields.
type Scenario struct {
	Label  string                 `json:"label"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// LoadProfileLabel returns the label for a load-profile key, or "" when
// the key is unknown.
func (c *Config) LoadProfileLabel(key string) string {
	if c == nil {
		return ""
	}
	if p, ok := c.LoadConfig[key]; ok {
		return p.Label
	}
	return ""
}

// ScenarioLabel returns the label for a scenario id, or "" when unknown.
func (c *Config) ScenarioLabel(id string) string {
	if c == nil {
		return ""
	}
	if s, ok := c.ScenarioConfig[id]; ok {
		return s.Label
	}
	return ""
}

// Metadata returns the metadata for a field name, nil when none is
// defined.
func (c *Config) Metadata(name string) *fields.Metadata {
	if c == nil {
		return nil
	}
	if m, ok := c.FieldMetadata[name]; ok {
		return &m
	}
	return nil
}
