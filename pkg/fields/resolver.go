// Package fields resolves raw form values and optional per-field metadata
// into display-ready field definitions.
package fields

import (
	"strings"
	"unicode"

	"github.com/perfgate/perfgate/pkg/logger"
)

// Type is the display type of a form field.
type Type string

const (
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeText    Type = "text"
)

// Metadata is the optional per-field metadata carried by the reference
// configuration. A nil Metadata means everything is inferred from the value.
type Metadata struct {
	Label string   `json:"label,omitempty"`
	Type  string   `json:"type,omitempty"`
	Unit  string   `json:"unit,omitempty"`
	Help  string   `json:"help,omitempty"`
	Min   *float64 `json:"min,omitempty"`
}

// Definition describes a single form field: its current value plus
// everything the form needs to render and bound it. Purely presentational,
// never persisted.
type Definition struct {
	Name  string
	Value interface{}
	Type  Type
	Label string
	Help  string
	Unit  string
	Min   *float64
}

// zeroBoundSubstrings lists name substrings that imply a zero minimum
// bound. Checked case-insensitively, after the "users" rule, which implies
// a minimum of one.
var zeroBoundSubstrings = []string{"duration", "ramp", "pause", "delay", "timeout", "warmup"}

// ResolveField builds a Definition for a raw value and optional metadata.
// It never fails: missing metadata degrades to inference from the value,
// and unsupported value shapes fall back to text with a diagnostic.
func ResolveField(name string, value interface{}, meta *Metadata) Definition {
	def := Definition{
		Name:  name,
		Value: value,
		Type:  resolveType(name, value, meta),
		Label: resolveLabel(name, meta),
	}

	if meta != nil {
		def.Help = meta.Help
		def.Unit = meta.Unit
	}

	if meta != nil && meta.Min != nil {
		def.Min = meta.Min
	} else {
		def.Min = impliedMinimum(name)
	}

	return def
}

// resolveType applies the override rule: explicit metadata type wins,
// otherwise the type is inferred from the runtime shape of the value.
func resolveType(name string, value interface{}, meta *Metadata) Type {
	if meta != nil && meta.Type != "" {
		switch strings.ToLower(meta.Type) {
		case "boolean", "bool":
			return TypeBoolean
		case "number", "integer", "float":
			return TypeNumber
		case "text", "string":
			return TypeText
		default:
			logger.Debugf("field %s: unknown metadata type %q, inferring from value", name, meta.Type)
		}
	}

	switch value.(type) {
	case bool:
		return TypeBoolean
	case int, int32, int64, float32, float64:
		return TypeNumber
	case string, nil:
		return TypeText
	default:
		logger.Warnf("field %s: unsupported value shape %T, treating as text", name, value)
		return TypeText
	}
}

func resolveLabel(name string, meta *Metadata) string {
	if meta != nil && meta.Label != "" {
		return meta.Label
	}
	return deriveLabel(name)
}

// deriveLabel turns a field name into a human label: a space before each
// internal capital, underscores to spaces, first letter capitalized.
func deriveLabel(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i > 0 && unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(r)
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func impliedMinimum(name string) *float64 {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "users") {
		return floatPtr(1)
	}
	for _, sub := range zeroBoundSubstrings {
		if strings.Contains(lower, sub) {
			return floatPtr(0)
		}
	}
	return nil
}

func floatPtr(v float64) *float64 { return &v }
