package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFieldInfersTypeFromValue(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected Type
	}{
		{"users", 10, TypeNumber},
		{"rate", 0.5, TypeNumber},
		{"enabled", true, TypeBoolean},
		{"label", "hello", TypeText},
		{"missing", nil, TypeText},
	}

	for _, tc := range tests {
		def := ResolveField(tc.name, tc.value, nil)
		assert.Equal(t, tc.expected, def.Type, "field %s", tc.name)
	}
}

func TestResolveFieldMetadataTypeWins(t *testing.T) {
	def := ResolveField("users", 10, &Metadata{Type: "TEXT"})
	assert.Equal(t, TypeText, def.Type)

	def = ResolveField("flag", "yes", &Metadata{Type: "Boolean"})
	assert.Equal(t, TypeBoolean, def.Type)
}

func TestResolveFieldUnknownMetadataTypeFallsBack(t *testing.T) {
	def := ResolveField("users", 10, &Metadata{Type: "widget"})
	assert.Equal(t, TypeNumber, def.Type)
}

func TestResolveFieldUnsupportedValueShape(t *testing.T) {
	def := ResolveField("tags", []string{"a", "b"}, nil)
	assert.Equal(t, TypeText, def.Type)
}

func TestResolveFieldLabelDerivation(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"rampUp", "Ramp Up"},
		{"minPause", "Min Pause"},
		{"target_url", "Target url"},
		{"users", "Users"},
	}

	for _, tc := range tests {
		def := ResolveField(tc.name, 1, nil)
		assert.Equal(t, tc.expected, def.Label)
	}
}

func TestResolveFieldMetadataLabelWins(t *testing.T) {
	def := ResolveField("rampUp", 10, &Metadata{Label: "Ramp-up time"})
	assert.Equal(t, "Ramp-up time", def.Label)
}

func TestResolveFieldImpliedMinimums(t *testing.T) {
	def := ResolveField("users", 10, nil)
	require.NotNil(t, def.Min)
	assert.Equal(t, float64(1), *def.Min)

	for _, name := range []string{"duration", "rampUp", "minPause", "startDelay", "readTimeout", "warmupRamp"} {
		def := ResolveField(name, 10, nil)
		require.NotNil(t, def.Min, "field %s", name)
		assert.Equal(t, float64(0), *def.Min, "field %s", name)
	}

	def = ResolveField("scenario", "x", nil)
	assert.Nil(t, def.Min)
}

func TestResolveFieldMetadataMinWins(t *testing.T) {
	minBound := 5.0
	def := ResolveField("users", 10, &Metadata{Min: &minBound})
	require.NotNil(t, def.Min)
	assert.Equal(t, 5.0, *def.Min)
}

func TestResolveFieldCarriesUnitAndHelp(t *testing.T) {
	def := ResolveField("duration", 60, &Metadata{Unit: "seconds", Help: "total test duration"})
	assert.Equal(t, "seconds", def.Unit)
	assert.Equal(t, "total test duration", def.Help)
	assert.Equal(t, 60, def.Value)
}
