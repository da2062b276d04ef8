package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDurationPassThrough(t *testing.T) {
	assert.Equal(t, 0, FormatDuration(0))
	assert.Equal(t, 60, FormatDuration(60))
	assert.Equal(t, 1.5, FormatDuration(1.5))
	assert.Equal(t, "30s", FormatDuration("30s"))
	assert.Equal(t, "5m", FormatDuration("5m"))
	assert.Equal(t, "1h", FormatDuration("1h"))
}

func TestFormatDurationCoercesNumericStrings(t *testing.T) {
	assert.Equal(t, 60, FormatDuration("60"))
	assert.Equal(t, 0.5, FormatDuration("0.5"))
}

func TestFormatDurationLeavesUnparseableInputAlone(t *testing.T) {
	assert.Equal(t, "abc", FormatDuration("abc"))
	assert.Equal(t, "30x", FormatDuration("30x"))
	assert.Equal(t, true, FormatDuration(true))
	assert.Nil(t, FormatDuration(nil))
}

func TestDurationSeconds(t *testing.T) {
	tests := []struct {
		in       interface{}
		expected float64
		ok       bool
	}{
		{30, 30, true},
		{int64(45), 45, true},
		{12.5, 12.5, true},
		{"30s", 30, true},
		{"2m", 120, true},
		{"1h", 3600, true},
		{"90", 90, true},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}

	for _, tc := range tests {
		got, ok := DurationSeconds(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if ok {
			assert.Equal(t, tc.expected, got, "input %v", tc.in)
		}
	}
}

func TestIsDurationString(t *testing.T) {
	assert.True(t, IsDurationString("30s"))
	assert.True(t, IsDurationString("120m"))
	assert.False(t, IsDurationString("30"))
	assert.False(t, IsDurationString("s30"))
	assert.False(t, IsDurationString("30sec"))
	assert.False(t, IsDurationString(""))
}
