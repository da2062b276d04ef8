package canonical

import (
	"regexp"
	"strconv"
)

// durationPattern matches unit-suffixed durations: digits plus one of
// s, m or h.
var durationPattern = regexp.MustCompile(`^\d+[smh]$`)

// IsDurationString reports whether s is a unit-suffixed duration.
func IsDurationString(s string) bool {
	return durationPattern.MatchString(s)
}

// FormatDuration normalizes a raw form value into a canonical duration
// leaf. Durations are accepted in two representations and deliberately kept
// that way: unit-suffixed strings and numbers pass through unchanged, other
// strings are coerced to a number when possible, anything else is returned
// as given. Never fails.
func FormatDuration(v interface{}) interface{} {
	switch x := v.(type) {
	case string:
		if IsDurationString(x) {
			return x
		}
		if n, err := strconv.Atoi(x); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
		return x
	default:
		return v
	}
}

// DurationSeconds converts a duration leaf to seconds. Bare numbers are
// already seconds; unit-suffixed strings use s=1, m=60, h=3600. The second
// return is false when the value is not a duration in either representation.
func DurationSeconds(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case string:
		if IsDurationString(x) {
			unit := x[len(x)-1]
			n, err := strconv.ParseFloat(x[:len(x)-1], 64)
			if err != nil {
				return 0, false
			}
			switch unit {
			case 's':
				return n, true
			case 'm':
				return n * 60, true
			case 'h':
				return n * 3600, true
			}
		}
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
