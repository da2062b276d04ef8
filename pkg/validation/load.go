// Package validation checks cross-field constraints on the flat
// load-profile form data before a configuration is generated.
package validation

import "github.com/perfgate/perfgate/pkg/canonical"

// ValidateLoadConfig returns the list of constraint violations in the
// load-profile data, in fixed rule order. An absent field skips its rule.
// Callers treat a non-empty result as blocking submission, never as fatal.
func ValidateLoadConfig(load canonical.LoadProfileData) []string {
	var errs []string

	if users, ok := toFloat(load.Users); ok && users < 1 {
		errs = append(errs, "Users must be at least 1")
	}

	duration, hasDuration := toFloat(load.Duration)
	if hasDuration && duration < 0 {
		errs = append(errs, "Duration cannot be negative")
	}

	if rampUp, ok := toFloat(load.RampUp); ok && hasDuration && duration < rampUp {
		errs = append(errs, "Duration must be ≥ Ramp-Up time")
	}

	minPause, hasMin := toFloat(load.MinPause)
	maxPause, hasMax := toFloat(load.MaxPause)
	if hasMin && hasMax && minPause > maxPause {
		errs = append(errs, "Min Pause cannot be greater than Max Pause")
	}

	if warmupDuration, ok := toFloat(load.WarmupDuration); ok && warmupDuration < 0 {
		errs = append(errs, "Warmup Duration cannot be negative")
	}

	if warmupUsers, ok := toFloat(load.WarmupUsers); ok && warmupUsers < 0 {
		errs = append(errs, "Warmup Users cannot be negative")
	}

	return errs
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
