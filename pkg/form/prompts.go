package form

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"

	"github.com/perfgate/perfgate/pkg/canonical"
	"github.com/perfgate/perfgate/pkg/fields"
)

func promptMessage(def fields.Definition) string {
	if def.Unit != "" {
		return fmt.Sprintf("%s (%s):", def.Label, def.Unit)
	}
	return def.Label + ":"
}

func promptBoolean(def fields.Definition) (interface{}, error) {
	defaultBool, _ := def.Value.(bool)

	prompt := &survey.Confirm{
		Message: promptMessage(def),
		Default: defaultBool,
		Help:    def.Help,
	}

	var result bool
	if err := survey.AskOne(prompt, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// promptNumber asks for a numeric value but also accepts a unit-suffixed
// duration string, keeping the dual representation the canonical model
// preserves.
func promptNumber(def fields.Definition) (interface{}, error) {
	defaultStr := ""
	if def.Value != nil {
		defaultStr = fmt.Sprintf("%v", def.Value)
	}

	prompt := &survey.Input{
		Message: promptMessage(def),
		Default: defaultStr,
		Help:    def.Help,
	}

	var result string
	validator := func(val interface{}) error {
		str, _ := val.(string)
		if str == "" {
			return nil
		}
		if canonical.IsDurationString(str) {
			return nil
		}
		n, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("enter a number or a duration like 30s, 5m, 1h")
		}
		if def.Min != nil && n < *def.Min {
			return fmt.Errorf("value must be at least %g", *def.Min)
		}
		return nil
	}
	if err := survey.AskOne(prompt, &result, survey.WithValidator(validator)); err != nil {
		return nil, err
	}
	return parseTyped(result, def), nil
}

func promptText(def fields.Definition) (interface{}, error) {
	defaultStr := ""
	if def.Value != nil {
		defaultStr = fmt.Sprintf("%v", def.Value)
	}

	prompt := &survey.Input{
		Message: promptMessage(def),
		Default: defaultStr,
		Help:    def.Help,
	}

	var result string
	if err := survey.AskOne(prompt, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// parseTyped converts raw prompt or environment text into the field's
// resolved type, falling back to the raw string when it does not parse.
func parseTyped(raw string, def fields.Definition) interface{} {
	switch def.Type {
	case fields.TypeBoolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
		return raw
	case fields.TypeNumber:
		if canonical.IsDurationString(raw) {
			return raw
		}
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
		return raw
	default:
		return raw
	}
}
