// Package form gathers the flat configuration input interactively. It is a
// thin view over the reference configuration: prompts are derived from
// resolved field definitions and recomputed on demand, never reactively.
package form

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/perfgate/perfgate/pkg/canonical"
	"github.com/perfgate/perfgate/pkg/config"
	"github.com/perfgate/perfgate/pkg/fields"
	"github.com/perfgate/perfgate/pkg/logger"
	"github.com/perfgate/perfgate/pkg/refconfig"
	"github.com/perfgate/perfgate/pkg/validation"
)

// envPrefix prefixes the environment variables that override or default
// individual prompts, e.g. PERFGATE_USERS=50.
const envPrefix = "PERFGATE_"

// skipPromptsVar disables prompting entirely for CI use; every field then
// comes from the environment or the reference defaults.
const skipPromptsVar = "PERFGATE_SKIP_PROMPTS"

// Input is the complete flat form result.
type Input struct {
	Selections   canonical.Selections
	LoadData     canonical.LoadProfileData
	ScenarioData map[string]interface{}
	// Environment is the configured environment backing the selection,
	// nil when the choice came from the reference config alone.
	Environment *config.Environment
}

// Form drives the interactive configuration form.
type Form struct {
	ref      *refconfig.Config
	envs     []config.Environment
	selected string
}

// New creates a form over the given reference configuration.
func New(ref *refconfig.Config) *Form {
	return &Form{ref: ref}
}

// WithEnvironments merges the tool's named environments into the
// environment choices. Configured environments win over reference entries
// with the same name; selected names the default choice.
func (f *Form) WithEnvironments(envs []config.Environment, selected string) *Form {
	f.envs = envs
	f.selected = selected
	return f
}

// Run walks the full form: environment, load profile, scenario, then the
// per-field prompts. Load data that fails cross-field validation is shown
// and re-prompted with the previous answers as defaults.
func (f *Form) Run() (Input, error) {
	var in Input

	envKey, targetURL, cfgEnv, err := f.selectEnvironment()
	if err != nil {
		return in, err
	}
	in.Selections.Environment = envKey
	in.Selections.TargetURL = targetURL
	in.Environment = cfgEnv

	loadType, err := f.selectLoadProfile()
	if err != nil {
		return in, err
	}
	in.Selections.LoadType = loadType

	scenario, err := f.selectScenario()
	if err != nil {
		return in, err
	}
	in.Selections.Scenario = scenario

	defaults := f.ref.LoadConfig[loadType].Fields
	for {
		in.LoadData, err = f.promptLoadData(defaults)
		if err != nil {
			return in, err
		}
		violations := validation.ValidateLoadConfig(in.LoadData)
		if len(violations) == 0 {
			break
		}
		for _, v := range violations {
			logger.Error(v)
		}
		if skipPrompts() {
			return in, fmt.Errorf("load configuration invalid: %s", strings.Join(violations, "; "))
		}
		// keep the rejected answers as the next round's defaults
		defaults = loadDataFields(in.LoadData)
	}

	in.ScenarioData, err = f.promptScenarioData(scenario)
	if err != nil {
		return in, err
	}

	return in, nil
}

func (f *Form) selectEnvironment() (string, string, *config.Environment, error) {
	keys, configured := f.environmentChoices()
	if len(keys) == 0 {
		return "", "", nil, fmt.Errorf("no environments configured or defined in the reference config")
	}

	selected, err := selectOne("Select environment:", "ENVIRONMENT", keys, f.defaultEnvironment(keys),
		func(key string) string {
			if env, ok := configured[key]; ok {
				return env.URL
			}
			return f.ref.Environments[key].Label
		})
	if err != nil {
		return "", "", nil, err
	}

	if env, ok := configured[selected]; ok {
		return selected, env.URL, env, nil
	}
	return selected, f.ref.Environments[selected].URL, nil, nil
}

// environmentChoices merges configured environments with the reference
// config's, configured entries shadowing reference entries by name.
func (f *Form) environmentChoices() ([]string, map[string]*config.Environment) {
	configured := make(map[string]*config.Environment, len(f.envs))
	keys := make([]string, 0, len(f.envs)+len(f.ref.Environments))
	for i := range f.envs {
		env := &f.envs[i]
		if _, dup := configured[env.Name]; dup {
			continue
		}
		configured[env.Name] = env
		keys = append(keys, env.Name)
	}
	for k := range f.ref.Environments {
		if _, shadowed := configured[k]; !shadowed {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, configured
}

// defaultEnvironment returns the remembered selection when it is still a
// valid choice.
func (f *Form) defaultEnvironment(keys []string) string {
	for _, k := range keys {
		if k == f.selected {
			return k
		}
	}
	return ""
}

func (f *Form) selectLoadProfile() (string, error) {
	keys := make([]string, 0, len(f.ref.LoadConfig))
	for k := range f.ref.LoadConfig {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return "", fmt.Errorf("reference config defines no load profiles")
	}

	return selectOne("Select load profile:", "LOAD_TYPE", keys, "", func(key string) string {
		return f.ref.LoadConfig[key].Label
	})
}

func (f *Form) selectScenario() (string, error) {
	keys := make([]string, 0, len(f.ref.ScenarioConfig))
	for k := range f.ref.ScenarioConfig {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return "", fmt.Errorf("reference config defines no scenarios")
	}

	return selectOne("Select scenario:", "SCENARIO", keys, "", func(key string) string {
		return f.ref.ScenarioConfig[key].Label
	})
}

// loadFieldOrder fixes the prompt order of the load-profile form.
var loadFieldOrder = []string{
	"users", "duration", "rampUp",
	"minPause", "maxPause",
	"warmupUsers", "warmupDuration", "warmupRamp",
}

func (f *Form) promptLoadData(defaults map[string]interface{}) (canonical.LoadProfileData, error) {
	var load canonical.LoadProfileData

	for _, name := range loadFieldOrder {
		def, hasDefault := defaults[name]
		if !hasDefault {
			continue
		}
		value, err := f.promptField(name, def)
		if err != nil {
			return load, err
		}
		setLoadField(&load, name, value)
	}
	return load, nil
}

func (f *Form) promptScenarioData(scenario string) (map[string]interface{}, error) {
	fieldDefaults := f.ref.ScenarioConfig[scenario].Fields
	data := make(map[string]interface{}, len(fieldDefaults))

	names := make([]string, 0, len(fieldDefaults))
	for name := range fieldDefaults {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, err := f.promptField(name, fieldDefaults[name])
		if err != nil {
			return nil, err
		}
		data[name] = value
	}
	return data, nil
}

// promptField resolves one field definition and prompts for its value,
// honoring environment overrides and the skip mode.
func (f *Form) promptField(name string, defaultValue interface{}) (interface{}, error) {
	def := fields.ResolveField(name, defaultValue, f.ref.Metadata(name))

	if envValue := os.Getenv(envPrefix + strings.ToUpper(name)); envValue != "" {
		return parseTyped(envValue, def), nil
	}
	if skipPrompts() {
		return def.Value, nil
	}

	switch def.Type {
	case fields.TypeBoolean:
		return promptBoolean(def)
	case fields.TypeNumber:
		return promptNumber(def)
	default:
		return promptText(def)
	}
}

func skipPrompts() bool {
	return os.Getenv(skipPromptsVar) == "true"
}

func selectOne(message, envKey string, options []string, defaultOption string, describe func(string) string) (string, error) {
	if skipPrompts() {
		if v := os.Getenv(envPrefix + envKey); v != "" {
			return v, nil
		}
		if defaultOption != "" {
			return defaultOption, nil
		}
		return options[0], nil
	}

	prompt := &survey.Select{
		Message: message,
		Options: options,
		Description: func(value string, index int) string {
			return describe(value)
		},
	}
	if defaultOption != "" {
		prompt.Default = defaultOption
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}

func setLoadField(load *canonical.LoadProfileData, name string, value interface{}) {
	switch name {
	case "users":
		load.Users = value
	case "duration":
		load.Duration = value
	case "rampUp":
		load.RampUp = value
	case "minPause":
		load.MinPause = value
	case "maxPause":
		load.MaxPause = value
	case "warmupUsers":
		load.WarmupUsers = value
	case "warmupDuration":
		load.WarmupDuration = value
	case "warmupRamp":
		load.WarmupRamp = value
	}
}

// loadDataFields flattens load data back into a defaults map for
// re-prompting.
func loadDataFields(load canonical.LoadProfileData) map[string]interface{} {
	m := map[string]interface{}{}
	set := func(name string, v interface{}) {
		if v != nil {
			m[name] = v
		}
	}
	set("users", load.Users)
	set("duration", load.Duration)
	set("rampUp", load.RampUp)
	set("minPause", load.MinPause)
	set("maxPause", load.MaxPause)
	set("warmupUsers", load.WarmupUsers)
	set("warmupDuration", load.WarmupDuration)
	set("warmupRamp", load.WarmupRamp)
	return m
}
