package canonical

import "strings"

// Selections is the flat, form-shaped selection of scenario, load profile
// and target environment.
type Selections struct {
	Scenario    string `json:"scenario"`
	LoadType    string `json:"loadType"`
	Environment string `json:"environment"`
	TargetURL   string `json:"targetUrl"`
}

// LoadProfileData is the flat load-profile form data. Fields are
// interface-typed because durations arrive in either representation; nil
// means the field was not filled in.
type LoadProfileData struct {
	Users          interface{} `json:"users,omitempty"`
	Duration       interface{} `json:"duration,omitempty"`
	RampUp         interface{} `json:"rampUp,omitempty"`
	MinPause       interface{} `json:"minPause,omitempty"`
	MaxPause       interface{} `json:"maxPause,omitempty"`
	WarmupUsers    interface{} `json:"warmupUsers,omitempty"`
	WarmupDuration interface{} `json:"warmupDuration,omitempty"`
	WarmupRamp     interface{} `json:"warmupRamp,omitempty"`
}

// ReferenceLookup supplies the human-readable labels the mapper folds into
// the derived description. Implemented by refconfig.Config; a nil lookup
// simply drops the labels.
type ReferenceLookup interface {
	LoadProfileLabel(key string) string
	ScenarioLabel(id string) string
}

// ToCanonical maps the flat form input into a fresh canonical document.
//
// userDefinedVariable is a shallow copy of the scenario data; the mapper
// treats its keys as opaque. The profiles map always carries the
// scanPackage sentinel plus one record keyed by the selected load type.
func ToCanonical(sel Selections, load LoadProfileData, scenarioData map[string]interface{}, ref ReferenceLookup) *Document {
	udv := make(map[string]interface{}, len(scenarioData))
	for k, v := range scenarioData {
		udv[k] = v
	}

	doc := &Document{
		UserDefinedVariable: udv,
		Test: Test{
			Simulation:   sel.Scenario,
			Descriptions: describe(sel, ref),
			Type:         sel.LoadType,
			Environment: Environment{
				Type: sel.Environment,
				URL:  sel.TargetURL,
			},
			Load: Load{
				Pause: Pause{
					Min: formatOptionalDuration(load.MinPause),
					Max: formatOptionalDuration(load.MaxPause),
				},
				Profiles: map[string]interface{}{
					"scanPackage": ScanPackage,
				},
			},
		},
	}

	profile := &Profile{
		Users: load.Users,
	}
	if load.RampUp != nil {
		profile.Ramp = FormatDuration(load.RampUp)
	}
	if load.Duration != nil {
		profile.Duration = FormatDuration(load.Duration)
	}

	if load.WarmupUsers != nil || load.WarmupDuration != nil || load.WarmupRamp != nil {
		warmup := &Warmup{Users: load.WarmupUsers}
		if load.WarmupRamp != nil {
			warmup.Ramp = FormatDuration(load.WarmupRamp)
		}
		if load.WarmupDuration != nil {
			warmup.Duration = FormatDuration(load.WarmupDuration)
		}
		profile.Warmup = warmup
	}

	if sel.LoadType != "" {
		doc.Test.Load.Profiles[sel.LoadType] = profile
	}

	return doc
}

// describe derives the cosmetic test description: profile label, scenario
// label and environment, joined with " - ". Never validated, never
// round-tripped.
func describe(sel Selections, ref ReferenceLookup) string {
	var parts []string
	if ref != nil {
		if label := ref.LoadProfileLabel(sel.LoadType); label != "" {
			parts = append(parts, label)
		}
		if label := ref.ScenarioLabel(sel.Scenario); label != "" {
			parts = append(parts, label)
		}
	}
	parts = append(parts, "on "+sel.Environment)
	return strings.Join(parts, " - ")
}

func formatOptionalDuration(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	return FormatDuration(v)
}
