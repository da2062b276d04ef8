// Package canonical defines the canonical configuration document shared by
// every output codec, and the mapper that produces it from flat form input.
package canonical

// Document is the canonical configuration tree. It is a value produced
// fresh on every generate request and is never mutated after construction.
type Document struct {
	UserDefinedVariable map[string]interface{} `json:"userDefinedVariable"`
	Test                Test                   `json:"test"`
}

// Test is the fixed-shape test branch of the document.
type Test struct {
	Simulation   string      `json:"simulation"`
	Descriptions string      `json:"descriptions"`
	Type         string      `json:"type"`
	Environment  Environment `json:"environment"`
	Load         Load        `json:"load"`
}

// Environment names the target environment and its URL.
type Environment struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Load holds pause bounds and the per-profile parameter records.
type Load struct {
	Pause Pause `json:"pause"`
	// Profiles is keyed by load-profile type, plus the constant
	// scanPackage sentinel entry. Values are either a *Profile or a
	// plain scalar (the sentinel).
	Profiles map[string]interface{} `json:"profiles"`
}

// Pause bounds the simulated user think time. Min and Max are durations in
// either representation (bare seconds or unit-suffixed string); nil means
// not provided.
type Pause struct {
	Min interface{} `json:"min"`
	Max interface{} `json:"max"`
}

// Profile is one load profile's parameter record. Ramp and Duration are
// durations in either representation; nil fields are absent.
type Profile struct {
	Ramp     interface{} `json:"ramp,omitempty"`
	Users    interface{} `json:"users,omitempty"`
	Duration interface{} `json:"duration,omitempty"`
	Warmup   *Warmup     `json:"warmup,omitempty"`
}

// Warmup is the optional warmup sub-record of a profile.
type Warmup struct {
	Ramp     interface{} `json:"ramp,omitempty"`
	Users    interface{} `json:"users,omitempty"`
	Duration interface{} `json:"duration,omitempty"`
}

// ScanPackage is the sentinel entry every profiles map carries.
const ScanPackage = "custom.profile"

// Tree renders the document as a nested map for the generic codec walkers.
// Fixed-shape fields with nil values are omitted so leaf-skipping codecs do
// not have to special-case them; explicit nils inside userDefinedVariable
// are preserved.
func (d *Document) Tree() map[string]interface{} {
	udv := make(map[string]interface{}, len(d.UserDefinedVariable))
	for k, v := range d.UserDefinedVariable {
		udv[k] = v
	}

	env := map[string]interface{}{
		"type": d.Test.Environment.Type,
		"url":  d.Test.Environment.URL,
	}

	pause := map[string]interface{}{}
	if d.Test.Load.Pause.Min != nil {
		pause["min"] = d.Test.Load.Pause.Min
	}
	if d.Test.Load.Pause.Max != nil {
		pause["max"] = d.Test.Load.Pause.Max
	}

	profiles := make(map[string]interface{}, len(d.Test.Load.Profiles))
	for key, value := range d.Test.Load.Profiles {
		if p, ok := value.(*Profile); ok {
			profiles[key] = p.tree()
			continue
		}
		profiles[key] = value
	}

	return map[string]interface{}{
		"userDefinedVariable": udv,
		"test": map[string]interface{}{
			"simulation":   d.Test.Simulation,
			"descriptions": d.Test.Descriptions,
			"type":         d.Test.Type,
			"environment":  env,
			"load": map[string]interface{}{
				"pause":    pause,
				"profiles": profiles,
			},
		},
	}
}

func (p *Profile) tree() map[string]interface{} {
	m := map[string]interface{}{}
	if p.Ramp != nil {
		m["ramp"] = p.Ramp
	}
	if p.Users != nil {
		m["users"] = p.Users
	}
	if p.Duration != nil {
		m["duration"] = p.Duration
	}
	if p.Warmup != nil {
		w := map[string]interface{}{}
		if p.Warmup.Ramp != nil {
			w["ramp"] = p.Warmup.Ramp
		}
		if p.Warmup.Users != nil {
			w["users"] = p.Warmup.Users
		}
		if p.Warmup.Duration != nil {
			w["duration"] = p.Warmup.Duration
		}
		m["warmup"] = w
	}
	return m
}

// FromTree rebuilds a Document from a nested map, the inverse of Tree.
// Used by decoding codecs; unknown keys under test are ignored.
func FromTree(tree map[string]interface{}) *Document {
	doc := &Document{UserDefinedVariable: map[string]interface{}{}}

	if udv, ok := tree["userDefinedVariable"].(map[string]interface{}); ok {
		for k, v := range udv {
			doc.UserDefinedVariable[k] = v
		}
	}

	test, _ := tree["test"].(map[string]interface{})
	doc.Test.Simulation, _ = test["simulation"].(string)
	doc.Test.Descriptions, _ = test["descriptions"].(string)
	doc.Test.Type, _ = test["type"].(string)

	if env, ok := test["environment"].(map[string]interface{}); ok {
		doc.Test.Environment.Type, _ = env["type"].(string)
		doc.Test.Environment.URL, _ = env["url"].(string)
	}

	load, _ := test["load"].(map[string]interface{})
	if pause, ok := load["pause"].(map[string]interface{}); ok {
		doc.Test.Load.Pause.Min = pause["min"]
		doc.Test.Load.Pause.Max = pause["max"]
	}
	if profiles, ok := load["profiles"].(map[string]interface{}); ok {
		doc.Test.Load.Profiles = make(map[string]interface{}, len(profiles))
		for key, value := range profiles {
			if m, ok := value.(map[string]interface{}); ok {
				doc.Test.Load.Profiles[key] = profileFromTree(m)
				continue
			}
			doc.Test.Load.Profiles[key] = value
		}
	}

	return doc
}

func profileFromTree(m map[string]interface{}) *Profile {
	p := &Profile{
		Ramp:     m["ramp"],
		Users:    m["users"],
		Duration: m["duration"],
	}
	if w, ok := m["warmup"].(map[string]interface{}); ok {
		p.Warmup = &Warmup{
			Ramp:     w["ramp"],
			Users:    w["users"],
			Duration: w["duration"],
		}
	}
	return p
}
