package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfgate/perfgate/pkg/config"
	"github.com/perfgate/perfgate/pkg/refconfig"
)

func testReference() *refconfig.Config {
	return &refconfig.Config{
		LoadConfig: map[string]refconfig.LoadProfile{
			"smoke": {Label: "Smoke Test", Fields: map[string]interface{}{"users": 10, "duration": 60}},
		},
		Environments: map[string]refconfig.Environment{
			"sandbox": {Label: "Sandbox", URL: "https://sandbox.example.test"},
		},
		ScenarioConfig: map[string]refconfig.Scenario{
			"pkg.Scenario": {Label: "Checkout Flow"},
		},
	}
}

func productionEnv() config.Environment {
	return config.Environment{
		Name:     "Production",
		URL:      "https://prod.example.test",
		TokenEnv: "PERFGATE_PROD_TOKEN",
	}
}

func TestEnvironmentChoicesMergeConfigured(t *testing.T) {
	f := New(testReference()).WithEnvironments([]config.Environment{productionEnv()}, "")

	keys, configured := f.environmentChoices()
	assert.Equal(t, []string{"Production", "sandbox"}, keys)
	require.Contains(t, configured, "Production")
	assert.Equal(t, "PERFGATE_PROD_TOKEN", configured["Production"].TokenEnv)
	assert.NotContains(t, configured, "sandbox")
}

func TestEnvironmentChoicesConfiguredShadowsReference(t *testing.T) {
	f := New(testReference()).WithEnvironments([]config.Environment{
		{Name: "sandbox", URL: "https://other.example.test"},
	}, "")

	keys, configured := f.environmentChoices()
	assert.Equal(t, []string{"sandbox"}, keys)
	assert.Equal(t, "https://other.example.test", configured["sandbox"].URL)
}

func TestDefaultEnvironment(t *testing.T) {
	f := New(testReference()).WithEnvironments([]config.Environment{productionEnv()}, "Production")
	keys, _ := f.environmentChoices()
	assert.Equal(t, "Production", f.defaultEnvironment(keys))

	f.selected = "Retired"
	assert.Empty(t, f.defaultEnvironment(keys))
}

// In skip mode the full form runs non-interactively, which exercises the
// environment wiring end to end: a configured environment selection must
// surface on the result so the dispatcher can honor its token source.
func TestRunCarriesConfiguredEnvironment(t *testing.T) {
	t.Setenv(skipPromptsVar, "true")
	t.Setenv("PERFGATE_ENVIRONMENT", "Production")

	in, err := New(testReference()).WithEnvironments([]config.Environment{productionEnv()}, "").Run()
	require.NoError(t, err)

	require.NotNil(t, in.Environment)
	assert.Equal(t, "PERFGATE_PROD_TOKEN", in.Environment.TokenEnv)
	assert.Equal(t, "Production", in.Selections.Environment)
	assert.Equal(t, "https://prod.example.test", in.Selections.TargetURL)
	assert.Equal(t, "smoke", in.Selections.LoadType)
	assert.Equal(t, "pkg.Scenario", in.Selections.Scenario)
	assert.Equal(t, 10, in.LoadData.Users)
	assert.Equal(t, 60, in.LoadData.Duration)
}

func TestRunUsesRememberedSelectionAsDefault(t *testing.T) {
	t.Setenv(skipPromptsVar, "true")
	t.Setenv("PERFGATE_ENVIRONMENT", "")

	in, err := New(testReference()).WithEnvironments([]config.Environment{productionEnv()}, "Production").Run()
	require.NoError(t, err)

	require.NotNil(t, in.Environment)
	assert.Equal(t, "Production", in.Environment.Name)
}

func TestRunReferenceOnlyEnvironment(t *testing.T) {
	t.Setenv(skipPromptsVar, "true")
	t.Setenv("PERFGATE_ENVIRONMENT", "")

	in, err := New(testReference()).Run()
	require.NoError(t, err)

	assert.Nil(t, in.Environment)
	assert.Equal(t, "sandbox", in.Selections.Environment)
	assert.Equal(t, "https://sandbox.example.test", in.Selections.TargetURL)
}
