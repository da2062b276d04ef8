package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfgate/perfgate/pkg/canonical"
)

func TestEnvEncode(t *testing.T) {
	out, err := EnvCodec{}.Encode(smokeDocument())
	require.NoError(t, err)

	assert.Equal(t, `# perfgate strict-env configuration
TEST__DESCRIPTIONS="on sandbox"
TEST__ENVIRONMENT__TYPE=sandbox
TEST__ENVIRONMENT__URL="https://a b"
TEST__LOAD__PAUSE__MAX=30
TEST__LOAD__PAUSE__MIN=5s
TEST__LOAD__PROFILES__SCAN_PACKAGE=custom.profile
TEST__LOAD__PROFILES__SMOKE__DURATION=60
TEST__LOAD__PROFILES__SMOKE__RAMP=10
TEST__LOAD__PROFILES__SMOKE__USERS=10
TEST__SIMULATION=pkg.Scenario
TEST__TYPE=smoke
USERDEFINEDVARIABLE__CURRENCY=EUR
`, out)
}

func TestEnvQuoting(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare", "plain", "plain"},
		{"dots and slashes stay bare", "https://x/y.z", "https://x/y.z"},
		{"space", "a b", `"a b"`},
		{"dollar", "a$b", `"a$b"`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"backtick", "a`b", "\"a`b\""},
		{"newline", "a\nb", `"a\nb"`},
		{"carriage return", "a\rb", `"a\rb"`},
		{"backslash n stays literal", `a\nb`, `"a\\nb"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envQuote(tt.raw))
			assert.Equal(t, tt.raw, envUnquote(tt.want))
		})
	}
}

func TestEnvSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"users", "USERS"},
		{"scanPackage", "SCAN_PACKAGE"},
		{"warmupDuration", "WARMUP_DURATION"},
		{"api-key", "API_KEY"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, envSegment(tt.in))
	}
}

func TestEnvRoundTrip(t *testing.T) {
	doc := smokeDocument()

	out, err := EnvCodec{}.Encode(doc)
	require.NoError(t, err)

	back, err := EnvCodec{}.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, doc, back)

	// second encode of the decoded document is byte-identical
	again, err := EnvCodec{}.Encode(back)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

// Quoted values stay on one line, so string leaves with embedded newlines
// survive the line-based decoder.
func TestEnvRoundTripMultilineValue(t *testing.T) {
	doc := canonical.ToCanonical(canonical.Selections{LoadType: "smoke"}, canonical.LoadProfileData{},
		map[string]interface{}{"banner": "line one\nline two\r\nline three"}, nil)

	out, err := EnvCodec{}.Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "USERDEFINEDVARIABLE__BANNER"))

	back, err := EnvCodec{}.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\r\nline three", back.UserDefinedVariable["banner"])
}

func TestEnvDecodeTypedValues(t *testing.T) {
	doc, err := EnvCodec{}.Decode(`# header
TEST__TYPE=smoke
USERDEFINEDVARIABLE__COUNT=7
USERDEFINEDVARIABLE__RATIO=0.5
USERDEFINEDVARIABLE__ENABLED=true
USERDEFINEDVARIABLE__DISABLED=false
USERDEFINEDVARIABLE__LABEL="a b"
USERDEFINEDVARIABLE__RAMP=30s
`)
	require.NoError(t, err)

	assert.Equal(t, "smoke", doc.Test.Type)
	assert.Equal(t, 7, doc.UserDefinedVariable["count"])
	assert.Equal(t, 0.5, doc.UserDefinedVariable["ratio"])
	assert.Equal(t, true, doc.UserDefinedVariable["enabled"])
	assert.Equal(t, false, doc.UserDefinedVariable["disabled"])
	assert.Equal(t, "a b", doc.UserDefinedVariable["label"])
	assert.Equal(t, "30s", doc.UserDefinedVariable["ramp"])
}

func TestEnvDecodeSkipsJunk(t *testing.T) {
	doc, err := EnvCodec{}.Decode(`# comment

not a key value pair
UNKNOWN__ROOT=ignored
TEST=no path under the root
TEST__SIMULATION=pkg.Scenario
`)
	require.NoError(t, err)
	assert.Equal(t, "pkg.Scenario", doc.Test.Simulation)
	assert.Empty(t, doc.UserDefinedVariable)
}

// Names with adjacent capitals cannot survive the snake transform; the
// reverse heuristic settles on the plain camelCase reading.
func TestEnvDecodeIsLossyForCompoundNames(t *testing.T) {
	doc := canonical.ToCanonical(canonical.Selections{LoadType: "smoke"}, canonical.LoadProfileData{},
		map[string]interface{}{"api-key": "k", "HTTPTimeout": 5}, nil)

	out, err := EnvCodec{}.Encode(doc)
	require.NoError(t, err)
	back, err := EnvCodec{}.Decode(out)
	require.NoError(t, err)

	assert.Equal(t, "k", back.UserDefinedVariable["apiKey"])
	assert.Equal(t, 5, back.UserDefinedVariable["hTTPTimeout"])
}
