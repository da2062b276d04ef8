package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestJSONEncode(t *testing.T) {
	out, err := JSONCodec{}.Encode(smokeDocument())
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.True(t, gjson.Valid(out))

	assert.Equal(t, "pkg.Scenario", gjson.Get(out, "test.simulation").String())
	assert.Equal(t, "smoke", gjson.Get(out, "test.type").String())
	assert.Equal(t, "https://a b", gjson.Get(out, "test.environment.url").String())
	assert.Equal(t, int64(10), gjson.Get(out, "test.load.profiles.smoke.users").Int())
	assert.Equal(t, "5s", gjson.Get(out, "test.load.pause.min").String())
	assert.Equal(t, int64(30), gjson.Get(out, "test.load.pause.max").Int())
	assert.Equal(t, "custom.profile", gjson.Get(out, "test.load.profiles.scanPackage").String())
	assert.Equal(t, "EUR", gjson.Get(out, "userDefinedVariable.currency").String())

	// warmup was never filled in, so it must not appear
	assert.False(t, gjson.Get(out, "test.load.profiles.smoke.warmup").Exists())
}

func TestJSONDecode(t *testing.T) {
	out, err := JSONCodec{}.Encode(smokeDocument())
	require.NoError(t, err)

	doc, err := JSONCodec{}.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "pkg.Scenario", doc.Test.Simulation)
	assert.Equal(t, "sandbox", doc.Test.Environment.Type)
	assert.Equal(t, "EUR", doc.UserDefinedVariable["currency"])

	_, err = JSONCodec{}.Decode("{not json")
	assert.ErrorContains(t, err, "failed to decode json")
}
