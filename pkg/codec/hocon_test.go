package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfgate/perfgate/pkg/canonical"
)

func TestHoconEncode(t *testing.T) {
	out, err := HoconCodec{}.Encode(smokeDocument())
	require.NoError(t, err)

	assert.Equal(t, `test {
  descriptions = "on sandbox"
  environment {
    type = "sandbox"
    url = "https://a b"
  }
  load {
    pause {
      max = 30
      min = 5s
    }
    profiles {
      scanPackage = "custom.profile"
      smoke {
        duration = 60
        ramp = 10
        users = 10
      }
    }
  }
  simulation = "pkg.Scenario"
  type = "smoke"
}
userDefinedVariable {
  currency = "EUR"
}
`, out)
}

func TestHoconValues(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, "null"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"duration stays bare", "30s", "30s"},
		{"plain string quoted", "smoke", `"smoke"`},
		{"embedded quote escaped", `say "hi"`, `"say \"hi\""`},
		{"array", []interface{}{1, "2m"}, "[1, 2m]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hoconValue(tt.in))
		})
	}
}

func TestHoconNullLeavesStayExplicit(t *testing.T) {
	doc := canonical.ToCanonical(canonical.Selections{LoadType: "smoke"}, canonical.LoadProfileData{},
		map[string]interface{}{"optional": nil}, nil)

	out, err := HoconCodec{}.Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "optional = null\n")
}
