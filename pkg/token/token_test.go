package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		token string
		valid bool
	}{
		{"classic pat", "ghp_" + strings.Repeat("a", 36), true},
		{"oauth token", "gho_" + strings.Repeat("B", 36), true},
		{"server token", "ghs_" + strings.Repeat("1", 36), true},
		{"fine grained", "github_pat_" + strings.Repeat("a", 22), true},
		{"fine grained long", "github_pat_11ABCDEF_" + strings.Repeat("x", 40), true},
		{"legacy hex", strings.Repeat("0a", 20), true},
		{"classic too short", "ghp_" + strings.Repeat("a", 35), false},
		{"unknown prefix", "ghx_" + strings.Repeat("a", 36), false},
		{"hex wrong length", strings.Repeat("0a", 19), false},
		{"uppercase hex", strings.Repeat("0A", 20), false},
		{"garbage", "not-a-token", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.token)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidToken)
			}
		})
	}
}

func TestValidateEmpty(t *testing.T) {
	assert.ErrorContains(t, Validate(""), "must not be empty")
}
