// Package token validates and stores the CI provider credential.
package token

import (
	"errors"
	"regexp"
)

// Accepted credential formats: fine-grained tokens, classic prefixed
// tokens, and the legacy 40-hex form.
var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^github_pat_[A-Za-z0-9_]{22,}$`),
	regexp.MustCompile(`^gh[pousr]_[A-Za-z0-9]{36,}$`),
	regexp.MustCompile(`^[0-9a-f]{40}$`),
}

// ErrInvalidToken is returned when a credential does not match any
// accepted format.
var ErrInvalidToken = errors.New("token does not match a recognized credential format")

// Validate checks a credential against the accepted formats. It is a
// format check only; the provider still decides whether the token works.
func Validate(token string) error {
	if token == "" {
		return errors.New("token must not be empty")
	}
	for _, p := range tokenPatterns {
		if p.MatchString(token) {
			return nil
		}
	}
	return ErrInvalidToken
}
