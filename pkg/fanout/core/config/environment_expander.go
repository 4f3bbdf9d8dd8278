package config

import (
	"os"
)

// EnvironmentExpander expands environment variable placeholders within raw
// configuration bytes before they are parsed.
type EnvironmentExpander interface {
	// Expand replaces ${VAR} or $VAR placeholders in input and returns the
	// expanded bytes.
	Expand(input []byte) ([]byte, error)
}

// OsEnvironmentExpander implements EnvironmentExpander on top of os.ExpandEnv.
// Unset variables expand to the empty string.
type OsEnvironmentExpander struct{}

// NewOsEnvironmentExpander creates a new OsEnvironmentExpander.
func NewOsEnvironmentExpander() *OsEnvironmentExpander {
	return &OsEnvironmentExpander{}
}

// Expand applies os.ExpandEnv to the input. The returned error is always nil;
// the interface keeps the error so other expanders can fail.
func (e *OsEnvironmentExpander) Expand(input []byte) ([]byte, error) {
	return []byte(os.ExpandEnv(string(input))), nil
}
