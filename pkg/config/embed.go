package config

import (
	_ "embed"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// GetDefaultsContent returns the embedded default configuration, comments
// included, as written by `archup gen-config`.
func GetDefaultsContent() string {
	return string(defaultConfig)
}
