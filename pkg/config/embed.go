package config

import (
	_ "embed"
)

//go:embed embedded/torchani.ini
var defaultIni []byte

// DefaultIniContent returns the packaged default ini text
func DefaultIniContent() string {
	return string(defaultIni)
}
