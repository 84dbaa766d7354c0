// Package env keeps names of environment variables with special significance to
// pcomb.
package env

// Environment variables with special significance to pcomb.
const (
	HOME            = "HOME"
	NO_COLOR        = "NO_COLOR"
	PCOMB_RC        = "PCOMB_RC"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
)
