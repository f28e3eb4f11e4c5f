// Package config loads the project settings file (xtask.yaml) that
// parameterizes the standard workflow and the generated boilerplate. Values
// can be overridden with XTASK_ prefixed environment variables.
package config
