// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. They name the generator in generated file headers
// and derive the environment variable prefix used by the config layer.
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	GeneratorURL string `yaml:"generator_url"`
	EnvPrefix    string `yaml:"env_prefix"`
	ConfigFile   string `yaml:"config_file"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "xtask",
			DisplayName:  "xtask-base",
			Description:  "Project automation for cargo workspaces",
			GeneratorURL: "https://github.com/simon-bourne/rust-xtask-base",
			EnvPrefix:    "XTASK",
			ConfigFile:   "xtask.yaml",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "xtask").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable generator name (e.g., "xtask-base").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// GeneratorURL returns the project URL quoted in generated file headers.
func GeneratorURL() string { load(); return defaults.GeneratorURL }

// EnvPrefix returns the environment variable prefix (e.g., "XTASK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ConfigFile returns the project settings file name (e.g., "xtask.yaml").
func ConfigFile() string { load(); return defaults.ConfigFile }

// GeneratedHeader returns the comment lines that mark a file as generated.
// prefix is the line comment marker of the target format (e.g., "#").
func GeneratedHeader(prefix string) string {
	load()
	return prefix + " This file was generated by [" + defaults.DisplayName + "](" + defaults.GeneratorURL + ").\n" +
		prefix + " Please do not edit!\n"
}
