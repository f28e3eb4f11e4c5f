package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"

	"github.com/xtask-base/xtask/internal/actions"
	"github.com/xtask-base/xtask/internal/branding"
	"github.com/xtask-base/xtask/internal/ci"
	"github.com/xtask-base/xtask/internal/scaffold"
)

const fileType = "yaml"

// Config holds the project settings.
type Config struct {
	Workflow           string   `mapstructure:"workflow"`
	Rust               Rust     `mapstructure:"rust"`
	Udeps              string   `mapstructure:"udeps"`
	ExtraWorkspaceDirs []string `mapstructure:"extra_workspace_dirs"`
	PushBranches       []string `mapstructure:"push_branches"`
	ReadmeDirs         []string `mapstructure:"readme_dirs"`
	// License is nil unless the file has a license section.
	License *License `mapstructure:"license"`
}

// Rust pins the toolchains the standard workflow installs.
type Rust struct {
	Stable  string `mapstructure:"stable"`
	Nightly string `mapstructure:"nightly"`
}

// License enables the generated license files.
type License struct {
	StartYear int    `mapstructure:"start_year"`
	Holder    string `mapstructure:"holder"`
}

// Path returns the settings file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, branding.ConfigFile())
}

func setDefaults(v *viper.Viper) {
	opts := ci.DefaultOptions()
	v.SetDefault("workflow", opts.Name)
	v.SetDefault("rust.stable", opts.RustStable)
	v.SetDefault("rust.nightly", opts.RustNightly)
	v.SetDefault("udeps", opts.UdepsVersion)
	v.SetDefault("extra_workspace_dirs", []string{})
	v.SetDefault("push_branches", []string{})
	v.SetDefault("readme_dirs", []string{})
}

// Load reads the settings file at path. A missing file is not an error: every
// key takes its default, still subject to environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		issues, err := Validate(data)
		if err != nil {
			return nil, fmt.Errorf("validating %s: %w", path, err)
		}
		if len(issues) > 0 {
			return nil, &ValidationError{File: path, Issues: issues}
		}

		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if cfg.License != nil && cfg.License.StartYear == 0 {
		cfg.License.StartYear = time.Now().Year()
	}

	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return &cfg, nil
}

// check validates what the schema cannot see, including values that came
// from the environment.
func (c *Config) check() error {
	if err := actions.ParseChannel(c.Rust.Stable); err != nil {
		return fmt.Errorf("rust.stable: %w", err)
	}

	if !strings.HasPrefix(c.Rust.Nightly, actions.NightlyPrefix) {
		return fmt.Errorf("rust.nightly: %q is not a nightly channel", c.Rust.Nightly)
	}
	if err := actions.ParseChannel(c.Rust.Nightly); err != nil {
		return fmt.Errorf("rust.nightly: %w", err)
	}

	if _, err := semver.StrictNewVersion(c.Udeps); err != nil {
		return fmt.Errorf("udeps: invalid version %q: %w", c.Udeps, err)
	}

	return nil
}

// Options returns the standard workflow parameters.
func (c *Config) Options() ci.Options {
	return ci.Options{
		Name:         c.Workflow,
		RustStable:   c.Rust.Stable,
		RustNightly:  c.Rust.Nightly,
		UdepsVersion: c.Udeps,
		ExtraDirs:    c.ExtraWorkspaceDirs,
		PushBranches: c.PushBranches,
	}
}

// OpenSourceLicense returns the license file parameters, or false when the
// project has no license section.
func (c *Config) OpenSourceLicense(now time.Time) (scaffold.License, bool) {
	if c.License == nil {
		return scaffold.License{}, false
	}
	return scaffold.License{
		StartYear: c.License.StartYear,
		EndYear:   now.Year(),
		Holder:    c.License.Holder,
	}, true
}
