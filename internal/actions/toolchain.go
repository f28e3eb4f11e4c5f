package actions

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NightlyPrefix marks a nightly channel, e.g. "nightly" or "nightly-2023-10-14".
const NightlyPrefix = "nightly"

// NightlyToolchain is the toolchain name local execution runs nightly tasks
// under.
const NightlyToolchain = "nightly"

var datedChannel = regexp.MustCompile(`^(nightly|beta|stable)(-\d{4}-\d{2}-\d{2})?$`)

// ParseChannel validates a toolchain channel: "stable", "beta", "nightly",
// any of those with a -YYYY-MM-DD date, or a release version such as "1.73"
// or "1.73.0".
func ParseChannel(channel string) error {
	if datedChannel.MatchString(channel) {
		return nil
	}

	v, err := semver.NewVersion(channel)
	if err != nil {
		return fmt.Errorf("invalid toolchain channel %q: %w", channel, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return fmt.Errorf("invalid toolchain channel %q: pre-release versions are not installable", channel)
	}
	return nil
}

// Rust selects a Rust toolchain for a job.
type Rust struct {
	toolchain  string
	profile    string
	isDefault  bool
	components []string
	targets    []string
}

// RustToolchain selects the toolchain channel or version, e.g. "1.73" or
// "nightly-2023-10-14".
func RustToolchain(version string) *Rust {
	return &Rust{toolchain: version}
}

// Toolchain returns the selected channel or version.
func (r *Rust) Toolchain() string { return r.toolchain }

// IsNightly reports whether the toolchain is a nightly channel.
func (r *Rust) IsNightly() bool {
	return strings.HasPrefix(r.toolchain, NightlyPrefix)
}

// Minimal installs the minimal profile.
func (r *Rust) Minimal() *Rust {
	r.profile = "minimal"
	return r
}

// Default makes the toolchain the default for the job.
func (r *Rust) Default() *Rust {
	r.isDefault = true
	return r
}

// Clippy adds the clippy component.
func (r *Rust) Clippy() *Rust { return r.Component("clippy") }

// Rustfmt adds the rustfmt component.
func (r *Rust) Rustfmt() *Rust { return r.Component("rustfmt") }

// Component adds an extra toolchain component.
func (r *Rust) Component(name string) *Rust {
	r.components = append(r.components, name)
	return r
}

// Wasm adds the wasm32-unknown-unknown target.
func (r *Rust) Wasm() *Rust { return r.Target("wasm32-unknown-unknown") }

// Target adds an extra compilation target.
func (r *Rust) Target(triple string) *Rust {
	r.targets = append(r.targets, triple)
	return r
}

// Action returns the toolchain installation action.
func (r *Rust) Action() *Action {
	// Quoted so a version such as 1.70 stays a string rather than the float 1.7.
	a := NewAction("ructions/toolchain@v2").With("toolchain", strconv.Quote(r.toolchain))

	if r.profile != "" {
		a.With("profile", r.profile)
	}

	if r.isDefault {
		a.With("default", true)
	}

	if len(r.components) > 0 {
		a.With("components", strings.Join(r.components, ", "))
	}

	if len(r.targets) > 0 {
		a.With("target", strings.Join(r.targets, ", "))
	}

	return a
}

// InstallRust checks out the repository, installs the toolchain and restores
// the build cache.
func InstallRust(r *Rust) Step {
	return MultiStep(Checkout(), r.Action(), RustCache())
}
