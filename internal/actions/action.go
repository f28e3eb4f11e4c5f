package actions

import (
	"fmt"
	"strings"

	"github.com/xtask-base/xtask/internal/process"
)

type keyValue struct {
	key   string
	value string
}

// Action invokes a published action (`uses:`) with optional inputs and
// environment variables. Inputs keep insertion order; repeated keys are
// rendered as many times as they were added.
type Action struct {
	uses string
	with []keyValue
	env  []keyValue
}

// NewAction returns an action with no inputs.
func NewAction(uses string) *Action {
	return &Action{uses: uses}
}

// With appends an input. value is formatted with fmt.Sprint.
func (a *Action) With(key string, value any) *Action {
	a.with = append(a.with, keyValue{key, fmt.Sprint(value)})
	return a
}

// Env appends an environment variable.
func (a *Action) Env(key string, value any) *Action {
	a.env = append(a.env, keyValue{key, fmt.Sprint(value)})
	return a
}

// Uses returns the action reference, e.g. "actions/checkout@v3".
func (a *Action) Uses() string { return a.uses }

func (a *Action) Commands() []process.Command { return nil }

func (a *Action) render(b *strings.Builder) {
	fmt.Fprintf(b, "    - uses: %s\n", a.uses)
	renderKeyValues(b, "with", a.with)
	renderKeyValues(b, "env", a.env)
}

func renderKeyValues(b *strings.Builder, name string, kvs []keyValue) {
	if len(kvs) == 0 {
		return
	}

	fmt.Fprintf(b, "      %s:\n", name)
	for _, kv := range kvs {
		fmt.Fprintf(b, "        %s: %s\n", kv.key, kv.value)
	}
}

// Checkout checks out the repository.
func Checkout() *Action {
	return NewAction("actions/checkout@v3")
}

// RustCache restores and saves the cargo build cache.
func RustCache() *Action {
	return NewAction("Swatinem/rust-cache@v2")
}

// UploadArtifact uploads path as an artifact called name.
func UploadArtifact(name, path string) *Action {
	return NewAction("actions/upload-artifact@v3").
		With("name", name).
		With("path", path)
}
