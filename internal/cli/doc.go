// Package cli defines the Cobra command tree for the xtask binary. Each file
// registers one top-level command with the root command. Commands locate the
// cargo workspace, load xtask.yaml and delegate to the ci, scaffold and
// process packages.
package cli
