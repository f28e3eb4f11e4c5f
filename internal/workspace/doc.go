// Package workspace locates the cargo workspace the xtask belongs to and runs
// commands from its root.
package workspace
