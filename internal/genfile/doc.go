// Package genfile writes generated files, or in check mode verifies that the
// file on disk already matches what would be generated. Every generator in the
// module (workflow renderer, README, licenses, configs) goes through Update.
package genfile
