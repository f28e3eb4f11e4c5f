// Package scaffold generates the boilerplate files a Rust workspace keeps in
// sync with its xtask: README.md from a template, the dual Apache 2 and MIT
// licenses, rustfmt.toml and the cargo alias that makes "cargo xtask" work.
package scaffold
