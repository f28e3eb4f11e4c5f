// Package ci describes a project's CI pipeline once and runs it two ways:
// rendered to a GitHub Actions workflow (CI.Write) or executed on the local
// machine (CI.Execute). A Task is one row of the matrix: a named, platform
// scoped list of steps. Locally only the tasks for the current platform run,
// and tasks on a nightly toolchain run their commands through rustup.
package ci
