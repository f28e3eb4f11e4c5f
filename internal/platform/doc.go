// Package platform enumerates the CI runner environments a workflow targets
// and maps them to the host operating system, so local execution can pick the
// jobs that match the machine it runs on.
package platform
