// Package actions models GitHub Actions workflows: steps (actions, shell
// commands and groups of them), toolchain setup, trigger events and jobs.
//
// A model renders to workflow YAML with Workflow.String, and every step can
// also report the commands it would run locally through Step.Commands. The two
// back ends share the same step values.
package actions
