package actions

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/xtask-base/xtask/internal/branding"
	"github.com/xtask-base/xtask/internal/genfile"
	"github.com/xtask-base/xtask/internal/platform"
)

// Job is one entry under `jobs:`. It is keyed by "<name>-<platform>".
type Job struct {
	Name   string
	RunsOn platform.Platform
	Steps  []Step
}

// ID returns the job key, e.g. "tests-ubuntu-latest".
func (j Job) ID() string {
	return j.Name + "-" + j.RunsOn.String()
}

func (j Job) render(b *strings.Builder) {
	runsOn := j.RunsOn.String()
	fmt.Fprintf(b, "  %s:\n", j.ID())
	fmt.Fprintf(b, "    runs-on: %s\n", runsOn)

	var steps strings.Builder
	MultiStep(j.Steps...).render(&steps)
	if steps.Len() == 0 {
		b.WriteString("    steps: []\n")
		return
	}

	b.WriteString("    steps:\n")
	b.WriteString(steps.String())
}

// Workflow is a named set of jobs and the events that trigger them. Job keys
// are not deduplicated; two jobs with the same name and platform collide and
// fail Validate.
type Workflow struct {
	name     string
	triggers []Event
	jobs     []Job
}

// NewWorkflow returns an empty workflow.
func NewWorkflow(name string) *Workflow {
	return &Workflow{name: name}
}

// Name returns the workflow name.
func (w *Workflow) Name() string { return w.name }

// On appends trigger events.
func (w *Workflow) On(events ...Event) *Workflow {
	w.triggers = append(w.triggers, events...)
	return w
}

// AddJob appends a job.
func (w *Workflow) AddJob(name string, runsOn platform.Platform, steps ...Step) *Workflow {
	w.jobs = append(w.jobs, Job{Name: name, RunsOn: runsOn, Steps: steps})
	return w
}

// Jobs returns the jobs in the order they were added.
func (w *Workflow) Jobs() []Job { return append([]Job(nil), w.jobs...) }

// Path returns the workflow file path relative to the repository root.
func (w *Workflow) Path() string {
	return filepath.Join(".github", "workflows", w.name+".yml")
}

// String renders the workflow file.
func (w *Workflow) String() string {
	var b strings.Builder

	b.WriteString(branding.GeneratedHeader("#"))
	fmt.Fprintf(&b, "name: %s\n", w.name)
	b.WriteString("on:\n")
	for _, trigger := range w.triggers {
		trigger.render(&b)
	}

	b.WriteString("jobs:\n")
	for _, job := range w.jobs {
		job.render(&b)
	}

	return b.String()
}

// Validate parses the rendered workflow back as YAML and checks that every job
// survived with its own key and runner. The output is read as a node tree, so
// repeated `with` or `env` keys inside a step stay legal.
func (w *Workflow) Validate() error {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(w.String()), &doc); err != nil {
		return fmt.Errorf("workflow %s renders invalid YAML: %w", w.name, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("workflow %s does not render a YAML mapping", w.name)
	}

	runsOn := make(map[string]string)
	jobs := mappingValue(doc.Content[0], "jobs")
	if jobs != nil && jobs.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(jobs.Content); i += 2 {
			key := jobs.Content[i].Value
			if _, dup := runsOn[key]; dup {
				return fmt.Errorf("workflow %s: job key %s is rendered more than once", w.name, key)
			}

			runsOn[key] = ""
			if v := mappingValue(jobs.Content[i+1], "runs-on"); v != nil {
				runsOn[key] = v.Value
			}
		}
	}

	if len(runsOn) != len(w.jobs) {
		return fmt.Errorf("workflow %s: %d jobs rendered as %d distinct keys", w.name, len(w.jobs), len(runsOn))
	}

	for _, job := range w.jobs {
		got, ok := runsOn[job.ID()]
		if !ok {
			return fmt.Errorf("workflow %s: job %s is missing from the rendered output", w.name, job.ID())
		}
		if got != job.RunsOn.String() {
			return fmt.Errorf("workflow %s: job %s runs on %q, want %q", w.name, job.ID(), got, job.RunsOn)
		}
	}

	return nil
}

// mappingValue returns the value node for key, or nil when node is not a
// mapping or has no such key.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// Write validates the workflow and writes it to Path, or in check mode
// verifies the existing file matches.
func (w *Workflow) Write(ctx context.Context, check bool) error {
	if err := w.Validate(); err != nil {
		return err
	}
	return genfile.Update(ctx, w.Path(), w.String(), check)
}
