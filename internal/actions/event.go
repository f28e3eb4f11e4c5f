package actions

import (
	"fmt"
	"strings"
)

// Event triggers a workflow. The implementations are *PushEvent and
// *PullRequestEvent.
type Event interface {
	render(b *strings.Builder)
}

// PushEvent triggers on pushes, optionally only to some branches.
type PushEvent struct {
	branches []string
}

// Push triggers on every push.
func Push() *PushEvent { return &PushEvent{} }

// Branch restricts the trigger to a branch. Call it repeatedly for more.
func (p *PushEvent) Branch(name string) *PushEvent {
	p.branches = append(p.branches, name)
	return p
}

func (p *PushEvent) render(b *strings.Builder) {
	b.WriteString("  push:\n")

	if len(p.branches) == 0 {
		return
	}

	b.WriteString("    branches:\n")
	for _, branch := range p.branches {
		fmt.Fprintf(b, "    - %s\n", branch)
	}
}

// PullRequestEvent triggers on pull request activity.
type PullRequestEvent struct{}

// PullRequest triggers on pull requests.
func PullRequest() *PullRequestEvent { return &PullRequestEvent{} }

func (*PullRequestEvent) render(b *strings.Builder) {
	b.WriteString("  pull_request:\n")
}
