package builders

import (
	"fmt"

	"github.com/google/go-github/v50/github"
)

// IssueBuilder builds github.Issue instances for testing
type IssueBuilder struct {
	issue *github.Issue
}

// NewIssueBuilder creates a new IssueBuilder with sensible defaults
func NewIssueBuilder() *IssueBuilder {
	return &IssueBuilder{
		issue: &github.Issue{
			Number:        github.Int(1),
			State:         github.String("open"),
			Title:         github.String("Default Issue"),
			RepositoryURL: github.String("https://api.github.com/repos/octo/cat"),
			Labels:        []*github.Label{},
		},
	}
}

// WithNumber sets the issue number
func (b *IssueBuilder) WithNumber(number int) *IssueBuilder {
	b.issue.Number = github.Int(number)
	return b
}

// WithTitle sets the issue title
func (b *IssueBuilder) WithTitle(title string) *IssueBuilder {
	b.issue.Title = github.String(title)
	return b
}

// WithState sets the issue state
func (b *IssueBuilder) WithState(state string) *IssueBuilder {
	b.issue.State = github.String(state)
	return b
}

// WithRepository sets repository_url from owner and name
func (b *IssueBuilder) WithRepository(owner, name string) *IssueBuilder {
	b.issue.RepositoryURL = github.String(fmt.Sprintf("https://api.github.com/repos/%s/%s", owner, name))
	return b
}

// WithLabels sets the issue labels
func (b *IssueBuilder) WithLabels(labels ...string) *IssueBuilder {
	b.issue.Labels = make([]*github.Label, 0, len(labels))
	for _, name := range labels {
		b.issue.Labels = append(b.issue.Labels, &github.Label{Name: github.String(name)})
	}
	return b
}

// AsPullRequest marks the issue as a pull request
func (b *IssueBuilder) AsPullRequest() *IssueBuilder {
	url := fmt.Sprintf("%s/pulls/%d", b.issue.GetRepositoryURL(), b.issue.GetNumber())
	b.issue.PullRequestLinks = &github.PullRequestLinks{URL: github.String(url)}
	return b
}

// Build returns the built issue
func (b *IssueBuilder) Build() *github.Issue {
	return b.issue
}
