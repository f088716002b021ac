package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	gh "github.com/google/go-github/v50/github"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

const maxTitleWidth = 60

// nowFunc は現在時刻を返す（テスト時にモック可能）
var nowFunc = time.Now

// writeIssues は検索結果を format に従って出力する
func writeIssues(w io.Writer, format string, total int, issues []*gh.Issue) error {
	switch format {
	case "plain":
		for _, issue := range issues {
			if _, err := fmt.Fprintf(w, "%s\t#%d\t%s\t%s\t%s\n",
				repoName(issue), issue.GetNumber(), issueKind(issue), issue.GetState(), issue.GetTitle()); err != nil {
				return err
			}
		}
		return nil
	case "table":
		return writeIssueTable(w, total, issues)
	case "yaml":
		return writeIssueYAML(w, total, issues)
	default:
		return fmt.Errorf("invalid format: %s", format)
	}
}

func writeIssueTable(w io.Writer, total int, issues []*gh.Issue) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"repo", "#", "type", "state", "title", "updated"})

	now := nowFunc()
	for _, issue := range issues {
		t.AppendRow(table.Row{
			repoName(issue),
			issue.GetNumber(),
			issueKind(issue),
			issue.GetState(),
			truncate(issue.GetTitle(), maxTitleWidth),
			humanize.RelTime(issue.GetUpdatedAt().Time, now, "ago", "from now"),
		})
	}

	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d / %d", len(issues), total), ""})
	t.Render()
	return nil
}

// issueSummary はyaml出力用の1件分の要約
type issueSummary struct {
	Repo      string    `yaml:"repo"`
	Number    int       `yaml:"number"`
	Type      string    `yaml:"type"`
	State     string    `yaml:"state"`
	Title     string    `yaml:"title"`
	URL       string    `yaml:"url,omitempty"`
	Labels    []string  `yaml:"labels,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

func writeIssueYAML(w io.Writer, total int, issues []*gh.Issue) error {
	items := make([]issueSummary, 0, len(issues))
	for _, issue := range issues {
		var labels []string
		for _, l := range issue.Labels {
			labels = append(labels, l.GetName())
		}
		items = append(items, issueSummary{
			Repo:      repoName(issue),
			Number:    issue.GetNumber(),
			Type:      issueKind(issue),
			State:     issue.GetState(),
			Title:     issue.GetTitle(),
			URL:       issue.GetHTMLURL(),
			Labels:    labels,
			UpdatedAt: issue.GetUpdatedAt().Time,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Total int            `yaml:"total"`
		Items []issueSummary `yaml:"items"`
	}{Total: total, Items: items}); err != nil {
		return err
	}
	return enc.Close()
}

// issueKind は pr か issue を返す
func issueKind(issue *gh.Issue) string {
	if issue.IsPullRequest() {
		return "pr"
	}
	return "issue"
}

// repoName は repository_url の末尾から owner/name を取り出す
func repoName(issue *gh.Issue) string {
	if issue.Repository != nil && issue.Repository.GetFullName() != "" {
		return issue.Repository.GetFullName()
	}

	url := issue.GetRepositoryURL()
	slash := 0
	for i := len(url) - 1; i >= 0; i-- {
		if url[i] == '/' {
			slash++
			if slash == 2 {
				return url[i+1:]
			}
		}
	}
	return url
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
