package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/douhashi/ghquery/internal/config"
	"github.com/douhashi/ghquery/internal/github"
	"github.com/douhashi/ghquery/internal/search"
	gh "github.com/google/go-github/v50/github"
	"github.com/spf13/cobra"
)

// newSearchClientFunc はSearchClientを作成する（テスト時にモック可能）
var newSearchClientFunc = func(cfg *config.Config) (*github.SearchClient, error) {
	return github.NewSearchClient(cfg.GitHub.Token,
		github.WithBaseURL(cfg.GitHub.BaseURL),
		github.WithTimeout(cfg.GitHub.Timeout),
		github.WithPerPage(cfg.Search.PerPage),
		github.WithLogger(getLogger().WithFields("component", "github")),
	)
}

type searchOptions struct {
	page     int
	perPage  int
	maxPages int
	all      bool
	urlOnly  bool
	format   string
}

func newSearchCmd() *cobra.Command {
	flags := &predicateFlags{}
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [owner/name...]",
		Short: "検索クエリでissue/PRを検索する",
		Long: `述語から組み立てたクエリをGitHubのissue/PR検索APIに送り、結果を表示します。
認証トークンは GITHUB_TOKEN / GHQUERY_GITHUB_TOKEN または設定ファイルの github.token から読み込みます。`,
		Example: `  ghquery search --current-repo --is open --no assignee
  ghquery search rust-lang/rust --type pr --is merged --url-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, flags, opts, args)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&opts.page, "page", 0, "取得するページ番号")
	cmd.Flags().IntVar(&opts.perPage, "per-page", 0, "1ページあたりの件数 (既定は設定ファイルの search.per_page)")
	cmd.Flags().IntVar(&opts.maxPages, "max-pages", 10, "--all 指定時に辿る最大ページ数")
	cmd.Flags().BoolVar(&opts.all, "all", false, "次のページがなくなるまで取得する")
	cmd.Flags().BoolVar(&opts.urlOnly, "url-only", false, "APIを呼ばずに検索URLだけを表示する")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "出力形式 (table, plain, yaml)")

	return cmd
}

func runSearch(cmd *cobra.Command, flags *predicateFlags, opts *searchOptions, args []string) error {
	cfg := getConfig()

	if opts.perPage < 0 || opts.perPage > config.MaxPerPage {
		return fmt.Errorf("--per-page must be between 1 and %d", config.MaxPerPage)
	}
	if opts.format != "table" && opts.format != "plain" && opts.format != "yaml" {
		return fmt.Errorf("invalid format: %s", opts.format)
	}

	q, err := flags.buildQuery(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}

	client, err := newSearchClientFunc(cfg)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	listOpts := &gh.ListOptions{Page: opts.page, PerPage: opts.perPage}

	if opts.urlOnly {
		u, err := client.SearchURL(q, listOpts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), u.String())
		return nil
	}

	var result *github.SearchResult
	if opts.all {
		result, err = client.SearchAllIssues(cmd.Context(), q, listOpts, opts.maxPages)
	} else {
		result, err = client.SearchIssues(cmd.Context(), q, listOpts)
	}
	if err != nil {
		return describeSearchError(q, err)
	}

	if result.IncompleteResults {
		getLogger().Warn("Search results are incomplete", "query", q.String(), "total", result.Total)
	}
	if err := writeIssues(cmd.OutOrStdout(), opts.format, result.Total, result.Issues); err != nil {
		return err
	}
	if result.NextPage != 0 && opts.format == "table" {
		fmt.Fprintf(cmd.ErrOrStderr(), "次のページ: --page %d\n", result.NextPage)
	}
	return nil
}

// describeSearchError は検索APIのエラーに利用者向けのヒントを付ける
func describeSearchError(q search.Query, err error) error {
	switch {
	case github.IsValidationError(err):
		return fmt.Errorf("GitHubがクエリを受け付けませんでした (%s): %w", q.String(), err)
	case github.IsRateLimitError(err):
		var ghErr *github.GitHubError
		if errors.As(err, &ghErr) && ghErr.RetryAfter > 0 {
			return fmt.Errorf("検索APIのレート制限に達しました。%s後に再試行してください: %w",
				ghErr.RetryAfter.Round(time.Second), err)
		}
		return fmt.Errorf("検索APIのレート制限に達しました: %w", err)
	case github.IsAuthenticationError(err):
		return fmt.Errorf("認証に失敗しました。GITHUB_TOKEN または設定ファイルの github.token を確認してください: %w", err)
	default:
		return err
	}
}
