package cmd

import (
	"context"
	"fmt"

	"github.com/douhashi/ghquery/internal/config"
	"github.com/douhashi/ghquery/internal/git"
	"github.com/douhashi/ghquery/internal/search"
	"github.com/douhashi/ghquery/internal/utils"
	"github.com/spf13/cobra"
)

// detectRepoFunc は作業ディレクトリのリポジトリを検出する（テスト時にモック可能）
var detectRepoFunc = func(ctx context.Context, remote, host string) (search.Repository, error) {
	repo := git.NewRepository(git.NewCommand(getLogger()))
	info, err := utils.GetGitHubRepoInfo(ctx, repo, remote, host)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// predicateFlags は query/search コマンド共通の述語フラグ
type predicateFlags struct {
	repos       []string
	is          []string
	labels      []string
	types       []string
	no          []string
	currentRepo bool
	noDefaults  bool
}

func (f *predicateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.repos, "repo", "R", nil, "対象リポジトリ (owner/name またはURL、複数指定可)")
	cmd.Flags().StringArrayVar(&f.is, "is", nil, "is: 述語 (open, closed, merged, pr, issue など)")
	cmd.Flags().StringArrayVarP(&f.labels, "label", "l", nil, "label: 述語")
	cmd.Flags().StringArrayVarP(&f.types, "type", "t", nil, "type: 述語 (pr, issue)")
	cmd.Flags().StringArrayVar(&f.no, "no", nil, "no: 述語 (assignee, label, milestone など)")
	cmd.Flags().BoolVar(&f.currentRepo, "current-repo", false, "カレントディレクトリのgitリポジトリを対象にする")
	cmd.Flags().BoolVar(&f.noDefaults, "no-defaults", false, "設定ファイルの既定述語を追加しない")
}

// buildQuery はフラグと位置引数からクエリを組み立てる
// 位置引数は --repo と同じくリポジトリとして扱う
func (f *predicateFlags) buildQuery(ctx context.Context, cfg *config.Config, args []string) (search.Query, error) {
	q := search.New()

	if f.currentRepo {
		repo, err := detectRepoFunc(ctx, cfg.GitHub.Remote, cfg.WebHost())
		if err != nil {
			return search.Query{}, fmt.Errorf("リポジトリ情報の取得に失敗: %w", err)
		}
		q = search.FromRepository(repo)
	}

	for _, r := range append(append([]string{}, f.repos...), args...) {
		info, err := utils.ParseRepository(r, cfg.WebHost())
		if err != nil {
			return search.Query{}, err
		}
		q = q.Repo(info.Owner, info.Repo)
	}

	for _, s := range f.is {
		q = q.Is(s)
	}
	for _, s := range f.labels {
		q = q.Label(s)
	}
	for _, s := range f.types {
		q = q.Type(s)
	}
	for _, s := range f.no {
		q = q.No(s)
	}

	if !f.noDefaults {
		q = cfg.ApplyDefaults(q)
	}

	if q.IsEmpty() {
		getLogger().Warn("Query has no predicates", "query", q.String())
	} else {
		getLogger().Debug("Query built", "query", q.String(), "predicates", q.Len())
	}
	return q, nil
}
