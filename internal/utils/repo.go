package utils

import (
	"context"
	"fmt"
	"os"

	"github.com/douhashi/ghquery/internal/git"
)

// GetGitHubRepoInfoError は詳細なエラー情報を持つエラー型
type GetGitHubRepoInfoError struct {
	Step    string // どの段階で失敗したか
	Cause   error  // 根本的な原因
	Message string // ユーザー向けメッセージ
}

func (e *GetGitHubRepoInfoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *GetGitHubRepoInfoError) Unwrap() error {
	return e.Cause
}

// GetGitHubRepoInfo は作業ディレクトリのgitリポジトリから remote のGitHubリポジトリ情報を取得する
// host はリモートURLとして受け付けるホスト名 (空ならgithub.com)
func GetGitHubRepoInfo(ctx context.Context, repo git.Repository, remoteName, host string) (*GitHubRepoInfo, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, &GetGitHubRepoInfoError{
			Step:    "working_directory",
			Cause:   err,
			Message: "作業ディレクトリの取得に失敗しました",
		}
	}

	return GetGitHubRepoInfoAt(ctx, repo, cwd, remoteName, host)
}

// GetGitHubRepoInfoAt は dir を含むgitリポジトリから remote のGitHubリポジトリ情報を取得する
func GetGitHubRepoInfoAt(ctx context.Context, repo git.Repository, dir, remoteName, host string) (*GitHubRepoInfo, error) {
	if !repo.IsGitRepository(ctx, dir) {
		return nil, &GetGitHubRepoInfoError{
			Step:    "git_directory",
			Cause:   git.ErrNotGitRepository,
			Message: "Gitリポジトリが見つかりません。Gitリポジトリ内で実行してください",
		}
	}

	root, err := repo.GetRootPath(ctx, dir)
	if err != nil {
		return nil, &GetGitHubRepoInfoError{
			Step:    "git_directory",
			Cause:   err,
			Message: "Gitリポジトリが見つかりません。Gitリポジトリ内で実行してください",
		}
	}

	remoteURL, err := repo.GetRemoteURL(ctx, root, remoteName)
	if err != nil {
		return nil, &GetGitHubRepoInfoError{
			Step:    "remote_url",
			Cause:   err,
			Message: fmt.Sprintf("リモートURL取得に失敗しました。'%s' リモートが設定されているか確認してください", remoteName),
		}
	}

	repoInfo, err := ParseRemoteURL(remoteURL, host)
	if err != nil {
		return nil, &GetGitHubRepoInfoError{
			Step:    "url_parsing",
			Cause:   err,
			Message: fmt.Sprintf("GitHub URL解析に失敗しました。URL: %s", remoteURL),
		}
	}

	return repoInfo, nil
}
