package git

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotGitRepository = errors.New("現在のディレクトリはGitリポジトリではありません")
	ErrNoRemoteFound    = errors.New("リモートリポジトリが設定されていません")
)

// Repository はリポジトリ検出に必要なgit操作
type Repository interface {
	// IsGitRepository は指定されたパスがgitリポジトリかを確認する
	IsGitRepository(ctx context.Context, path string) bool

	// GetRootPath は指定されたパスを含むリポジトリのルートパスを取得する
	GetRootPath(ctx context.Context, path string) (string, error)

	// GetRemoteURL は指定されたリモートのURLを取得する
	GetRemoteURL(ctx context.Context, path string, remoteName string) (string, error)
}

type repositoryImpl struct {
	runner Runner
}

// NewRepository は新しいRepositoryインスタンスを作成する
func NewRepository(runner Runner) Repository {
	return &repositoryImpl{runner: runner}
}

func (r *repositoryImpl) IsGitRepository(ctx context.Context, path string) bool {
	_, err := r.runner.Run(ctx, []string{"rev-parse", "--git-dir"}, path)
	return err == nil
}

func (r *repositoryImpl) GetRootPath(ctx context.Context, path string) (string, error) {
	output, err := r.runner.Run(ctx, []string{"rev-parse", "--show-toplevel"}, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotGitRepository, err)
	}
	return output, nil
}

func (r *repositoryImpl) GetRemoteURL(ctx context.Context, path string, remoteName string) (string, error) {
	output, err := r.runner.Run(ctx, []string{"remote", "get-url", remoteName}, path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNoRemoteFound, remoteName, err)
	}
	if output == "" {
		return "", fmt.Errorf("%w: %s", ErrNoRemoteFound, remoteName)
	}
	return output, nil
}
