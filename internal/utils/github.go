package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// GitHubRepoInfo はGitHubリポジトリの owner と name を保持する
// search.Repository を満たすので、クエリの repo 述語の種付けに使える
type GitHubRepoInfo struct {
	Owner string
	Repo  string
}

// FullName は "owner/repo" を返す
func (r *GitHubRepoInfo) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Repo)
}

// String は FullName と同じ値を返す
func (r *GitHubRepoInfo) String() string {
	return r.FullName()
}

// DefaultHost はgithub.comのWebホスト名
const DefaultHost = "github.com"

var fullNamePattern = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)$`)

// remotePatterns は host 上のリポジトリを指すHTTPS/SSH URLのパターンを返す
func remotePatterns(host string) []*regexp.Regexp {
	h := regexp.QuoteMeta(host)
	return []*regexp.Regexp{
		regexp.MustCompile(`^https?://` + h + `(?::\d+)?/([^/]+)/([^/]+?)(?:\.git)?/?$`),
		regexp.MustCompile(`^(?:ssh://)?git@` + h + `(?::\d+)?[:/]([^/]+)/([^/]+?)(?:\.git)?$`),
	}
}

// ParseGitHubURL はgithub.comのURLからowner/repo情報を抽出する
// 以下の形式に対応:
// - https://github.com/owner/repo.git
// - https://github.com/owner/repo
// - git@github.com:owner/repo.git
// - ssh://git@github.com/owner/repo.git
func ParseGitHubURL(url string) (*GitHubRepoInfo, error) {
	return ParseRemoteURL(url, DefaultHost)
}

// ParseRemoteURL は host 上のリポジトリURLからowner/repo情報を抽出する
// GitHub Enterprise Serverのリモートには ghe.example.com のようなホスト名を渡す
// host が空の場合は github.com として扱う
func ParseRemoteURL(url, host string) (*GitHubRepoInfo, error) {
	if host == "" {
		host = DefaultHost
	}
	for _, pattern := range remotePatterns(host) {
		if matches := pattern.FindStringSubmatch(url); len(matches) == 3 {
			return &GitHubRepoInfo{
				Owner: matches[1],
				Repo:  strings.TrimSuffix(matches[2], ".git"),
			}, nil
		}
	}

	return nil, fmt.Errorf("invalid GitHub URL format (host %s): %s", host, url)
}

// ParseFullName は "owner/repo" 形式の文字列を分解する
func ParseFullName(fullName string) (*GitHubRepoInfo, error) {
	matches := fullNamePattern.FindStringSubmatch(fullName)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid repository name (want owner/repo): %q", fullName)
	}
	return &GitHubRepoInfo{Owner: matches[1], Repo: matches[2]}, nil
}

// ParseRepository は "owner/repo" または host 上のリポジトリURLを受け付ける
func ParseRepository(s, host string) (*GitHubRepoInfo, error) {
	if info, err := ParseFullName(s); err == nil {
		return info, nil
	}
	return ParseRemoteURL(s, host)
}
