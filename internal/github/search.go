package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/douhashi/ghquery/internal/search"
	gh "github.com/google/go-github/v50/github"
	"github.com/google/go-querystring/query"
)

const issuesSearchPath = "search/issues"

// SearchResult は1ページ分の検索結果
type SearchResult struct {
	Total             int
	IncompleteResults bool
	Issues            []*gh.Issue
	// NextPage は次のページ番号。最終ページでは0
	NextPage int
}

// SearchURL は描画済みクエリを検索エンドポイントのURLに埋め込む
//
// クエリ中の "+" と "q=" はそのまま残し、URLとして不正な文字だけをエスケープする。
// ページ指定はクエリの後ろに "&" で連結する。
func (c *SearchClient) SearchURL(q search.Query, opts *gh.ListOptions) (*url.URL, error) {
	rawQuery := escapeRenderedQuery(q.String())

	opts = c.listOptions(opts)
	values, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode list options: %w", err)
	}
	if encoded := values.Encode(); encoded != "" {
		rawQuery += "&" + encoded
	}

	u, err := c.BaseURL().Parse(issuesSearchPath + "?" + rawQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to build search URL: %w", err)
	}
	return u, nil
}

// SearchIssues はissue/PR検索APIを1ページ分呼び出す
func (c *SearchClient) SearchIssues(ctx context.Context, q search.Query, opts *gh.ListOptions) (*SearchResult, error) {
	u, err := c.SearchURL(q, opts)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Searching issues", "query", q.String(), "url", u.String())

	req, err := c.github.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	var result gh.IssuesSearchResult
	resp, err := c.github.Do(ctx, req, &result)
	if err != nil {
		return nil, ClassifyError(err)
	}

	c.logger.Info("Search completed",
		"query", q.String(),
		"total", result.GetTotal(),
		"returned", len(result.Issues),
		"next_page", resp.NextPage,
	)

	return &SearchResult{
		Total:             result.GetTotal(),
		IncompleteResults: result.GetIncompleteResults(),
		Issues:            result.Issues,
		NextPage:          resp.NextPage,
	}, nil
}

// SearchAllIssues は最大 maxPages ページまで検索結果を辿って集める
// maxPages が0以下の場合は最終ページまで辿る
// Total は最初のページの値、IncompleteResults はいずれかのページが不完全ならtrue
// NextPage は打ち切った場合の続きのページ番号
func (c *SearchClient) SearchAllIssues(ctx context.Context, q search.Query, opts *gh.ListOptions, maxPages int) (*SearchResult, error) {
	opts = c.listOptions(opts)

	all := &SearchResult{}
	for page := 0; maxPages <= 0 || page < maxPages; page++ {
		result, err := c.SearchIssues(ctx, q, opts)
		if err != nil {
			return nil, err
		}
		if page == 0 {
			all.Total = result.Total
		}
		all.IncompleteResults = all.IncompleteResults || result.IncompleteResults
		all.Issues = append(all.Issues, result.Issues...)
		all.NextPage = result.NextPage
		if result.NextPage == 0 {
			break
		}
		opts.Page = result.NextPage
	}

	return all, nil
}

// listOptions はopts のコピーに既定のページサイズを補う
func (c *SearchClient) listOptions(opts *gh.ListOptions) *gh.ListOptions {
	o := gh.ListOptions{}
	if opts != nil {
		o = *opts
	}
	if o.PerPage == 0 {
		o.PerPage = c.perPage
	}
	return &o
}

// escapeRenderedQuery はURLのクエリ部分に置けない文字だけをパーセントエンコードする
func escapeRenderedQuery(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if shouldEscape(b) {
			fmt.Fprintf(&sb, "%%%02X", b)
			continue
		}
		sb.WriteByte(b)
	}
	return sb.String()
}

func shouldEscape(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return false
	}
	switch b {
	case '-', '_', '.', '~', ':', '/', '+', '=', '@', '!', '$', '\'', '(', ')', '*', ',', ';', '?':
		return false
	}
	return true
}
