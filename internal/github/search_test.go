package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/douhashi/ghquery/internal/search"
	gh "github.com/google/go-github/v50/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *SearchClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewSearchClient("test-token", append([]Option{WithBaseURL(server.URL)}, opts...)...)
	require.NoError(t, err)
	return client
}

func TestSearchClient_SearchURL(t *testing.T) {
	client, err := NewSearchClient("")
	require.NoError(t, err)

	tests := []struct {
		name  string
		query search.Query
		opts  *gh.ListOptions
		want  string
	}{
		{
			name:  "正常系: 描画結果がそのままクエリになる",
			query: search.New().Repo("rust-lang", "rust").Type("pr").Is("merged").Label("hacktoberfest").No("assignee"),
			want:  "https://api.github.com/search/issues?q=repo:rust-lang/rust+is:merged+label:hacktoberfest+type:pr+no:assignee",
		},
		{
			name:  "正常系: 空のクエリ",
			query: search.New(),
			want:  "https://api.github.com/search/issues?q=",
		},
		{
			name:  "正常系: ページ指定が後ろに連結される",
			query: search.New().Is("open"),
			opts:  &gh.ListOptions{Page: 2, PerPage: 50},
			want:  "https://api.github.com/search/issues?q=is:open&page=2&per_page=50",
		},
		{
			name:  "正常系: URLに置けない文字はエスケープされる",
			query: search.New().Label(`"good first issue"`).Is("a&b#c"),
			want:  "https://api.github.com/search/issues?q=is:a%26b%23c+label:%22good%20first%20issue%22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := client.SearchURL(tt.query, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestSearchClient_SearchURL_PerPageDefault(t *testing.T) {
	client, err := NewSearchClient("", WithBaseURL("https://github.example.com/api/v3"), WithPerPage(100))
	require.NoError(t, err)

	u, err := client.SearchURL(search.New().Is("open"), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://github.example.com/api/v3/search/issues?q=is:open&per_page=100", u.String())
}

func TestNewSearchClient_InvalidBaseURL(t *testing.T) {
	_, err := NewSearchClient("", WithBaseURL("ftp://example.com"))
	assert.Error(t, err)
}

func TestSearchClient_SearchIssues(t *testing.T) {
	t.Run("正常系: 検索結果と次ページ番号を返す", func(t *testing.T) {
		var gotQuery, gotAuth, gotPath string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			gotAuth = r.Header.Get("Authorization")

			next := fmt.Sprintf(`<http://%s/search/issues?q=is:open&page=2>; rel="next"`, r.Host)
			w.Header().Set("Link", next)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"total_count": 2, "incomplete_results": false, "items": [{"number": 1, "title": "first"}, {"number": 2, "title": "second"}]}`)
		})

		q := search.New().Repo("octo", "cat").Is("open")
		result, err := client.SearchIssues(context.Background(), q, nil)
		require.NoError(t, err)

		assert.Equal(t, "/search/issues", gotPath)
		assert.Equal(t, "q=repo:octo/cat+is:open", gotQuery)
		assert.Equal(t, "Bearer test-token", gotAuth)

		assert.Equal(t, 2, result.Total)
		assert.False(t, result.IncompleteResults)
		require.Len(t, result.Issues, 2)
		assert.Equal(t, 1, result.Issues[0].GetNumber())
		assert.Equal(t, "second", result.Issues[1].GetTitle())
		assert.Equal(t, 2, result.NextPage)
	})

	t.Run("異常系: 422はValidationエラーになる", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"message": "Validation Failed"}`)
		})

		_, err := client.SearchIssues(context.Background(), search.New().Is("bogus"), nil)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		var ghErr *GitHubError
		require.ErrorAs(t, err, &ghErr)
		assert.Equal(t, http.StatusUnprocessableEntity, ghErr.StatusCode)
		assert.Equal(t, "Validation Failed", ghErr.Message)
	})

	t.Run("異常系: 401は認証エラーになる", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message": "Bad credentials"}`)
		})

		_, err := client.SearchIssues(context.Background(), search.New(), nil)
		assert.True(t, IsAuthenticationError(err))
	})
}

func TestSearchClient_SearchAllIssues(t *testing.T) {
	t.Run("正常系: 最終ページまで辿る", func(t *testing.T) {
		pages := []string{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			page := r.URL.Query().Get("page")
			pages = append(pages, page)

			w.Header().Set("Content-Type", "application/json")
			if page == "" || page == "1" {
				w.Header().Set("Link", fmt.Sprintf(`<http://%s/search/issues?q=is:open&page=2>; rel="next"`, r.Host))
				fmt.Fprint(w, `{"total_count": 2, "items": [{"number": 1}]}`)
				return
			}
			fmt.Fprint(w, `{"total_count": 2, "items": [{"number": 2}]}`)
		})

		result, err := client.SearchAllIssues(context.Background(), search.New().Is("open"), nil, 0)
		require.NoError(t, err)

		require.Len(t, result.Issues, 2)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 0, result.NextPage)
		assert.Equal(t, []string{"", "2"}, pages)
	})

	t.Run("正常系: maxPagesで打ち切る", func(t *testing.T) {
		calls := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Link", fmt.Sprintf(`<http://%s/search/issues?q=is:open&page=%d>; rel="next"`, r.Host, calls+1))
			fmt.Fprintf(w, `{"total_count": 100, "items": [{"number": %d}]}`, calls)
		})

		result, err := client.SearchAllIssues(context.Background(), search.New().Is("open"), nil, 3)
		require.NoError(t, err)

		assert.Len(t, result.Issues, 3)
		assert.Equal(t, 100, result.Total)
		assert.Equal(t, 4, result.NextPage)
		assert.Equal(t, 3, calls)
	})

	t.Run("正常系: どれかのページが不完全ならIncompleteResultsになる", func(t *testing.T) {
		calls := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			if calls == 1 {
				w.Header().Set("Link", fmt.Sprintf(`<http://%s/search/issues?q=is:open&page=2>; rel="next"`, r.Host))
				fmt.Fprint(w, `{"total_count": 5000, "incomplete_results": false, "items": [{"number": 1}]}`)
				return
			}
			fmt.Fprint(w, `{"total_count": 4990, "incomplete_results": true, "items": [{"number": 2}]}`)
		})

		result, err := client.SearchAllIssues(context.Background(), search.New().Is("open"), nil, 0)
		require.NoError(t, err)

		assert.Equal(t, 5000, result.Total)
		assert.True(t, result.IncompleteResults)
		assert.Len(t, result.Issues, 2)
	})
}

func TestSearchClient_RateLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rate_limit", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"resources": {"core": {"limit": 5000, "remaining": 4999}, "search": {"limit": 30, "remaining": 28}}}`)
	})

	rate, err := client.RateLimit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, rate.Limit)
	assert.Equal(t, 28, rate.Remaining)
}
