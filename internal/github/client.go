package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/douhashi/ghquery/internal/logger"
	gh "github.com/google/go-github/v50/github"
	"golang.org/x/oauth2"
)

// SearchClient は描画済みのクエリをGitHub検索APIに送るクライアント
type SearchClient struct {
	github  *gh.Client
	logger  logger.Logger
	perPage int
}

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
	timeout    time.Duration
	perPage    int
}

// Option はSearchClientの設定オプション
type Option func(*clientOptions)

// WithBaseURL はAPIのベースURLを設定する (GitHub Enterprise Server向け)
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient は下位のHTTPクライアントを差し替える
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithLogger はロガーを設定する
func WithLogger(l logger.Logger) Option {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithTimeout はリクエスト全体のタイムアウトを設定する
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithPerPage はページ指定がない場合のページサイズを設定する
func WithPerPage(n int) Option {
	return func(o *clientOptions) {
		o.perPage = n
	}
}

// NewSearchClient は新しいSearchClientを作成する
// token が空の場合は未認証でアクセスする
func NewSearchClient(token string, opts ...Option) (*SearchClient, error) {
	o := &clientOptions{
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	base := http.DefaultTransport
	if o.httpClient != nil && o.httpClient.Transport != nil {
		base = o.httpClient.Transport
	}

	// ログは認証ヘッダー付与後のリクエストを記録する
	transport := newLoggingRoundTripper(base, o.logger)
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	httpClient := &http.Client{Transport: transport, Timeout: o.timeout}
	client := gh.NewClient(httpClient)

	if o.baseURL != "" {
		u, err := parseBaseURL(o.baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}

	return &SearchClient{
		github:  client,
		logger:  o.logger,
		perPage: o.perPage,
	}, nil
}

// parseBaseURL はベースURLを検証し、末尾のスラッシュを補う
func parseBaseURL(baseURL string) (*url.URL, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL scheme: %s", baseURL)
	}
	return u, nil
}

// BaseURL はAPIのベースURLを返す
func (c *SearchClient) BaseURL() *url.URL {
	return c.github.BaseURL
}

// RateLimit は検索APIのレート制限を返す
func (c *SearchClient) RateLimit(ctx context.Context) (*gh.Rate, error) {
	limits, _, err := c.github.RateLimits(ctx)
	if err != nil {
		return nil, ClassifyError(err)
	}
	return limits.GetSearch(), nil
}
