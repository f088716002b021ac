package github

import (
	"net/http"
	"time"

	"github.com/douhashi/ghquery/internal/logger"
)

// loggingRoundTripper は検索APIへのリクエスト/レスポンスをログ出力するラウンドトリッパー
type loggingRoundTripper struct {
	base   http.RoundTripper
	logger logger.Logger
}

func newLoggingRoundTripper(base http.RoundTripper, log logger.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingRoundTripper{base: base, logger: log}
}

// RoundTrip はHTTPリクエストを実行し、前後をログ出力する
func (rt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	fields := []interface{}{
		"method", req.Method,
		"path", req.URL.Path,
		"query", req.URL.RawQuery,
	}
	if auth := req.Header.Get("Authorization"); auth != "" {
		fields = append(fields, "authorization", auth)
	}
	rt.logger.Debug("github_api_request", fields...)

	resp, err := rt.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.logger.Error("github_api_error",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	respFields := []interface{}{
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	}
	// 検索APIは通常のAPIとは別のレート制限枠を持つ
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		respFields = append(respFields, "rate_limit_remaining", remaining)
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		respFields = append(respFields, "rate_limit_reset", reset)
	}
	rt.logger.Debug("github_api_response", respFields...)

	return resp, nil
}
