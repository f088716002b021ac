package logger

import (
	"os"
	"strings"
)

// ConfigFromEnv は環境変数から設定を読み込む
//
// GHQUERY_LOG_LEVEL / GHQUERY_LOG_FORMAT は LOG_LEVEL / LOG_FORMAT より優先される。
func ConfigFromEnv() *Config {
	return OverrideFromEnv(&Config{
		Level:  "info",
		Format: "text",
	})
}

// OverrideFromEnv は config のうち環境変数で指定された項目だけを上書きする
func OverrideFromEnv(config *Config) *Config {
	if isTrue(os.Getenv("DEBUG")) {
		config.Level = "debug"
	}

	// LOG_LEVELはDEBUGより優先
	if level := firstEnv("GHQUERY_LOG_LEVEL", "LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}

	if format := firstEnv("GHQUERY_LOG_FORMAT", "LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}

	return config
}

// NewFromEnv は環境変数から設定を読み込んでロガーを作成する
func NewFromEnv(opts ...Option) (Logger, error) {
	config := ConfigFromEnv()
	return New(append([]Option{
		WithLevel(config.Level),
		WithFormat(config.Format),
	}, opts...)...)
}

// firstEnv は最初に値が設定されている環境変数の値を返す
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// isTrue は文字列がtrueを表すかチェックする
func isTrue(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
