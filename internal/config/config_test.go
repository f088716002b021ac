package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/douhashi/ghquery/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_TOKEN", "GH_TOKEN", "GHQUERY_GITHUB_TOKEN",
		"GHQUERY_GITHUB_BASE_URL", "GHQUERY_SEARCH_PER_PAGE", "GHQUERY_SEARCH_DEFAULTS_LABELS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ghquery.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultBaseURL, cfg.GitHub.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, "origin", cfg.GitHub.Remote)
	assert.Equal(t, DefaultPerPage, cfg.Search.PerPage)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Load(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		envVars       map[string]string
		checkFunc     func(*testing.T, *Config)
	}{
		{
			name: "正常系: YAMLファイルから設定を読み込める",
			configContent: `
github:
  token: test-token-from-file
  base_url: https://github.example.com/api/v3/
  timeout: 10s
search:
  per_page: 50
  defaults:
    is: ["open"]
    labels: ["good first issue", "help wanted"]
    no: ["assignee"]
log:
  level: debug
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "test-token-from-file", cfg.GitHub.Token)
				assert.Equal(t, "https://github.example.com/api/v3/", cfg.GitHub.BaseURL)
				assert.Equal(t, 10*time.Second, cfg.GitHub.Timeout)
				assert.Equal(t, "origin", cfg.GitHub.Remote)
				assert.Equal(t, 50, cfg.Search.PerPage)
				assert.Equal(t, []string{"open"}, cfg.Search.Defaults.Is)
				assert.Equal(t, []string{"good first issue", "help wanted"}, cfg.Search.Defaults.Labels)
				assert.Equal(t, []string{"assignee"}, cfg.Search.Defaults.No)
				assert.Equal(t, "debug", cfg.Log.Level)
			},
		},
		{
			name: "正常系: 環境変数が設定ファイルより優先される",
			configContent: `
github:
  token: file-token
search:
  per_page: 50
`,
			envVars: map[string]string{
				"GHQUERY_GITHUB_TOKEN":    "env-token",
				"GHQUERY_SEARCH_PER_PAGE": "10",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "env-token", cfg.GitHub.Token)
				assert.Equal(t, 10, cfg.Search.PerPage)
			},
		},
		{
			name: "正常系: 環境変数GITHUB_TOKENも使える",
			configContent: `
search:
  per_page: 20
`,
			envVars: map[string]string{
				"GITHUB_TOKEN": "github-env-token",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "github-env-token", cfg.GitHub.Token)
				assert.Equal(t, 20, cfg.Search.PerPage)
			},
		},
		{
			name:          "正常系: 空のファイルではデフォルト値が使われる",
			configContent: "",
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultBaseURL, cfg.GitHub.BaseURL)
				assert.Equal(t, DefaultPerPage, cfg.Search.PerPage)
				assert.Empty(t, cfg.Search.Defaults.Labels)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := NewConfig()
			require.NoError(t, cfg.Load(writeConfig(t, tt.configContent)))
			tt.checkFunc(t, cfg)
		})
	}

	t.Run("異常系: 存在しないファイル", func(t *testing.T) {
		clearEnv(t)
		cfg := NewConfig()
		assert.Error(t, cfg.Load(filepath.Join(t.TempDir(), "missing.yml")))
	})

	t.Run("異常系: 不正なYAML", func(t *testing.T) {
		clearEnv(t)
		cfg := NewConfig()
		assert.Error(t, cfg.Load(writeConfig(t, "github: [unclosed")))
	})
}

func TestConfig_LoadOrDefault(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()
	cfg.LoadOrDefault(filepath.Join(t.TempDir(), "missing.yml"))

	assert.Equal(t, NewConfig(), cfg)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "正常系: デフォルト値",
			modify: func(*Config) {},
		},
		{
			name:   "正常系: per_pageの上限",
			modify: func(c *Config) { c.Search.PerPage = MaxPerPage },
		},
		{
			name:    "異常系: per_pageが0",
			modify:  func(c *Config) { c.Search.PerPage = 0 },
			wantErr: true,
		},
		{
			name:    "異常系: per_pageが上限超過",
			modify:  func(c *Config) { c.Search.PerPage = MaxPerPage + 1 },
			wantErr: true,
		},
		{
			name:    "異常系: base_urlのスキームが不正",
			modify:  func(c *Config) { c.GitHub.BaseURL = "ftp://example.com/" },
			wantErr: true,
		},
		{
			name:    "異常系: 不正なログレベル",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "異常系: 負のタイムアウト",
			modify:  func(c *Config) { c.GitHub.Timeout = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_WebHost(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{name: "github.com", baseURL: DefaultBaseURL, want: "github.com"},
		{name: "GHES", baseURL: "https://ghe.example.com/api/v3/", want: "ghe.example.com"},
		{name: "GHESのポート付き", baseURL: "http://ghe.example.com:8080/api/v3", want: "ghe.example.com"},
		{name: "apiサブドメイン", baseURL: "https://api.ghe.example.com/", want: "ghe.example.com"},
		{name: "空", baseURL: "", want: "github.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.GitHub.BaseURL = tt.baseURL
			assert.Equal(t, tt.want, cfg.WebHost())
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	t.Run("正常系: 既定の述語がカテゴリ順で追加される", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Search.Defaults = PredicateConfig{
			Is:     []string{"open"},
			Labels: []string{"bug"},
			Types:  []string{"issue"},
			No:     []string{"assignee"},
		}

		q := cfg.ApplyDefaults(search.New().Repo("octo", "cat"))

		assert.Equal(t, "q=repo:octo/cat+is:open+label:bug+type:issue+no:assignee", q.String())
	})

	t.Run("正常系: 既定の述語がなければクエリは変わらない", func(t *testing.T) {
		q := search.New().Is("merged")

		assert.Equal(t, q.String(), NewConfig().ApplyDefaults(q).String())
	})
}
