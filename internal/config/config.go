package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/douhashi/ghquery/internal/search"
	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL はgithub.comのREST APIエンドポイント
	DefaultBaseURL = "https://api.github.com/"
	// DefaultWebHost はgithub.comのリモートURLに現れるホスト名
	DefaultWebHost = "github.com"
	// DefaultPerPage は検索APIの既定ページサイズ
	DefaultPerPage = 30
	// MaxPerPage は検索APIが受け付ける最大ページサイズ
	MaxPerPage = 100
)

// Config はアプリケーション全体の設定
type Config struct {
	GitHub GitHubConfig `mapstructure:"github"`
	Search SearchConfig `mapstructure:"search"`
	Log    LogConfig    `mapstructure:"log"`
}

// GitHubConfig はGitHub関連の設定
type GitHubConfig struct {
	Token   string        `mapstructure:"token"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Remote  string        `mapstructure:"remote"`
}

// SearchConfig は検索の設定
type SearchConfig struct {
	PerPage  int             `mapstructure:"per_page"`
	Defaults PredicateConfig `mapstructure:"defaults"`
}

// PredicateConfig は全ての検索に追加される述語
type PredicateConfig struct {
	Is     []string `mapstructure:"is"`
	Labels []string `mapstructure:"labels"`
	Types  []string `mapstructure:"types"`
	No     []string `mapstructure:"no"`
}

// LogConfig はログの設定
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NewConfig はデフォルト値のConfigを作成する
func NewConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 30 * time.Second,
			Remote:  "origin",
		},
		Search: SearchConfig{
			PerPage: DefaultPerPage,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultConfigPaths は設定ファイルの探索先を優先順に返す
func DefaultConfigPaths() []string {
	paths := []string{"ghquery.yml", ".ghquery.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "ghquery", "ghquery.yml"),
			filepath.Join(home, ".ghquery.yml"),
		)
	}
	return paths
}

// Load は設定ファイルと環境変数から設定を読み込む
// configPath が空の場合は DefaultConfigPaths を探索し、見つからなければ環境変数とデフォルト値のみを使う
func (c *Config) Load(configPath string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("GHQUERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// GITHUB_TOKENもサポート
	if err := v.BindEnv("github.token", "GHQUERY_GITHUB_TOKEN", "GITHUB_TOKEN", "GH_TOKEN"); err != nil {
		return fmt.Errorf("failed to bind env: %w", err)
	}

	setDefaults(v, c)

	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// LoadOrDefault は設定を読み込み、失敗した場合はデフォルト値を使用する
func (c *Config) LoadOrDefault(configPath string) {
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return
		}
	}

	_ = c.Load(configPath)
}

// setDefaults は c の現在値を viper のデフォルトとして登録する
// AutomaticEnv は登録済みのキーにしか効かないため、全キーを登録する
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("github.base_url", c.GitHub.BaseURL)
	v.SetDefault("github.timeout", c.GitHub.Timeout)
	v.SetDefault("github.remote", c.GitHub.Remote)
	v.SetDefault("search.per_page", c.Search.PerPage)
	v.SetDefault("search.defaults.is", c.Search.Defaults.Is)
	v.SetDefault("search.defaults.labels", c.Search.Defaults.Labels)
	v.SetDefault("search.defaults.types", c.Search.Defaults.Types)
	v.SetDefault("search.defaults.no", c.Search.Defaults.No)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
}

// findConfigFile は最初に見つかった設定ファイルのパスを返す
func findConfigFile() string {
	for _, path := range DefaultConfigPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.Search.PerPage < 1 || c.Search.PerPage > MaxPerPage {
		return fmt.Errorf("search.per_page must be between 1 and %d: %d", MaxPerPage, c.Search.PerPage)
	}

	u, err := url.Parse(c.GitHub.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid github.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("github.base_url must be an http(s) URL: %s", c.GitHub.BaseURL)
	}

	if c.GitHub.Timeout < 0 {
		return errors.New("github.timeout must not be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level: %s", c.Log.Level)
	}

	return nil
}

// WebHost はリモートURLに現れるホスト名を github.base_url から導く
// api.github.com は github.com に、GHESの https://ghe.example.com/api/v3/ は ghe.example.com になる
func (c *Config) WebHost() string {
	u, err := url.Parse(c.GitHub.BaseURL)
	if err != nil || u.Hostname() == "" {
		return DefaultWebHost
	}
	host := u.Hostname()
	if host == "api.github.com" {
		return DefaultWebHost
	}
	return strings.TrimPrefix(host, "api.")
}

// ApplyDefaults は設定された既定の述語を q に追加したクエリを返す
func (c *Config) ApplyDefaults(q search.Query) search.Query {
	d := c.Search.Defaults
	for _, s := range d.Is {
		q = q.Is(s)
	}
	for _, s := range d.Labels {
		q = q.Label(s)
	}
	for _, s := range d.Types {
		q = q.Type(s)
	}
	for _, s := range d.No {
		q = q.No(s)
	}
	return q
}
