package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/douhashi/ghquery/internal/config"
	"github.com/douhashi/ghquery/internal/logger"
	"github.com/douhashi/ghquery/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	rootCmd   *cobra.Command
	appLog    logger.Logger
	appConfig *config.Config
)

func init() {
	rootCmd = NewRootCmd()
}

// NewRootCmd creates a new root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newRateLimitCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghquery",
		Short: "GitHub検索クエリの組み立てツール",
		Long: `ghqueryは、repo/is/label/type/no の述語からGitHubのissue/PR検索クエリを組み立て、
そのまま表示したり検索APIに送ったりするCLIツールです。`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 設定ファイルを先に読み込む
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			appConfig = cfg

			appLog, err = newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			appLog.Debug("Config loaded",
				"config_file", cfgFile,
				"base_url", cfg.GitHub.BaseURL,
				"per_page", cfg.Search.PerPage,
				"github_token", cfg.GitHub.Token,
			)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "設定ファイルのパス")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細出力")

	return cmd
}

// Execute はルートコマンドを実行する
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig は設定を読み込んで検証する
func loadConfig(path string) (*config.Config, error) {
	cfg := config.NewConfig()
	if err := cfg.Load(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger は設定ファイルの値に環境変数を上書きしてロガーを作成する
// ログは w (通常は標準エラー出力) に書き出す
func newLogger(cfg *config.Config, w io.Writer) (logger.Logger, error) {
	if verbose {
		os.Setenv("DEBUG", "true")
	}

	lc := logger.OverrideFromEnv(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	return logger.New(logger.WithLevel(lc.Level), logger.WithFormat(lc.Format), logger.WithOutput(w))
}

// getLogger はPersistentPreRunEを経由しない呼び出しでも使えるロガーを返す
// 環境変数のログ設定が不正な場合は何も出力しない
func getLogger() logger.Logger {
	if appLog != nil {
		return appLog
	}
	l, err := logger.NewFromEnv()
	if err != nil {
		return logger.NewNop()
	}
	return l
}

// getConfig はPersistentPreRunEを経由しない呼び出しでも使える設定を返す
// 読み込みに失敗した場合はデフォルト値を使う
func getConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	cfg := config.NewConfig()
	cfg.LoadOrDefault(cfgFile)
	return cfg
}
