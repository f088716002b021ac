package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// executeCommand はルートコマンドを実行して標準出力と標準エラー出力を返す
// 設定ファイルは一時ディレクトリに書き出したものを使う
func executeCommand(t *testing.T, configContent string, args ...string) (string, string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN", "GHQUERY_GITHUB_TOKEN", "DEBUG", "LOG_LEVEL", "GHQUERY_LOG_LEVEL", "LOG_FORMAT", "GHQUERY_LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	configPath := filepath.Join(dir, "ghquery.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	t.Cleanup(func() {
		appLog = nil
		appConfig = nil
		verbose = false
		cfgFile = ""
	})

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
