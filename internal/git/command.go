package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/douhashi/ghquery/internal/logger"
)

// Runner はコマンドを実行して標準出力を返す
type Runner interface {
	Run(ctx context.Context, args []string, workDir string) (string, error)
}

// Command はgitコマンド実行を管理する構造体
type Command struct {
	logger logger.Logger
	binary string
}

// NewCommand は新しいCommandインスタンスを作成する
func NewCommand(logger logger.Logger) *Command {
	return &Command{
		logger: logger,
		binary: "git",
	}
}

// Run はgitコマンドを実行し、前後の空白を除いた標準出力を返す
func (c *Command) Run(ctx context.Context, args []string, workDir string) (string, error) {
	logFields := []interface{}{
		"command", c.binary,
		"args", args,
	}
	if workDir != "" {
		logFields = append(logFields, "workDir", workDir)
	}

	c.logger.Debug("Executing git command", logFields...)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	stdoutStr := strings.TrimSpace(stdout.String())
	stderrStr := strings.TrimSpace(stderr.String())

	if err != nil {
		c.logger.Debug("Git command failed", append(logFields,
			"error", err.Error(),
			"stderr", truncateOutput(stderrStr, 1000),
		)...)

		if stderrStr != "" {
			return "", fmt.Errorf("git command failed: %w\nstderr: %s", err, stderrStr)
		}
		return "", fmt.Errorf("git command failed: %w", err)
	}

	c.logger.Debug("Git command completed successfully", append(logFields,
		"output", truncateOutput(stdoutStr, 500),
	)...)

	return stdoutStr, nil
}

// truncateOutput は長い出力を指定された長さに切り詰める
func truncateOutput(output string, maxLength int) string {
	if len(output) <= maxLength {
		return output
	}
	return output[:maxLength] + "... (truncated)"
}
