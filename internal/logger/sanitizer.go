package logger

import (
	"regexp"
	"strings"
)

const masked = "***MASKED***"

// センシティブなキー（大文字小文字を区別しない、単語境界は "_"）
var sensitiveKeyPatterns = []string{
	"password",
	"token",
	"secret",
	"authorization",
	"auth",
	"credential",
	"private_key",
}

// tokenPrefixes はマスク時に残すトークンのプレフィックス
var tokenPrefixes = []string{
	"ghp_",
	"gho_",
	"ghs_",
	"ghu_",
	"github_pat_",
	"Bearer ",
	"token ",
}

// センシティブな値のパターン
var sensitiveValuePattern = regexp.MustCompile(
	`^(gh[opsu]_[A-Za-z0-9]{36,}|github_pat_[A-Za-z0-9_]{22,}|(?i:bearer|token)\s+[A-Za-z0-9\-_\.]{20,})$`,
)

// tokenInURL はURLのクエリに埋め込まれたトークン
var tokenInURL = regexp.MustCompile(`(?i)(access_token|token)=[^&\s]+`)

// SanitizeValue は値がセンシティブな場合にマスクする
func SanitizeValue(value interface{}) interface{} {
	str, ok := value.(string)
	if !ok {
		return value
	}
	if sensitiveValuePattern.MatchString(str) {
		return maskValue(str)
	}
	if tokenInURL.MatchString(str) {
		return tokenInURL.ReplaceAllString(str, "$1="+masked)
	}
	return value
}

// SanitizeArgs はkey-valueペアのログ引数をマスクしたコピーを返す
func SanitizeArgs(args ...interface{}) []interface{} {
	if len(args) == 0 {
		return args
	}

	sanitized := make([]interface{}, len(args))
	copy(sanitized, args)

	for i := 0; i < len(sanitized)-1; i += 2 {
		key, ok := sanitized[i].(string)
		if !ok {
			continue
		}
		if isSensitiveKey(key) {
			if str, ok := sanitized[i+1].(string); ok {
				sanitized[i+1] = maskValue(str)
			} else {
				sanitized[i+1] = masked
			}
			continue
		}
		sanitized[i+1] = SanitizeValue(sanitized[i+1])
	}

	return sanitized
}

// isSensitiveKey はキーがセンシティブかどうかを判定する
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	for _, pattern := range sensitiveKeyPatterns {
		if lowerKey == pattern ||
			strings.HasPrefix(lowerKey, pattern+"_") ||
			strings.HasSuffix(lowerKey, "_"+pattern) ||
			strings.Contains(lowerKey, "_"+pattern+"_") {
			return true
		}
	}

	return false
}

// maskValue は既知のプレフィックスを残して値をマスクする
func maskValue(str string) string {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(str, prefix) {
			return prefix + masked
		}
	}
	return masked
}
