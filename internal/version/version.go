package version

import "fmt"

// ビルド時に -ldflags "-X github.com/douhashi/ghquery/internal/version.Version=..." で上書きされる
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info はバージョン情報を保持する構造体
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get は現在のバージョン情報を返す
func Get() Info {
	return Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
	}
}

// String は "ghquery <version> (commit: <commit>, built: <date>)" を返す
func (i Info) String() string {
	return fmt.Sprintf("ghquery %s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}
