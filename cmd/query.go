package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	flags := &predicateFlags{}

	cmd := &cobra.Command{
		Use:   "query [owner/name...]",
		Short: "検索クエリ文字列を表示する",
		Long: `述語からGitHub検索APIのクエリ文字列を組み立てて標準出力に表示します。
ネットワークにはアクセスしません。

出力はカテゴリごとに repo, is, label, type, state, no の順に並びます。`,
		Example: `  ghquery query rust-lang/rust --type pr --is merged --label hacktoberfest --no assignee
  q=repo:rust-lang/rust+is:merged+label:hacktoberfest+type:pr+no:assignee`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.buildQuery(cmd.Context(), getConfig(), args)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), q.String())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
