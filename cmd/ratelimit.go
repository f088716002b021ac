package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newRateLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate-limit",
		Short: "検索APIのレート制限を表示する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newSearchClientFunc(getConfig())
			if err != nil {
				return fmt.Errorf("failed to create GitHub client: %w", err)
			}

			rate, err := client.RateLimit(cmd.Context())
			if err != nil {
				return err
			}
			if rate == nil {
				return fmt.Errorf("search rate limit not reported by %s", client.BaseURL())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "search: %d/%d remaining, resets %s\n",
				rate.Remaining, rate.Limit, humanize.RelTime(rate.Reset.Time, nowFunc(), "ago", "from now"))
			return nil
		},
	}
}
