package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Recompact every designer's priority ranking",
	Long: `Clears priorities on inactive projects and rewrites each designer's ranked
entries to 1..N, keeping their relative order. No notifications are generated.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		res, err := e.svc.RawData.Rebalance(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "designers ranked: %d\npriorities rewritten: %d\ninactive projects cleared: %d\n",
			res.Designers, res.Rewritten, res.Cleared)
		return nil
	},
}
