package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gng-scout/athlete-directory-service/internal/divisions"
)

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a reference table and report tier sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range divisions.Tiers() {
				fmt.Fprintf(out, "%-6s %d\n", d, len(table.Names(d)))
			}
			fmt.Fprintf(out, "%-6s %d\n", "total", table.Len())
			return nil
		},
	}
}
