package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gng-scout/athlete-directory-service/internal/divisions"
)

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [TIER]",
		Short: "Print the reference names for every tier or one tier",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}
			tiers := divisions.Tiers()
			if len(args) == 1 {
				d, ok := divisions.ParseDivision(args[0])
				if !ok || d == divisions.Unknown {
					return fmt.Errorf("unknown tier %q (expected D1, D2, D3, NAIA or NJCAA)", args[0])
				}
				tiers = []divisions.Division{d}
			}

			out := cmd.OutOrStdout()
			for _, d := range tiers {
				names := table.Names(d)
				fmt.Fprintf(out, "%s (%d)\n", d.Info().FullName, len(names))
				for _, name := range names {
					fmt.Fprintf(out, "  %s\n", name)
				}
			}
			return nil
		},
	}
}
