// Package cli implements the divisions operator command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/gng-scout/athlete-directory-service/internal/divisions"
)

type options struct {
	file string
}

// NewRootCommand builds the divisions command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "divisions",
		Short:         "Classify colleges into athletic divisions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.file, "file", "", "reference table YAML (defaults to the embedded table)")

	root.AddCommand(
		newClassifyCommand(opts),
		newListCommand(opts),
		newCheckCommand(opts),
	)
	return root
}

func (o *options) table() (*divisions.Table, error) {
	return divisions.LoadTable(o.file)
}
