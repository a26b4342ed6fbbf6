// Package commands implements the tocctl command line: browsing the template
// catalog and previewing how documents and record files become outlines.
package commands

import (
	"github.com/spf13/cobra"
)

// outputOptions selects machine-readable output.
type outputOptions struct {
	JSON bool
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.JSON, "json", false, "print JSON instead of a table")
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tocctl",
		Short: "Inspect proposal outline templates, documents and section records.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTemplates(topLevel)
	addPreview(topLevel)
	addOutline(topLevel)
	addFlatten(topLevel)
}
