package commands

import (
	"fmt"

	"github.com/dgallion1/proposaltoc/internal/catalog"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addTemplates(topLevel *cobra.Command) {
	oo := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in proposal templates.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.New()
			if err != nil {
				return err
			}
			list := cat.List()
			if oo.JSON {
				return printJSON(cmd.OutOrStdout(), list)
			}

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Category"), bold.Sprint("Sections"))
			for _, t := range list {
				tbl.AddRow(t.ID, t.Name, t.Category, len(t.Sections))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}
	oo.addFlags(cmd)
	topLevel.AddCommand(cmd)
}

func addPreview(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "preview <template-id>",
		Short:   "Print a template outline as markdown.",
		Example: "tocctl preview technical-services",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.New()
			if err != nil {
				return err
			}
			md, ok := cat.Preview(args[0])
			if !ok {
				return fmt.Errorf("unknown template %q", args[0])
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	topLevel.AddCommand(cmd)
}
