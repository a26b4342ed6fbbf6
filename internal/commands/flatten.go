package commands

import (
	"fmt"
	"os"

	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addFlatten(topLevel *cobra.Command) {
	oo := &outputOptions{}
	var showTree bool
	cmd := &cobra.Command{
		Use:   "flatten <records.{json,yaml}>",
		Short: "Normalize section records and print the generation-ready outline.",
		Example: `
tocctl flatten suggestions.yaml
tocctl flatten suggestions.json --tree
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			records, err := toc.DecodeRecords(data, toc.SourceUser)
			if err != nil {
				return err
			}
			tree := toc.Normalize(records)
			out := cmd.OutOrStdout()

			if showTree {
				if err := printTree(out, tree); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}

			sections := toc.Flatten(tree)
			if oo.JSON {
				return printJSON(out, sections)
			}
			if err := printSections(out, sections); err != nil {
				return err
			}
			if pending := toc.Untriaged(tree); len(pending) > 0 {
				warn := color.New(color.FgYellow)
				_, err = warn.Fprintf(cmd.ErrOrStderr(), "%d section(s) awaiting triage left out: %v\n", len(pending), pending)
			}
			return err
		},
	}
	oo.addFlags(cmd)
	cmd.Flags().BoolVar(&showTree, "tree", false, "also print the normalized tree")
	topLevel.AddCommand(cmd)
}
