package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/proposaltoc/internal/parser"
	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addOutline(topLevel *cobra.Command) {
	oo := &outputOptions{}
	var detectUnstyled bool
	cmd := &cobra.Command{
		Use:   "outline <document>",
		Short: "Show the section tree a document's headings produce.",
		Long: "Parse a document (txt, md, csv, html, pdf, docx) and print the two-level\n" +
			"outline a curation session started from it would contain.",
		Example: "tocctl outline past-proposal.docx --json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := parser.Parse(f, filepath.Base(path), parser.Options{
				PDFFallbackPdftotext: true,
				DOCXDetectUnstyled:   detectUnstyled,
			})
			if err != nil {
				return err
			}
			tree := toc.Normalize(parser.OutlineSuggestions(doc))
			if oo.JSON {
				return printJSON(cmd.OutOrStdout(), tree)
			}
			if len(tree) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no headings found")
				return err
			}
			if err := printTree(cmd.OutOrStdout(), tree); err != nil {
				return err
			}
			_, err = color.New(color.Faint).Fprintf(cmd.OutOrStdout(), "%d headings in %q\n", doc.HeadingCount(), doc.Title)
			return err
		},
	}
	oo.addFlags(cmd)
	cmd.Flags().BoolVar(&detectUnstyled, "detect-unstyled", true, "treat heading-like unstyled docx paragraphs as headings")
	topLevel.AddCommand(cmd)
}
