package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var statusColors = map[toc.Status]*color.Color{
	toc.StatusKeep:            color.New(color.FgGreen),
	toc.StatusModified:        color.New(color.FgCyan),
	toc.StatusSuggestedAdd:    color.New(color.FgYellow),
	toc.StatusSuggestedRemove: color.New(color.FgRed),
}

func statusLabel(s toc.Status) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(s)
	}
	return string(s)
}

// printTree renders the section tree with subsections indented under their
// parent.
func printTree(w io.Writer, tree toc.Tree) error {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Title"), bold.Sprint("Status"), bold.Sprint("Origin"), bold.Sprint("ID"))
	for i, n := range tree {
		tbl.AddRow(fmt.Sprintf("%d.", i+1), n.Title, statusLabel(n.Status), n.Origin, faint.Sprint(n.ID))
		for j, sub := range n.Subsections {
			tbl.AddRow(fmt.Sprintf("%d.%d.", i+1, j+1), "  "+sub.Title, statusLabel(sub.Status), sub.Origin, faint.Sprint(sub.ID))
		}
	}
	tbl.RightAlign(0)
	_, err := fmt.Fprintln(w, tbl)
	return err
}

func printSections(w io.Writer, sections []toc.Section) error {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("Level"), bold.Sprint("Title"), bold.Sprint("Status"))
	for _, s := range sections {
		title := s.Title
		if s.Level > 1 {
			title = "  " + title
		}
		tbl.AddRow(s.Level, title, statusLabel(s.Status))
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}
