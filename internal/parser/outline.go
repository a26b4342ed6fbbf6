package parser

import (
	"strings"

	"github.com/dgallion1/proposaltoc/internal/catalog"
	"github.com/dgallion1/proposaltoc/internal/doctree"
	"github.com/dgallion1/proposaltoc/internal/toc"
)

// Outline folds a document's heading hierarchy into a two-level proposal
// outline. Top-level headings become main sections and every heading below
// one, however deep, becomes one of its subsections in document order. A
// document whose only top-level heading is its title is unwrapped first.
// Untitled text counts toward the enclosing section's word count.
func Outline(tree *doctree.DocTree) []catalog.Section {
	if tree == nil {
		return nil
	}
	tops := titled(tree.Children)
	if len(tops) == 1 && len(titled(tops[0].Children)) > 1 {
		tops = titled(tops[0].Children)
	}

	var out []catalog.Section
	for _, node := range tops {
		sec, ok := section(node)
		if !ok {
			continue
		}
		for _, child := range node.Children {
			sec.Subsections = foldSubsections(sec.Subsections, child)
		}
		out = append(out, sec)
	}
	return out
}

// OutlineSuggestions is Outline as template-sourced records ready for
// normalization.
func OutlineSuggestions(tree *doctree.DocTree) []toc.Suggestion {
	return catalog.Template{Sections: Outline(tree)}.Suggestions()
}

func foldSubsections(subs []catalog.Section, node *doctree.DocNode) []catalog.Section {
	node.Walk(func(n *doctree.DocNode) {
		if sec, ok := section(n); ok {
			subs = append(subs, sec)
		}
	})
	return subs
}

func section(node *doctree.DocNode) (catalog.Section, bool) {
	title := StripNumbering(node.Title)
	if title == "" {
		return catalog.Section{}, false
	}
	words := WordCount(node.Text)
	for _, child := range node.Children {
		if !child.Titled() {
			words += WordCount(child.Text)
		}
	}
	return catalog.Section{
		Title:     title,
		WordCount: words,
		Category:  Categorize(title),
	}, true
}

func titled(nodes []*doctree.DocNode) []*doctree.DocNode {
	var out []*doctree.DocNode
	for _, n := range nodes {
		if n.Titled() {
			out = append(out, n)
		}
	}
	return out
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"executive_summary", []string{"executive", "summary", "overview"}},
	{"scope_approach", []string{"scope", "approach", "methodology"}},
	{"technical_solution", []string{"technical", "solution", "architecture"}},
	{"team_resources", []string{"team", "personnel", "resources"}},
	{"timeline_schedule", []string{"timeline", "schedule", "milestones"}},
	{"budget_pricing", []string{"budget", "cost", "pricing", "investment"}},
	{"compliance_requirements", []string{"compliance", "requirements", "standards"}},
	{"experience_qualifications", []string{"experience", "qualifications", "references"}},
}

// Categorize buckets a section title by keyword, first match wins. Unmatched
// titles are "other".
func Categorize(title string) string {
	lower := strings.ToLower(title)
	for _, c := range categoryKeywords {
		for _, w := range c.words {
			if strings.Contains(lower, w) {
				return c.category
			}
		}
	}
	return "other"
}
