// Package doctree is the format-neutral heading tree every document parser
// produces. Outline extraction and RFP excerpts both read it.
package doctree

import "strings"

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // From document metadata, else the file name
	Children []*DocNode // Top-level headings, plus an untitled preamble node first if the document had one
}

// DocNode is a heading with its body text, or untitled text under a heading.
type DocNode struct {
	Title    string // Heading text as written, numbering included
	Text     string
	Page     int // Source page (pdf) or row (csv); 0 if unknown
	Children []*DocNode
}

// Titled reports whether the node is a heading rather than loose text.
func (n *DocNode) Titled() bool {
	return strings.TrimSpace(n.Title) != ""
}

// Walk visits n and its descendants in document order.
func (n *DocNode) Walk(fn func(*DocNode)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// HeadingCount returns how many titled nodes the document has.
func (t *DocTree) HeadingCount() int {
	count := 0
	for _, c := range t.Children {
		c.Walk(func(n *DocNode) {
			if n.Titled() {
				count++
			}
		})
	}
	return count
}
