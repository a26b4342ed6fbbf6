package parser

import (
	"strings"

	"github.com/dgallion1/proposaltoc/internal/doctree"
)

// treeBuilder assembles a DocTree from a stream of headings and text blocks.
// Text attaches to the most recent heading; a heading nests under the
// nearest earlier heading of a lower level.
type treeBuilder struct {
	root  *doctree.DocNode
	stack []builderEntry
	text  strings.Builder
}

type builderEntry struct {
	node  *doctree.DocNode
	level int
}

func newTreeBuilder() *treeBuilder {
	root := &doctree.DocNode{}
	return &treeBuilder{
		root:  root,
		stack: []builderEntry{{node: root, level: 0}},
	}
}

// Heading opens a new section at level (1 = top).
func (b *treeBuilder) Heading(level int, title string, page int) {
	b.flush()
	if level < 1 {
		level = 1
	}
	node := &doctree.DocNode{Title: title, Page: page}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, builderEntry{node: node, level: level})
}

// Text appends a paragraph to the current section.
func (b *treeBuilder) Text(t string) {
	if t = strings.TrimSpace(t); t == "" {
		return
	}
	if b.text.Len() > 0 {
		b.text.WriteString("\n\n")
	}
	b.text.WriteString(t)
}

func (b *treeBuilder) flush() {
	t := strings.TrimSpace(b.text.String())
	b.text.Reset()
	if t == "" {
		return
	}
	top := b.stack[len(b.stack)-1].node
	if top.Text != "" {
		top.Text += "\n\n" + t
	} else {
		top.Text = t
	}
}

// Headings reports whether any heading has been seen.
func (b *treeBuilder) Headings() bool {
	return len(b.root.Children) > 0
}

// Finish returns the tree. Text before the first heading becomes a leading
// untitled node.
func (b *treeBuilder) Finish(title string) *doctree.DocTree {
	b.flush()
	tree := &doctree.DocTree{Title: title, Children: b.root.Children}
	if b.root.Text != "" {
		tree.Children = append([]*doctree.DocNode{{Text: b.root.Text}}, tree.Children...)
	}
	return tree
}
