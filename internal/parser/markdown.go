package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/proposaltoc/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	b := newTreeBuilder()

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			b.Heading(h.Level, headingText(h, src), 0)
			continue
		}
		// Collect text content from non-heading blocks.
		b.Text(extractText(n, src))
	}

	return b.Finish(strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown")), nil
}

func headingText(h *ast.Heading, src []byte) string {
	return extractText(h, src)
}

// extractText gets the text content of a goldmark AST node. Leaf blocks such
// as code blocks contribute their raw lines; everything else is assembled
// from inline children so paragraph text is not read twice.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			sub := extractText(c, src)
			if c.Type() == ast.TypeBlock && buf.Len() > 0 && sub != "" {
				buf.WriteByte('\n')
			}
			buf.WriteString(sub)
		}
	}
	return strings.TrimSpace(buf.String())
}
