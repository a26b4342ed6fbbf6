package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/proposaltoc/internal/doctree"
)

// TextParser handles plain text files. Single-line paragraphs that look like
// headings open sections; without any, each paragraph is its own node.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	paragraphs, err := readParagraphs(r)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSuffix(filename, ".txt")

	b := newTreeBuilder()
	for _, para := range paragraphs {
		if level := DetectHeading(para); level > 0 {
			b.Heading(level, para, 0)
			continue
		}
		b.Text(para)
	}
	if b.Headings() {
		return b.Finish(title), nil
	}

	tree := &doctree.DocTree{Title: title}
	for _, para := range paragraphs {
		tree.Children = append(tree.Children, &doctree.DocNode{
			Text: para,
		})
	}
	return tree, nil
}

func readParagraphs(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
			continue
		}
		// A heading line directly above body text still ends the paragraph.
		if current.Len() == 0 && DetectHeading(line) > 0 {
			paragraphs = append(paragraphs, strings.TrimSpace(line))
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return paragraphs, scanner.Err()
}
