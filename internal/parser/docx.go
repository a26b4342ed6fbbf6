package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/proposaltoc/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Headings come from paragraph styles; with
// DetectUnstyled set, unstyled paragraphs that look like headings count too.
type DOCXParser struct {
	DetectUnstyled bool
}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	f, err := spool(r, "proposaltoc-docx-*.docx")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := docx.Parse(f.File, f.Size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	b := newTreeBuilder()
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		level := docxHeadingLevel(para)
		if level == 0 && p.DetectUnstyled {
			level = DetectHeading(text)
		}
		if level > 0 {
			b.Heading(level, text, 0)
		} else {
			b.Text(text)
		}
	}

	return b.Finish(strings.TrimSuffix(filename, ".docx")), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	// Style ids vary between "Heading1" and "heading 1".
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	switch style {
	case "title", "subtitle":
		return 1
	}
	if rest, ok := strings.CutPrefix(style, "heading"); ok && len(rest) == 1 && rest[0] >= '1' && rest[0] <= '9' {
		return int(rest[0] - '0')
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
