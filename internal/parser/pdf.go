package parser

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dgallion1/proposaltoc/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if available.
//
// Lines that look like headings open sections. A PDF without any falls back
// to one node per page.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	f, err := spool(r, "proposaltoc-pdf-*.pdf")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	text, err := extractPDFText(f.File, f.Size)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(f.Name())
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return pdfTree(strings.TrimSuffix(filename, ".pdf"), text), nil
}

// pdfTree builds the document tree from extracted text with pages separated
// by form feeds.
func pdfTree(title, text string) *doctree.DocTree {
	pages := splitPages(text)

	b := newTreeBuilder()
	for i, page := range pages {
		var para []string
		flush := func() {
			b.Text(strings.Join(para, " "))
			para = para[:0]
		}
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				flush()
				continue
			}
			if level := DetectHeading(line); level > 0 {
				flush()
				b.Heading(level, line, i+1)
				continue
			}
			para = append(para, line)
		}
		flush()
	}
	if b.Headings() {
		return b.Finish(title)
	}

	tree := &doctree.DocTree{Title: title}
	for i, page := range pages {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		tree.Children = append(tree.Children, &doctree.DocNode{
			Title: fmt.Sprintf("Page %d", i+1),
			Text:  page,
			Page:  i + 1,
		})
	}
	return tree
}

// extractPDFText joins page text with form feeds. Pages that fail to decode
// are skipped.
func extractPDFText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdflib.NewReader(r, size)
	if err != nil {
		return "", err
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\f"), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

func splitPages(text string) []string {
	return strings.Split(text, "\f")
}
