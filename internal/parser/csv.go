package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/proposaltoc/internal/doctree"
)

// sectionColumns name the column a requirements matrix groups rows by.
var sectionColumns = []string{"section", "heading", "category", "volume", "area"}

// CSVParser handles CSV files such as RFP requirements matrices. When a
// column names a section, rows are grouped under one heading per distinct
// value in first-seen order; otherwise rows are batched.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{
		Title: strings.TrimSuffix(filename, ".csv"),
	}
	if len(records) == 0 {
		return tree, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	if col := sectionColumn(headers); col >= 0 {
		groups := map[string]*doctree.DocNode{}
		for i, row := range dataRows {
			name := "Unassigned"
			if col < len(row) && strings.TrimSpace(row[col]) != "" {
				name = strings.TrimSpace(row[col])
			}
			node, ok := groups[name]
			if !ok {
				node = &doctree.DocNode{Title: name, Page: i + 2}
				groups[name] = node
				tree.Children = append(tree.Children, node)
			}
			line := formatRow(headers, row, col)
			if node.Text != "" {
				node.Text += "\n"
			}
			node.Text += line
		}
		return tree, nil
	}

	// Group rows into batches of 20 for manageable sections.
	const batchSize = 20
	for i := 0; i < len(dataRows); i += batchSize {
		end := min(i+batchSize, len(dataRows))

		var text strings.Builder
		text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n\n")
		for _, row := range dataRows[i:end] {
			text.WriteString(formatRow(headers, row, -1))
			text.WriteString("\n")
		}

		tree.Children = append(tree.Children, &doctree.DocNode{
			Title: fmt.Sprintf("Rows %d-%d", i+2, end+1), // 1-indexed, skip header
			Text:  strings.TrimSpace(text.String()),
		})
	}

	return tree, nil
}

func sectionColumn(headers []string) int {
	for _, want := range sectionColumns {
		for i, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i
			}
		}
	}
	return -1
}

// formatRow renders "header: cell" pairs, leaving out column skip.
func formatRow(headers, row []string, skip int) string {
	var parts []string
	for j, cell := range row {
		if j == skip || strings.TrimSpace(cell) == "" {
			continue
		}
		if j < len(headers) && headers[j] != "" {
			parts = append(parts, headers[j]+": "+cell)
		} else {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, ", ")
}
