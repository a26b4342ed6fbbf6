package parser

import "testing"

func TestPDFTree_Headings(t *testing.T) {
	text := "1. Introduction\nThe county seeks\nproposals.\n\fPRICING\nFixed fee only.\n2. Terms\nNet 30."
	tree := pdfTree("rfp", text)

	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(tree.Children))
	}
	intro := tree.Children[0]
	if intro.Text != "The county seeks proposals." {
		t.Errorf("expected joined lines, got %q", intro.Text)
	}
	if intro.Page != 1 {
		t.Errorf("expected page 1, got %d", intro.Page)
	}
	if len(intro.Children) != 1 || intro.Children[0].Title != "PRICING" || intro.Children[0].Page != 2 {
		t.Fatalf("expected PRICING on page 2 under intro, got %+v", intro.Children)
	}
	if tree.Children[1].Title != "2. Terms" || tree.Children[1].Text != "Net 30." {
		t.Errorf("unexpected terms section %+v", tree.Children[1])
	}
}

func TestPDFTree_FallsBackToPages(t *testing.T) {
	tree := pdfTree("scan", "first page body text here\f\fthird page body")
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 page nodes, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "Page 1" || tree.Children[1].Title != "Page 3" {
		t.Errorf("unexpected page titles %q, %q", tree.Children[0].Title, tree.Children[1].Title)
	}
	if tree.Children[1].Page != 3 {
		t.Errorf("expected page 3, got %d", tree.Children[1].Page)
	}
}
