package parser

import (
	"strings"
	"testing"
)

func TestTextParser_ParagraphFallback(t *testing.T) {
	input := "The vendor shall host the service.\nUptime must exceed 99.9%.\n\nOffers are due in June.\n\nLate offers are rejected."
	tree, err := (&TextParser{}).Parse(strings.NewReader(input), "terms.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "terms" {
		t.Errorf("expected title %q, got %q", "terms", tree.Title)
	}

	want := []string{
		"The vendor shall host the service.\nUptime must exceed 99.9%.",
		"Offers are due in June.",
		"Late offers are rejected.",
	}
	if len(tree.Children) != len(want) {
		t.Fatalf("expected %d untitled paragraphs, got %d", len(want), len(tree.Children))
	}
	for i, w := range want {
		if tree.Children[i].Title != "" || tree.Children[i].Text != w {
			t.Errorf("child[%d]: expected text %q, got %+v", i, w, tree.Children[i])
		}
	}
}

func TestTextParser_ParagraphBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"single line", "Bids close Friday", 1},
		{"repeated blank lines", "Para one.\n\n\n\nPara two.", 2},
		{"whitespace-only line", "Para one.\n   \nPara two.", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := (&TextParser{}).Parse(strings.NewReader(tt.input), "x.txt")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tree.Children) != tt.want {
				t.Errorf("expected %d children, got %d", tt.want, len(tree.Children))
			}
		})
	}
}

func TestTextParser_DetectsHeadings(t *testing.T) {
	input := "Request for Proposal\nCity of Springfield\n\n1. Introduction\nThe city seeks bids.\n\n1.1 Background\nThe network is old.\n\n2 Scope of Work\nReplace switches.\n\nEVALUATION CRITERIA\n\nPrice is weighted."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "rfp.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Preamble, "1. Introduction", "2 Scope of Work".
	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 top-level children, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "" || !strings.Contains(tree.Children[0].Text, "City of Springfield") {
		t.Errorf("expected untitled preamble, got %+v", tree.Children[0])
	}

	intro := tree.Children[1]
	if intro.Title != "1. Introduction" || intro.Text != "The city seeks bids." {
		t.Errorf("unexpected intro node: %+v", intro)
	}
	if len(intro.Children) != 1 || intro.Children[0].Title != "1.1 Background" {
		t.Fatalf("expected 1.1 Background under intro, got %+v", intro.Children)
	}

	scope := tree.Children[2]
	if scope.Title != "2 Scope of Work" {
		t.Errorf("expected scope heading, got %q", scope.Title)
	}
	if len(scope.Children) != 1 || scope.Children[0].Title != "EVALUATION CRITERIA" {
		t.Fatalf("expected caps heading nested under scope, got %+v", scope.Children)
	}
	if scope.Children[0].Text != "Price is weighted." {
		t.Errorf("unexpected caps section text: %q", scope.Children[0].Text)
	}
}
