package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestCSVParser_GroupsBySectionColumn(t *testing.T) {
	input := "ID,Section,Requirement\nR1,Security,Encrypt data at rest\nR2,Hosting,US data centres only\nR3,Security,SSO via SAML\nR4,,Weekly status calls\n"
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(input), "matrix.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "matrix" {
		t.Errorf("expected title %q, got %q", "matrix", tree.Title)
	}

	var titles []string
	for _, c := range tree.Children {
		titles = append(titles, c.Title)
	}
	if strings.Join(titles, "|") != "Security|Hosting|Unassigned" {
		t.Fatalf("unexpected groups: %v", titles)
	}
	want := "ID: R1, Requirement: Encrypt data at rest\nID: R3, Requirement: SSO via SAML"
	if tree.Children[0].Text != want {
		t.Errorf("expected %q, got %q", want, tree.Children[0].Text)
	}
}

func TestCSVParser_BatchesWithoutSectionColumn(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("name,value\n")
	for i := 0; i < 25; i++ {
		sb.WriteString(fmt.Sprintf("n%d,%d\n", i, i))
	}
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(sb.String()), "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "Rows 2-21" || tree.Children[1].Title != "Rows 22-26" {
		t.Errorf("unexpected batch titles %q, %q", tree.Children[0].Title, tree.Children[1].Title)
	}
	if !strings.HasPrefix(tree.Children[0].Text, "Headers: name, value\n\nname: n0, value: 0") {
		t.Errorf("unexpected batch text %q", tree.Children[0].Text)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	tree, err := (&CSVParser{}).Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected no children, got %d", len(tree.Children))
	}
}
