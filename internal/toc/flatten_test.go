package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten_DepthFirstSettledOnly(t *testing.T) {
	tree := Normalize([]Suggestion{
		{ID: "a", Title: "A", Subsections: []Suggestion{
			{ID: "a1", Title: "A1"},
			{ID: "a2", Title: "A2", Status: StatusSuggestedAdd},
			{ID: "a3", Title: "A3", Status: StatusModified},
		}},
		{ID: "b", Title: "B", Status: StatusSuggestedRemove, Subsections: []Suggestion{
			{ID: "b1", Title: "B1"},
		}},
		{ID: "c", Title: "C"},
	})

	out := Flatten(tree)

	ids := make([]string, len(out))
	for i, s := range out {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"a", "a1", "a3", "b1", "c"}, ids)
	assert.Equal(t, 2, out[1].Level)
	assert.Equal(t, []string{"a2", "b"}, Untriaged(tree))

	settled := 0
	tree.Walk(func(n Node) {
		if n.Status.Settled() {
			settled++
		}
	})
	assert.Len(t, out, settled)
}

func TestFlatten_KeepsWordCount(t *testing.T) {
	tree := Normalize([]Suggestion{
		{ID: "a", Title: "A", WordCount: 300, Subsections: []Suggestion{
			{ID: "a1", Title: "A1", WordCount: 80},
		}},
	})
	out := Flatten(tree)
	assert.Equal(t, []int{300, 80}, []int{out[0].WordCount, out[1].WordCount})
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
	assert.Empty(t, Untriaged(nil))
}

func TestTreeClone_Independent(t *testing.T) {
	tree := sampleTree()
	c := tree.Clone()
	c[0].Subsections[0].Title = "changed"
	c[0].Subsections = append(c[0].Subsections, Node{ID: "x", Level: 2})

	assert.Equal(t, "Goals", tree[0].Subsections[0].Title)
	assert.Len(t, tree[0].Subsections, 2)
}
