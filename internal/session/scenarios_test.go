package session

import (
	"testing"

	"github.com/dgallion1/proposaltoc/internal/drag"
	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end curation flows driven through a session.

func idOf(t *testing.T, tree toc.Tree, title string) string {
	t.Helper()
	var id string
	tree.Walk(func(n toc.Node) {
		if n.Title == title {
			id = n.ID
		}
	})
	require.NotEmpty(t, id, "no section titled %q", title)
	return id
}

func TestScenario_NormalizeBareRecords(t *testing.T) {
	s := newTestSession(t, threeSections())
	tree := s.Tree()

	require.Len(t, tree, 3)
	assert.Equal(t, []string{"Scope", "Budget", "Timeline"}, titles(tree))
	for _, n := range tree {
		assert.Equal(t, toc.StatusKeep, n.Status)
		assert.Equal(t, 1, n.Level)
		assert.NotEmpty(t, n.ID)
	}
}

func TestScenario_DragOntoBodyNests(t *testing.T) {
	s := newTestSession(t, threeSections())
	tree := s.Tree()
	budget, scope := idOf(t, tree, "Budget"), idOf(t, tree, "Scope")

	in := s.Drag()
	require.True(t, in.Start(budget))
	res := in.Drop(scope, drag.ZoneBody)
	require.True(t, res.Applied)
	assert.Equal(t, drag.OpNest, res.Op)

	tree = s.Tree()
	assert.Equal(t, []string{"Scope", "Timeline"}, titles(tree))
	require.Len(t, tree[0].Subsections, 1)
	assert.Equal(t, "Budget", tree[0].Subsections[0].Title)
	assert.Equal(t, 2, tree[0].Subsections[0].Level)
}

func TestScenario_AcceptedSuggestionCannotBeRejected(t *testing.T) {
	s := newTestSession(t, []toc.Suggestion{
		{Title: "Scope"},
		{Title: "Risk Management", Status: toc.StatusSuggestedAdd, Source: toc.SourceExtraction},
	})
	risk := idOf(t, s.Tree(), "Risk Management")

	require.True(t, s.SetStatus(risk, toc.StatusKeep))
	n, ok := s.Tree().Node(risk)
	require.True(t, ok)
	assert.Equal(t, toc.StatusKeep, n.Status)

	assert.False(t, s.Reject(risk))
	assert.False(t, s.SetStatus(risk, toc.StatusSuggestedAdd))
	_, ok = s.Tree().Find(risk)
	assert.True(t, ok)
}

func TestScenario_RejectRemovesEntirely(t *testing.T) {
	s := newTestSession(t, []toc.Suggestion{
		{Title: "Scope"},
		{Title: "Risk Management", Status: toc.StatusSuggestedAdd},
	})
	risk := idOf(t, s.Tree(), "Risk Management")

	require.True(t, s.RemoveSection(risk))
	tree := s.Tree()
	_, found := tree.Find(risk)
	assert.False(t, found)
	assert.Equal(t, 1, tree.Count())
}

func TestScenario_UndoRestoresOneStep(t *testing.T) {
	s := newTestSession(t, threeSections())

	mutations := []func() bool{
		func() bool { _, ok := s.AddSection("Appendix"); return ok },
		func() bool { return s.RenameSection("sec-1", "Project Scope") },
		func() bool { return s.ReorderTopLevel(3, 0) },
		func() bool { return s.NestUnderParent("sec-3", "sec-2") },
	}
	for _, m := range mutations {
		require.True(t, m())
	}
	t4 := s.Tree()

	require.True(t, s.RemoveSection("sec-1"))
	require.NotEqual(t, t4, s.Tree())

	require.True(t, s.Undo())
	assert.Equal(t, t4, s.Tree())
}

func TestScenario_PromoteAppendsToTopLevel(t *testing.T) {
	s := newTestSession(t, []toc.Suggestion{
		{ID: "scope", Title: "Scope", Subsections: []toc.Suggestion{
			{ID: "goals", Title: "Goals"},
			{ID: "limits", Title: "Limits"},
		}},
		{ID: "budget", Title: "Budget"},
	})

	require.True(t, s.PromoteToTopLevel("scope", 0))
	tree := s.Tree()
	last := tree[len(tree)-1]
	assert.Equal(t, "goals", last.ID)
	assert.Equal(t, 1, last.Level)
	require.Len(t, tree[0].Subsections, 1)
	assert.Equal(t, "limits", tree[0].Subsections[0].ID)
}
