package drag

import (
	"testing"

	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMutator struct {
	tree  toc.Tree
	calls []string
}

func (f *fakeMutator) Tree() toc.Tree { return f.tree }

func (f *fakeMutator) ReorderTopLevel(from, to int) bool {
	var ok bool
	f.tree, ok = toc.ReorderTopLevel(f.tree, from, to)
	f.calls = append(f.calls, "reorder")
	return ok
}

func (f *fakeMutator) NestUnderParent(childID, parentID string) bool {
	var ok bool
	f.tree, ok = toc.NestUnderParent(f.tree, childID, parentID)
	f.calls = append(f.calls, "nest")
	return ok
}

func newFake() *fakeMutator {
	return &fakeMutator{tree: toc.Normalize([]toc.Suggestion{
		{ID: "scope", Title: "Scope", Subsections: []toc.Suggestion{{ID: "goals", Title: "Goals"}}},
		{ID: "budget", Title: "Budget"},
		{ID: "timeline", Title: "Timeline"},
		{ID: "team", Title: "Team"},
	})}
}

func top(tree toc.Tree) []string {
	out := make([]string, len(tree))
	for i, n := range tree {
		out[i] = n.ID
	}
	return out
}

func TestDrop_BodyNests(t *testing.T) {
	m := newFake()
	in := NewInterpreter(m)

	require.True(t, in.Start("budget"))
	res := in.Drop("scope", ZoneBody)

	assert.True(t, res.Applied)
	assert.Equal(t, OpNest, res.Op)
	assert.Equal(t, []string{"scope", "timeline", "team"}, top(m.tree))
	assert.Equal(t, "budget", m.tree[0].Subsections[1].ID)
	assert.Equal(t, 2, m.tree[0].Subsections[1].Level)

	_, dragging := in.Dragging()
	assert.False(t, dragging)
}

func TestDrop_BodyReparentsSubsection(t *testing.T) {
	m := newFake()
	in := NewInterpreter(m)

	in.Start("goals")
	res := in.Drop("team", ZoneBody)

	assert.True(t, res.Applied)
	assert.Empty(t, m.tree[0].Subsections)
	assert.Equal(t, "goals", m.tree[3].Subsections[0].ID)
}

func TestDrop_GapReorders(t *testing.T) {
	tests := []struct {
		name    string
		dragged string
		target  string
		want    []string
	}{
		{"before earlier", "timeline", "scope", []string{"timeline", "scope", "budget", "team"}},
		{"before later", "scope", "timeline", []string{"budget", "scope", "timeline", "team"}},
		{"end sentinel", "budget", End, []string{"scope", "timeline", "team", "budget"}},
		{"no target means end", "scope", "", []string{"budget", "timeline", "team", "scope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFake()
			in := NewInterpreter(m)
			in.Start(tt.dragged)
			res := in.Drop(tt.target, ZoneGap)
			assert.True(t, res.Applied)
			assert.Equal(t, OpReorder, res.Op)
			assert.Equal(t, tt.want, top(m.tree))
		})
	}
}

func TestDrop_NoMutation(t *testing.T) {
	tests := []struct {
		name    string
		dragged string
		target  string
		zone    Zone
	}{
		{"subsection into gap", "goals", "budget", ZoneGap},
		{"gap right after itself", "budget", "timeline", ZoneGap},
		{"gap before itself", "budget", "budget", ZoneGap},
		{"last to end", "team", End, ZoneGap},
		{"gap target is subsection", "budget", "goals", ZoneGap},
		{"unknown gap target", "budget", "nope", ZoneGap},
		{"body onto itself", "budget", "budget", ZoneBody},
		{"body onto subsection", "budget", "goals", ZoneBody},
		{"body without target", "budget", "", ZoneBody},
		{"body onto end", "budget", End, ZoneBody},
		{"parent with subsections", "scope", "budget", ZoneBody},
		{"unknown zone", "budget", "scope", Zone("margin")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFake()
			before := m.tree.Clone()
			in := NewInterpreter(m)
			require.True(t, in.Start(tt.dragged))
			res := in.Drop(tt.target, tt.zone)
			assert.False(t, res.Applied)
			assert.Equal(t, OpNone, res.Op)
			assert.NotEmpty(t, res.Reason)
			assert.Empty(t, m.calls)
			assert.Equal(t, before, m.tree)
		})
	}
}

func TestCancel(t *testing.T) {
	m := newFake()
	in := NewInterpreter(m)
	in.Start("budget")
	in.Cancel()

	res := in.Drop("scope", ZoneBody)
	assert.False(t, res.Applied)
	assert.Empty(t, m.calls)
}

func TestStart_UnknownID(t *testing.T) {
	in := NewInterpreter(newFake())
	assert.False(t, in.Start("ghost"))
	_, dragging := in.Dragging()
	assert.False(t, dragging)
}

func TestHover_ReportsWithoutMutating(t *testing.T) {
	m := newFake()
	in := NewInterpreter(m)

	assert.False(t, in.Hover("scope", ZoneBody).Valid())

	in.Start("team")
	p := in.Hover("scope", ZoneBody)
	assert.True(t, p.Valid())
	assert.Equal(t, OpNest, p.Op)

	p = in.Hover("scope", ZoneGap)
	assert.Equal(t, OpReorder, p.Op)
	assert.Equal(t, 3, p.From)
	assert.Equal(t, 0, p.To)

	assert.Empty(t, m.calls)
	id, dragging := in.Dragging()
	assert.True(t, dragging)
	assert.Equal(t, "team", id)
}
