package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_TitlesOnly(t *testing.T) {
	tree := Normalize([]Suggestion{
		{Title: "Scope"},
		{Title: "Budget"},
		{Title: "Timeline"},
	})

	require.Len(t, tree, 3)
	for i, want := range []string{"Scope", "Budget", "Timeline"} {
		assert.Equal(t, want, tree[i].Title)
		assert.Equal(t, 1, tree[i].Level)
		assert.Equal(t, StatusKeep, tree[i].Status)
		assert.NotEmpty(t, tree[i].ID)
	}
	require.NoError(t, Validate(tree))
}

func TestNormalize_MissingTitleUsesPosition(t *testing.T) {
	tree := Normalize([]Suggestion{
		{Title: "Intro"},
		{},
		{Subsections: []Suggestion{{Title: "A"}, {}}},
	})

	assert.Equal(t, "Section 2", tree[1].Title)
	assert.Equal(t, "Section 3", tree[2].Title)
	assert.Equal(t, "Section 2", tree[2].Subsections[1].Title)
}

func TestNormalize_LevelFollowsPlacement(t *testing.T) {
	tree := Normalize([]Suggestion{
		{Title: "Top", Level: 3, Subsections: []Suggestion{
			{Title: "Child", Level: 1},
		}},
	})

	assert.Equal(t, 1, tree[0].Level)
	assert.Equal(t, 2, tree[0].Subsections[0].Level)
}

func TestNormalize_DeepRecordsFlattenIntoLevelTwo(t *testing.T) {
	tree := Normalize([]Suggestion{
		{Title: "Approach", Subsections: []Suggestion{
			{Title: "Phase 1", Subsections: []Suggestion{
				{Title: "Discovery", Content: "workshops"},
				{Title: "Design"},
			}},
			{Title: "Phase 2"},
		}},
	})

	subs := tree[0].Subsections
	require.Len(t, subs, 4)
	assert.Equal(t, []string{"Phase 1", "Discovery", "Design", "Phase 2"},
		[]string{subs[0].Title, subs[1].Title, subs[2].Title, subs[3].Title})
	assert.Equal(t, "workshops", subs[1].Content)
	for _, s := range subs {
		assert.Equal(t, 2, s.Level)
		assert.Empty(t, s.Subsections)
	}
	require.NoError(t, Validate(tree))
}

func TestNormalize_IDsAreUniqueAndDeterministic(t *testing.T) {
	input := []Suggestion{
		{ID: "sec-2", Title: "Given"},
		{Title: "Blank"},
		{ID: "dup", Title: "First"},
		{ID: "dup", Title: "Second", Subsections: []Suggestion{{}, {ID: "sec-2"}}},
	}

	a := Normalize(input)
	b := Normalize(input)

	assert.Equal(t, a, b)
	require.NoError(t, Validate(a))
	assert.Equal(t, "sec-2", a[0].ID)
	assert.Equal(t, "sec-1", a[1].ID)
	assert.Equal(t, "dup", a[2].ID)
	assert.NotEqual(t, "dup", a[3].ID)
}

func TestNormalize_StatusAndOriginDefaults(t *testing.T) {
	tree := Normalize([]Suggestion{
		{Title: "Unknown status", Status: "pending"},
		{Title: "Suggested", Status: StatusSuggestedAdd, Reason: "  RFP asks for it "},
		{Title: "Mine", Source: SourceUser},
		{Title: "Template", Source: SourceTemplate},
	})

	assert.Equal(t, StatusKeep, tree[0].Status)
	assert.Equal(t, StatusSuggestedAdd, tree[1].Status)
	assert.Equal(t, "RFP asks for it", tree[1].Reason)
	assert.Equal(t, OriginCustom, tree[2].Origin)
	assert.Equal(t, OriginOriginal, tree[3].Origin)
}

func TestNormalize_CarriesWordCount(t *testing.T) {
	tree := Normalize([]Suggestion{
		{Title: "Approach", WordCount: 420, Subsections: []Suggestion{
			{Title: "Staffing", WordCount: 150},
		}},
		{Title: "Pricing", WordCount: -5},
	})
	require.Len(t, tree, 2)
	assert.Equal(t, 420, tree[0].WordCount)
	assert.Equal(t, 150, tree[0].Subsections[0].WordCount)
	assert.Equal(t, 0, tree[1].WordCount)
}

func TestNormalize_Empty(t *testing.T) {
	tree := Normalize(nil)
	assert.Empty(t, tree)
	assert.NoError(t, Validate(tree))
}
