package suggest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLLM struct {
	replies []string
	errs    []error
	prompts []string
}

func (f *scriptedLLM) Complete(_ context.Context, _, prompt string) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var reply string
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return reply, err
}

func testSuggester(llm Completer) *Suggester {
	s := NewSuggester(llm, NewLLMStats(time.Hour), slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.backoff = func(int) time.Duration { return 0 }
	return s
}

const reply = "```json\n" + `[
  {"title": "Risk Management", "status": "suggested_add", "reason": "RFP 4.2 requires it",
   "subsections": [{"title": "Risk Register"}]},
  {"title": "Terms and Conditions", "status": "suggested_remove", "reason": "Customer supplies terms"},
  {"title": "Budget", "status": "keep"},
  {"title": "ok", "status": "suggested_add"},
  {"title": "Bogus", "status": "approved"}
]` + "\n```"

func TestSuggest_ParsesAndValidates(t *testing.T) {
	llm := &scriptedLLM{replies: []string{reply}}
	s := testSuggester(llm)

	got, err := s.Suggest(context.Background(), Request{
		Title:   "Network refresh",
		Outline: []string{"Budget", "Terms and Conditions"},
		RFP:     "The vendor shall provide a risk register.",
	})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Risk Management", got[0].Title)
	assert.Equal(t, toc.StatusSuggestedAdd, got[0].Status)
	assert.Equal(t, toc.SourceExtraction, got[0].Source)
	require.Len(t, got[0].Subsections, 1)
	assert.Equal(t, "Risk Register", got[0].Subsections[0].Title)
	assert.Equal(t, toc.StatusSuggestedRemove, got[1].Status)
	assert.Equal(t, toc.StatusKeep, got[2].Status)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], `Proposal: "Network refresh"`)
	assert.Contains(t, llm.prompts[0], "2. Terms and Conditions")
	assert.Contains(t, llm.prompts[0], "risk register")

	assert.Equal(t, 1, s.Stats().Snapshot().Count)
}

func TestSuggest_RetriesTransientErrors(t *testing.T) {
	llm := &scriptedLLM{
		replies: []string{"", "", "[]"},
		errs: []error{
			&RetryableError{StatusCode: 529, Message: "overloaded"},
			&RetryableError{StatusCode: 500, Message: "oops"},
		},
	}
	s := testSuggester(llm)

	got, err := s.Suggest(context.Background(), Request{RFP: "text"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, llm.prompts, 3)

	snap := s.Stats().Snapshot()
	assert.Equal(t, 2, snap.Retries)
	assert.Equal(t, 0, snap.Errors)
}

func TestSuggest_GivesUpAfterMaxRetries(t *testing.T) {
	transient := &RetryableError{StatusCode: 429, Message: "slow down"}
	llm := &scriptedLLM{errs: []error{transient, transient, transient, transient}}
	s := testSuggester(llm)

	_, err := s.Suggest(context.Background(), Request{RFP: "text"})
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.Len(t, llm.prompts, MaxRetries)
	assert.Equal(t, 1, s.Stats().Snapshot().Errors)
}

func TestSuggest_PermanentErrorNotRetried(t *testing.T) {
	llm := &scriptedLLM{errs: []error{errors.New("bad request")}}
	s := testSuggester(llm)

	_, err := s.Suggest(context.Background(), Request{RFP: "text"})
	require.Error(t, err)
	assert.False(t, IsRetryable(err))
	assert.Len(t, llm.prompts, 1)
}

func TestSuggest_EmptyRFP(t *testing.T) {
	llm := &scriptedLLM{}
	_, err := testSuggester(llm).Suggest(context.Background(), Request{RFP: "  "})
	require.Error(t, err)
	assert.Empty(t, llm.prompts)
}

func TestSuggest_EmptyReply(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"```json\n```"}}
	_, err := testSuggester(llm).Suggest(context.Background(), Request{RFP: "text"})
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestParseSuggestions_BadJSON(t *testing.T) {
	_, err := ParseSuggestions("not json")
	assert.Error(t, err)

	_, err = ParseSuggestions("   ")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestStripCodeBlock(t *testing.T) {
	assert.Equal(t, "[]", stripCodeBlock("```json\n[]\n```"))
	assert.Equal(t, "[1]", stripCodeBlock("  ```\n[1]\n```  "))
	assert.Equal(t, "[2]", stripCodeBlock("[2]"))
	assert.Equal(t, "", stripCodeBlock("```json```"))
}

func TestMerge(t *testing.T) {
	base := []toc.Suggestion{
		{ID: "summary", Title: "Executive Summary", Source: toc.SourceTemplate},
		{ID: "terms", Title: "Terms and Conditions", Source: toc.SourceTemplate},
	}
	suggestions := []toc.Suggestion{
		{Title: "terms  and conditions", Status: toc.StatusSuggestedRemove, Reason: "Customer supplies terms"},
		{Title: "Risk Management", Status: toc.StatusSuggestedAdd, Reason: "RFP 4.2"},
		{Title: "executive summary", Status: toc.StatusSuggestedAdd},
		{Title: "Budget", Status: toc.StatusSuggestedRemove},
		{Title: "Executive Summary", Status: toc.StatusKeep},
	}

	out := Merge(base, suggestions)
	require.Len(t, out, 3)
	assert.Equal(t, toc.Status(""), out[0].Status)
	assert.Equal(t, toc.StatusSuggestedRemove, out[1].Status)
	assert.Equal(t, "Customer supplies terms", out[1].Reason)
	assert.Equal(t, "Risk Management", out[2].Title)
	assert.Equal(t, toc.Status(""), base[1].Status, "base must not change")

	tree := toc.Normalize(out)
	assert.Equal(t, []string{"summary", "terms"}, tree.IDs()[:2])
	assert.Equal(t, toc.StatusSuggestedAdd, tree[2].Status)
}
