package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/dgallion1/proposaltoc/internal/toc"
)

// ErrEmptyReply is returned when the model answers with no usable text.
var ErrEmptyReply = errors.New("empty reply from model")

// Completer sends one prompt to a language model.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Request is one outline review.
type Request struct {
	Title   string   // Proposal title.
	Outline []string // Current top-level section titles, in order.
	RFP     string   // RFP text, already trimmed to a prompt budget.
}

// Suggester asks a model to review an outline against an RFP.
type Suggester struct {
	llm   Completer
	stats *LLMStats
	log   *slog.Logger

	backoff func(attempt int) time.Duration
}

func NewSuggester(llm Completer, stats *LLMStats, log *slog.Logger) *Suggester {
	if stats == nil {
		stats = NewLLMStats(time.Hour)
	}
	return &Suggester{llm: llm, stats: stats, log: log, backoff: Backoff}
}

// Stats returns the latency tracker.
func (s *Suggester) Stats() *LLMStats { return s.stats }

// Suggest returns validated suggestion records. Transient model failures are
// retried with backoff.
func (s *Suggester) Suggest(ctx context.Context, req Request) ([]toc.Suggestion, error) {
	if strings.TrimSpace(req.RFP) == "" {
		return nil, fmt.Errorf("rfp text is empty")
	}
	prompt := BuildPrompt(req.Title, req.Outline, req.RFP)

	start := time.Now()
	var (
		raw     string
		lastErr error
		retries int
	)
	for attempt := range MaxRetries {
		raw, lastErr = s.llm.Complete(ctx, SystemPrompt, prompt)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		if attempt == MaxRetries-1 {
			break
		}
		retries++
		s.log.Warn("retryable suggestion error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(s.backoff(attempt)):
		case <-ctx.Done():
			s.stats.Record(time.Since(start), retries, ctx.Err())
			return nil, ctx.Err()
		}
	}
	s.stats.Record(time.Since(start), retries, lastErr)
	if lastErr != nil {
		return nil, fmt.Errorf("suggest sections: %w", lastErr)
	}

	records, err := ParseSuggestions(raw)
	if err != nil {
		return nil, err
	}
	s.log.Info("suggestions received", "count", len(records), "retries", retries, "duration_ms", time.Since(start).Milliseconds())
	return records, nil
}

// ParseSuggestions decodes a model reply into validated records. A reply
// wrapped in a markdown code fence is unwrapped first. Invalid entries are
// dropped.
func ParseSuggestions(raw string) ([]toc.Suggestion, error) {
	text := stripCodeBlock(raw)
	if text == "" {
		return nil, ErrEmptyReply
	}
	var items []any
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("parse suggestions json: %w (raw: %s)", err, truncate(text, 200))
	}
	var out []toc.Suggestion
	for _, rec := range toc.SuggestionsFromAny(items, toc.SourceExtraction) {
		if ValidateSuggestion(&rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Merge folds model suggestions into a base outline. A suggested_remove that
// names a base section marks it for removal; a suggested_add whose title is
// not already present is appended. Keep entries confirm the base and are
// otherwise ignored, as are removals of unknown sections.
func Merge(base, suggestions []toc.Suggestion) []toc.Suggestion {
	out := make([]toc.Suggestion, len(base))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, b := range out {
		index[titleKey(b.Title)] = i
	}
	for _, s := range suggestions {
		key := titleKey(s.Title)
		i, exists := index[key]
		switch s.Status {
		case toc.StatusSuggestedRemove:
			if exists {
				out[i].Status = toc.StatusSuggestedRemove
				out[i].Reason = s.Reason
			}
		case toc.StatusSuggestedAdd:
			if !exists {
				index[key] = len(out)
				out = append(out, s)
			}
		}
	}
	return out
}

var codeBlockRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func titleKey(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}
