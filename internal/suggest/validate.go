package suggest

import (
	"regexp"
	"strings"

	"github.com/dgallion1/proposaltoc/internal/toc"
)

const (
	maxTitleLen  = 200
	maxReasonLen = 500
)

var injectionPattern = regexp.MustCompile(
	`(?i)(ignore\s+(previous|all|above)|system\s*prompt|you\s+are\s+now|` +
		`act\s+as\s+|pretend\s+|forget\s+(everything|all)|override|` +
		`new\s+instructions)`,
)

// ValidateSuggestion checks a model-produced record and tidies it in place.
// Returns true if it is usable.
func ValidateSuggestion(s *toc.Suggestion) bool {
	if s == nil {
		return false
	}
	s.Title = strings.TrimSpace(s.Title)
	if len(s.Title) < 3 || len(s.Title) > maxTitleLen {
		return false
	}
	if injectionPattern.MatchString(s.Title) || injectionPattern.MatchString(s.Reason) {
		return false
	}
	switch s.Status {
	case toc.StatusSuggestedAdd, toc.StatusSuggestedRemove, toc.StatusKeep:
	case "":
		s.Status = toc.StatusSuggestedAdd
	default:
		return false
	}
	if len(s.Reason) > maxReasonLen {
		s.Reason = truncate(s.Reason, maxReasonLen)
	}
	// The model never assigns ids; they come from the outline it is merged into.
	s.ID = ""

	subs := s.Subsections[:0]
	for i := range s.Subsections {
		sub := s.Subsections[i]
		sub.Subsections = nil
		sub.Status = s.Status
		if s.Status == toc.StatusSuggestedAdd && ValidateSuggestion(&sub) {
			subs = append(subs, sub)
		}
	}
	s.Subsections = subs
	return true
}
