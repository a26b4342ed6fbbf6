package toc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source tags where a suggestion record came from.
type Source string

const (
	SourceTemplate   Source = "template"   // Catalog template or learned document outline.
	SourceExtraction Source = "extraction" // AI extraction service.
	SourceUser       Source = "user"       // Supplied directly by the user.
)

// Suggestion is a loosely-specified section record. Zero values mean the
// field was absent; Normalize fills them in.
type Suggestion struct {
	Source      Source       `json:"source,omitempty" yaml:"source,omitempty"`
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Level       int          `json:"level,omitempty" yaml:"level,omitempty"`
	Content     string       `json:"content,omitempty" yaml:"content,omitempty"`
	Origin      Origin       `json:"origin,omitempty" yaml:"origin,omitempty"`
	Status      Status       `json:"status,omitempty" yaml:"status,omitempty"`
	Reason      string       `json:"reason,omitempty" yaml:"reason,omitempty"`
	WordCount   int          `json:"word_count,omitempty" yaml:"word_count,omitempty"`
	Subsections []Suggestion `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// SuggestionFromAny maps one arbitrarily-shaped record onto a Suggestion.
// Strings become title-only records; maps are searched for the known keys;
// anything else yields an empty record that Normalize will fill in.
func SuggestionFromAny(v any, src Source) Suggestion {
	switch r := v.(type) {
	case Suggestion:
		if r.Source == "" {
			r.Source = src
		}
		return r
	case string:
		return Suggestion{Source: src, Title: strings.TrimSpace(r)}
	case map[string]any:
		return SuggestionFromMap(r, src)
	case map[any]any:
		m := make(map[string]any, len(r))
		for k, val := range r {
			m[fmt.Sprint(k)] = val
		}
		return SuggestionFromMap(m, src)
	}
	return Suggestion{Source: src}
}

// SuggestionFromMap pulls section fields out of a decoded record. This is the
// only place loose field names are interpreted.
func SuggestionFromMap(m map[string]any, src Source) Suggestion {
	s := Suggestion{
		Source:    src,
		ID:        firstString(m, "id", "section_id"),
		Title:     firstString(m, "title", "name", "heading"),
		Level:     firstInt(m, "level"),
		Content:   firstString(m, "content", "text", "description"),
		Reason:    firstString(m, "reason", "rationale", "justification"),
		Origin:    Origin(strings.ToLower(firstString(m, "origin"))),
		Status:    Status(strings.ToLower(firstString(m, "status"))),
		WordCount: firstInt(m, "word_count", "words"),
	}
	if v, ok := m["source"].(string); ok && v != "" {
		s.Source = Source(v)
	}
	for _, key := range []string{"subsections", "children"} {
		list, ok := m[key].([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			s.Subsections = append(s.Subsections, SuggestionFromAny(item, s.Source))
		}
		break
	}
	return s
}

// SuggestionsFromAny maps a slice of loose records.
func SuggestionsFromAny(records []any, src Source) []Suggestion {
	out := make([]Suggestion, 0, len(records))
	for _, r := range records {
		out = append(out, SuggestionFromAny(r, src))
	}
	return out
}

// DecodeRecords parses a JSON or YAML document holding either a list of
// records or an object with a "sections" list.
func DecodeRecords(data []byte, src Source) ([]Suggestion, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	switch d := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return SuggestionsFromAny(d, src), nil
	case map[string]any:
		for _, key := range []string{"sections", "toc", "detailed_sections"} {
			if list, ok := d[key].([]any); ok {
				return SuggestionsFromAny(list, src), nil
			}
		}
		return nil, fmt.Errorf("decode records: object has no sections list")
	}
	return nil, fmt.Errorf("decode records: unexpected document type %T", doc)
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case int:
			return strconv.Itoa(v)
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func firstInt(m map[string]any, keys ...string) int {
	for _, k := range keys {
		switch v := m[k].(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return int(v)
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}
