package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var builtinYAML []byte

// CategoryCustom marks templates learned from uploaded documents.
const CategoryCustom = "Custom"

// Section is one heading of a template outline.
type Section struct {
	Title       string    `json:"title" yaml:"title"`
	WordCount   int       `json:"word_count,omitempty" yaml:"word_count,omitempty"`
	Category    string    `json:"category,omitempty" yaml:"category,omitempty"`
	Subsections []Section `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// Template is a reusable proposal outline.
type Template struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Category    string    `json:"category" yaml:"category"`
	Description string    `json:"description" yaml:"description"`
	Sections    []Section `json:"sections" yaml:"sections"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"` // Filename a learned template came from.
	LearnedAt   time.Time `json:"learned_at,omitzero" yaml:"learned_at,omitempty"`
	Builtin     bool      `json:"builtin" yaml:"-"`
}

// Summary is a one-line description of the template's shape.
func (t Template) Summary() string {
	subs, words := 0, 0
	for _, s := range t.Sections {
		subs += len(s.Subsections)
		words += s.WordCount
		for _, sub := range s.Subsections {
			words += sub.WordCount
		}
	}
	if !t.Builtin {
		return fmt.Sprintf("Custom template with %d main sections, %d subsections, %d words total", len(t.Sections), subs, words)
	}
	return fmt.Sprintf("%s template with %d sections.", t.Name, len(t.Sections))
}

// Catalog holds the built-in templates plus any learned at runtime. Learned
// templates live in memory only.
type Catalog struct {
	mu        sync.RWMutex
	templates []Template
}

// New returns a catalog seeded with the built-in templates.
func New() (*Catalog, error) {
	var builtin []Template
	if err := yaml.Unmarshal(builtinYAML, &builtin); err != nil {
		return nil, fmt.Errorf("load builtin templates: %w", err)
	}
	for i := range builtin {
		builtin[i].Builtin = true
	}
	return &Catalog{templates: builtin}, nil
}

// List returns learned templates first, then the built-ins.
func (c *Catalog) List() []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		if !t.Builtin {
			out = append(out, t)
		}
	}
	for _, t := range c.templates {
		if t.Builtin {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the template with id.
func (c *Catalog) Get(id string) (Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.index(id)
	if i < 0 {
		return Template{}, false
	}
	return c.templates[i], true
}

// Learn stores an outline as a custom template and returns it.
func (c *Catalog) Learn(name, source string, sections []Section) (Template, error) {
	if len(sections) == 0 {
		return Template{}, fmt.Errorf("learn template: no headings found")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(source)
	}
	if name == "" {
		name = "Learned Template"
	}
	t := Template{
		ID:          "custom-" + uuid.NewString(),
		Name:        name,
		Category:    CategoryCustom,
		Description: "Learned from " + source,
		Sections:    sections,
		Source:      source,
		LearnedAt:   time.Now().UTC(),
	}
	c.mu.Lock()
	c.templates = append(c.templates, t)
	c.mu.Unlock()
	return t, nil
}

// Delete removes a learned template. Built-in templates cannot be deleted.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("template %q not found", id)
	}
	if c.templates[i].Builtin {
		return fmt.Errorf("template %q is built in", id)
	}
	c.templates = slices.Delete(c.templates, i, i+1)
	return nil
}

func (c *Catalog) index(id string) int {
	return slices.IndexFunc(c.templates, func(t Template) bool { return t.ID == id })
}

// Suggestions turns a template into records ready for normalization.
func (c *Catalog) Suggestions(id string) ([]toc.Suggestion, bool) {
	t, ok := c.Get(id)
	if !ok {
		return nil, false
	}
	return t.Suggestions(), true
}

// Suggestions turns the template outline into template-sourced records.
func (t Template) Suggestions() []toc.Suggestion {
	out := make([]toc.Suggestion, 0, len(t.Sections))
	for _, s := range t.Sections {
		out = append(out, s.suggestion())
	}
	return out
}

func (s Section) suggestion() toc.Suggestion {
	rec := toc.Suggestion{
		Source:    toc.SourceTemplate,
		Title:     s.Title,
		WordCount: s.WordCount,
		Status:    toc.StatusKeep,
		Origin:    toc.OriginOriginal,
	}
	for _, sub := range s.Subsections {
		rec.Subsections = append(rec.Subsections, sub.suggestion())
	}
	return rec
}

// Preview renders the template outline as markdown.
func (c *Catalog) Preview(id string) (string, bool) {
	t, ok := c.Get(id)
	if !ok {
		return "", false
	}
	return t.Markdown(), true
}

// Markdown renders the outline as a numbered markdown table of contents.
func (t Template) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", t.Name)
	if t.Description != "" {
		fmt.Fprintf(&sb, "_%s_\n\n", t.Description)
	}
	for i, s := range t.Sections {
		fmt.Fprintf(&sb, "%d. %s%s\n", i+1, s.Title, words(s.WordCount))
		for j, sub := range s.Subsections {
			fmt.Fprintf(&sb, "   %d.%d. %s%s\n", i+1, j+1, sub.Title, words(sub.WordCount))
		}
	}
	return sb.String()
}

func words(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf(" (~%d words)", n)
}
