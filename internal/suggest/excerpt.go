package suggest

import (
	"strings"

	"github.com/dgallion1/proposaltoc/internal/doctree"
)

// DefaultExcerptTokens bounds the RFP text sent with one suggestion request.
const DefaultExcerptTokens = 12000

const truncatedMarker = "[... RFP truncated ...]"

// EstimateTokens gives a rough token count from the word count.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	// Roughly 0.75 tokens per word for English text.
	tokens := int(float64(len(strings.Fields(text))) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// Excerpt renders a parsed RFP as prompt text, section by section with
// heading breadcrumbs, stopping once maxTokens is reached. Paragraphs that
// straddle the limit are cut at a sentence boundary.
func Excerpt(tree *doctree.DocTree, maxTokens int) string {
	if tree == nil {
		return ""
	}
	if maxTokens <= 0 {
		maxTokens = DefaultExcerptTokens
	}
	e := &excerpter{budget: maxTokens}
	for _, child := range tree.Children {
		if !e.walk(child, nil) {
			break
		}
	}
	if e.truncated {
		e.write(truncatedMarker)
	}
	return strings.TrimSpace(e.sb.String())
}

type excerpter struct {
	sb        strings.Builder
	budget    int
	used      int
	truncated bool
}

// walk returns false once the budget is exhausted.
func (e *excerpter) walk(node *doctree.DocNode, breadcrumb []string) bool {
	bc := breadcrumb
	if node.Title != "" {
		bc = append(append([]string(nil), breadcrumb...), node.Title)
		if !e.add("## " + strings.Join(bc, " > ")) {
			return false
		}
	}
	for _, para := range splitByParagraphs(node.Text) {
		if !e.add(para) {
			e.addSentences(para)
			return false
		}
	}
	for _, child := range node.Children {
		if !e.walk(child, bc) {
			return false
		}
	}
	return true
}

func (e *excerpter) add(block string) bool {
	tokens := EstimateTokens(block)
	if e.used+tokens > e.budget {
		e.truncated = true
		return false
	}
	e.used += tokens
	e.write(block)
	return true
}

func (e *excerpter) addSentences(para string) {
	var kept []string
	for _, sent := range splitSentences(para) {
		tokens := EstimateTokens(sent)
		if e.used+tokens > e.budget {
			break
		}
		e.used += tokens
		kept = append(kept, sent)
	}
	if len(kept) > 0 {
		e.write(strings.Join(kept, " "))
	}
}

func (e *excerpter) write(block string) {
	if e.sb.Len() > 0 {
		e.sb.WriteString("\n\n")
	}
	e.sb.WriteString(block)
}

// splitByParagraphs splits on double-newlines.
func splitByParagraphs(text string) []string {
	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, strings.TrimSpace(current.String()))
	}
	return sentences
}
