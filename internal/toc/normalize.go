package toc

import (
	"fmt"
	"strings"
)

// DefaultTitle is the placeholder title for the section at position n (0-based).
func DefaultTitle(n int) string {
	return fmt.Sprintf("Section %d", n+1)
}

// Normalize turns suggestion records into a canonical two-level tree. It never
// fails: every record degrades to a valid node.
//
// Level is decided by placement, not by what a record claims. Records nested
// below a level-2 record are flattened into the level-2 sequence directly
// after their ancestor, in pre-order, so no content is lost.
func Normalize(records []Suggestion) Tree {
	n := &normalizer{
		reserved: make(map[string]bool),
		used:     make(map[string]bool),
	}
	for _, r := range records {
		n.reserve(r)
	}

	tree := make(Tree, 0, len(records))
	for i, r := range records {
		node := n.node(r, 1, i)
		for _, sub := range r.Subsections {
			node.Subsections = n.appendSubtree(node.Subsections, sub)
		}
		tree = append(tree, node)
	}
	return tree
}

type normalizer struct {
	reserved map[string]bool
	used     map[string]bool
	seq      int
}

func (n *normalizer) reserve(r Suggestion) {
	if id := strings.TrimSpace(r.ID); id != "" {
		n.reserved[id] = true
	}
	for _, sub := range r.Subsections {
		n.reserve(sub)
	}
}

func (n *normalizer) appendSubtree(subs []Node, r Suggestion) []Node {
	subs = append(subs, n.node(r, 2, len(subs)))
	for _, deeper := range r.Subsections {
		subs = n.appendSubtree(subs, deeper)
	}
	return subs
}

func (n *normalizer) node(r Suggestion, level, pos int) Node {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		title = DefaultTitle(pos)
	}
	status := r.Status
	if !status.Valid() {
		status = StatusKeep
	}
	origin := r.Origin
	if origin != OriginOriginal && origin != OriginCustom {
		origin = OriginOriginal
		if r.Source == SourceUser {
			origin = OriginCustom
		}
	}
	return Node{
		ID:        n.id(r.ID),
		Title:     title,
		Level:     level,
		Content:   r.Content,
		Origin:    origin,
		Status:    status,
		Reason:    strings.TrimSpace(r.Reason),
		WordCount: max(r.WordCount, 0),
	}
}

// id keeps the first use of a supplied id and synthesizes sec-N for blanks
// and repeats, skipping anything supplied elsewhere in the input.
func (n *normalizer) id(supplied string) string {
	supplied = strings.TrimSpace(supplied)
	if supplied != "" && !n.used[supplied] {
		n.used[supplied] = true
		return supplied
	}
	for {
		n.seq++
		id := fmt.Sprintf("sec-%d", n.seq)
		if !n.reserved[id] && !n.used[id] {
			n.used[id] = true
			return id
		}
	}
}
