package toc

import "fmt"

// Status is the triage state of a section.
type Status string

const (
	StatusKeep            Status = "keep"
	StatusSuggestedAdd    Status = "suggested_add"
	StatusSuggestedRemove Status = "suggested_remove"
	StatusModified        Status = "modified"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusKeep, StatusSuggestedAdd, StatusSuggestedRemove, StatusModified:
		return true
	}
	return false
}

// Triage reports whether s is a one-shot suggestion state awaiting a decision.
func (s Status) Triage() bool {
	return s == StatusSuggestedAdd || s == StatusSuggestedRemove
}

// Settled reports whether a section in this state goes to generation.
func (s Status) Settled() bool {
	return s == StatusKeep || s == StatusModified
}

// Origin records where a section came from.
type Origin string

const (
	OriginOriginal Origin = "original" // From a template or source document.
	OriginCustom   Origin = "custom"   // Added by the user.
)

// Node is one entry of the proposal outline.
type Node struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Level       int    `json:"level"`
	Content     string `json:"content,omitempty"`
	Origin      Origin `json:"origin"`
	Status      Status `json:"status"`
	Reason      string `json:"reason,omitempty"`
	WordCount   int    `json:"word_count,omitempty"`
	Subsections []Node `json:"subsections,omitempty"`
}

// Tree is the ordered sequence of top-level sections. Level-2 sections live
// only inside a parent's Subsections.
type Tree []Node

// Clone returns a deep copy that shares no slices with t.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i := range t {
		out[i] = t[i].clone()
	}
	return out
}

func (n Node) clone() Node {
	c := n
	if n.Subsections != nil {
		c.Subsections = make([]Node, len(n.Subsections))
		for i := range n.Subsections {
			c.Subsections[i] = n.Subsections[i].clone()
		}
	}
	return c
}

// Location identifies where a node sits in a tree. Parent is -1 for top-level
// nodes.
type Location struct {
	Parent int
	Index  int
}

// TopLevel reports whether the location is in the top-level sequence.
func (l Location) TopLevel() bool { return l.Parent < 0 }

// Find returns the location of id, if present.
func (t Tree) Find(id string) (Location, bool) {
	for i := range t {
		if t[i].ID == id {
			return Location{Parent: -1, Index: i}, true
		}
		for j := range t[i].Subsections {
			if t[i].Subsections[j].ID == id {
				return Location{Parent: i, Index: j}, true
			}
		}
	}
	return Location{}, false
}

// Node returns a copy of the node with id.
func (t Tree) Node(id string) (Node, bool) {
	loc, ok := t.Find(id)
	if !ok {
		return Node{}, false
	}
	return t.at(loc).clone(), true
}

func (t Tree) at(loc Location) *Node {
	if loc.TopLevel() {
		return &t[loc.Index]
	}
	return &t[loc.Parent].Subsections[loc.Index]
}

// IDs lists every id in document order.
func (t Tree) IDs() []string {
	var ids []string
	t.Walk(func(n Node) {
		ids = append(ids, n.ID)
	})
	return ids
}

// Walk visits every node depth-first in document order.
func (t Tree) Walk(fn func(Node)) {
	for _, n := range t {
		fn(n)
		for _, sub := range n.Subsections {
			fn(sub)
		}
	}
}

// Count returns the number of nodes across both levels.
func (t Tree) Count() int {
	n := 0
	for _, top := range t {
		n += 1 + len(top.Subsections)
	}
	return n
}

// Validate checks the structural invariants of a tree.
func Validate(t Tree) error {
	seen := make(map[string]bool, t.Count())
	for i, n := range t {
		if n.Level != 1 {
			return fmt.Errorf("top-level node %q at %d has level %d", n.ID, i, n.Level)
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate id %q", n.ID)
		}
		seen[n.ID] = true
		for j, sub := range n.Subsections {
			if sub.Level != 2 {
				return fmt.Errorf("subsection %q at %d.%d has level %d", sub.ID, i, j, sub.Level)
			}
			if len(sub.Subsections) > 0 {
				return fmt.Errorf("subsection %q nests below level 2", sub.ID)
			}
			if seen[sub.ID] {
				return fmt.Errorf("duplicate id %q", sub.ID)
			}
			seen[sub.ID] = true
		}
	}
	return nil
}
