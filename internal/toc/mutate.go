package toc

import "strings"

// The operations below never modify their input. On success they return a
// fresh tree and true; on a no-op they return the input unchanged and false.

// AddSection appends a user-created top-level section.
func AddSection(t Tree, id, title string) (Tree, bool) {
	if id == "" {
		return t, false
	}
	if _, exists := t.Find(id); exists {
		return t, false
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle(len(t))
	}
	out := t.Clone()
	out = append(out, Node{
		ID:     id,
		Title:  title,
		Level:  1,
		Origin: OriginCustom,
		Status: StatusKeep,
	})
	return out, true
}

// RemoveSection deletes the section with id from either level. Removing a
// top-level section drops its subsections with it.
func RemoveSection(t Tree, id string) (Tree, bool) {
	loc, ok := t.Find(id)
	if !ok {
		return t, false
	}
	out := t.Clone()
	if loc.TopLevel() {
		return append(out[:loc.Index], out[loc.Index+1:]...), true
	}
	parent := &out[loc.Parent]
	parent.Subsections = append(parent.Subsections[:loc.Index], parent.Subsections[loc.Index+1:]...)
	return out, true
}

// RenameSection replaces a section title. Blank titles are rejected.
func RenameSection(t Tree, id, title string) (Tree, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return t, false
	}
	loc, ok := t.Find(id)
	if !ok || t.at(loc).Title == title {
		return t, false
	}
	out := t.Clone()
	n := out.at(loc)
	n.Title = title
	markEdited(n)
	return out, true
}

// SetContent replaces the free-form content of a section.
func SetContent(t Tree, id, content string) (Tree, bool) {
	loc, ok := t.Find(id)
	if !ok || t.at(loc).Content == content {
		return t, false
	}
	out := t.Clone()
	n := out.at(loc)
	n.Content = content
	markEdited(n)
	return out, true
}

// markEdited moves an untouched original section to modified so downstream
// consumers can tell edited originals apart.
func markEdited(n *Node) {
	if n.Origin == OriginOriginal && n.Status == StatusKeep {
		n.Status = StatusModified
	}
}

// CanTransition reports whether a section may move from one status to
// another. Deletion is not a status; it is RemoveSection.
func CanTransition(from, to Status) bool {
	switch {
	case from == to:
		return false
	case to.Triage():
		return false
	case from.Triage():
		return to == StatusKeep
	case from == StatusKeep:
		return to == StatusModified
	}
	return false
}

// SetStatus applies a status transition allowed by CanTransition.
func SetStatus(t Tree, id string, status Status) (Tree, bool) {
	loc, ok := t.Find(id)
	if !ok || !CanTransition(t.at(loc).Status, status) {
		return t, false
	}
	out := t.Clone()
	out.at(loc).Status = status
	return out, true
}

// ReorderTopLevel moves the top-level section at from so that it ends up at
// index to, shifting the others.
func ReorderTopLevel(t Tree, from, to int) (Tree, bool) {
	if from < 0 || from >= len(t) || to < 0 || to >= len(t) || from == to {
		return t, false
	}
	out := t.Clone()
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(Tree{moved}, out[to:]...)...)
	return out, true
}

// NestUnderParent detaches childID from wherever it is and appends it to the
// subsections of the top-level section parentID.
//
// Sections that own subsections cannot be nested; the tree is capped at two
// levels.
func NestUnderParent(t Tree, childID, parentID string) (Tree, bool) {
	if childID == "" || childID == parentID {
		return t, false
	}
	ploc, ok := t.Find(parentID)
	if !ok || !ploc.TopLevel() {
		return t, false
	}
	cloc, ok := t.Find(childID)
	if !ok {
		return t, false
	}
	child := t.at(cloc)
	if len(child.Subsections) > 0 {
		return t, false
	}
	if cloc.Parent == ploc.Index && cloc.Index == len(t[ploc.Index].Subsections)-1 {
		return t, false
	}
	if containsID(child.Subsections, parentID) {
		return t, false
	}

	out := t.Clone()
	moved := *out.at(cloc)
	moved.Level = 2
	parentIdx := ploc.Index
	if cloc.TopLevel() {
		out = append(out[:cloc.Index], out[cloc.Index+1:]...)
		if cloc.Index < parentIdx {
			parentIdx--
		}
	} else {
		from := &out[cloc.Parent]
		from.Subsections = append(from.Subsections[:cloc.Index], from.Subsections[cloc.Index+1:]...)
	}
	out[parentIdx].Subsections = append(out[parentIdx].Subsections, moved)
	return out, true
}

// PromoteToTopLevel moves the subsection at childIndex of parentID to the end
// of the top-level sequence.
func PromoteToTopLevel(t Tree, parentID string, childIndex int) (Tree, bool) {
	ploc, ok := t.Find(parentID)
	if !ok || !ploc.TopLevel() {
		return t, false
	}
	subs := t[ploc.Index].Subsections
	if childIndex < 0 || childIndex >= len(subs) {
		return t, false
	}
	out := t.Clone()
	parent := &out[ploc.Index]
	moved := parent.Subsections[childIndex]
	parent.Subsections = append(parent.Subsections[:childIndex], parent.Subsections[childIndex+1:]...)
	moved.Level = 1
	moved.Subsections = nil
	return append(out, moved), true
}

func containsID(nodes []Node, id string) bool {
	for _, n := range nodes {
		if n.ID == id || containsID(n.Subsections, id) {
			return true
		}
	}
	return false
}
