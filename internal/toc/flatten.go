package toc

// Section is one entry of the generation-ready outline. Hierarchy is gone;
// Level only records where the section sat in the curated tree.
type Section struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Level     int    `json:"level"`
	Content   string `json:"content,omitempty"`
	Origin    Origin `json:"origin"`
	Status    Status `json:"status"`
	Reason    string `json:"reason,omitempty"`
	WordCount int    `json:"word_count,omitempty"`
}

// Flatten lists every settled section depth-first: each top-level section is
// followed by its own settled subsections. Sections still awaiting triage are
// dropped; a settled subsection of an untriaged parent is still emitted.
func Flatten(t Tree) []Section {
	out := make([]Section, 0, t.Count())
	t.Walk(func(n Node) {
		if n.Status.Settled() {
			out = append(out, Section{
				ID:        n.ID,
				Title:     n.Title,
				Level:     n.Level,
				Content:   n.Content,
				Origin:    n.Origin,
				Status:    n.Status,
				Reason:    n.Reason,
				WordCount: n.WordCount,
			})
		}
	})
	return out
}

// Untriaged returns the ids of sections still in a suggestion state.
func Untriaged(t Tree) []string {
	var ids []string
	t.Walk(func(n Node) {
		if n.Status.Triage() {
			ids = append(ids, n.ID)
		}
	})
	return ids
}
