package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/proposaltoc/internal/drag"
	"github.com/dgallion1/proposaltoc/internal/history"
	"github.com/dgallion1/proposaltoc/internal/keybind"
	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/google/uuid"
)

// Change is delivered to listeners after every successful mutation.
type Change struct {
	SessionID string   `json:"session_id"`
	Op        string   `json:"op"`
	Version   int      `json:"version"`
	Tree      toc.Tree `json:"tree"`
}

// Listener observes changes. Listeners run synchronously while the session is
// locked and must not call back into the session.
type Listener func(Change)

// Options configures a new session.
type Options struct {
	HistoryLimit int
	Log          *slog.Logger
	NewID        func() string // Section ids for added sections.
}

// Session is one user's curation of a proposal outline. Actions are
// serialized: each one validates, mutates, records history and notifies
// before the next begins.
type Session struct {
	mu sync.Mutex

	ID        string
	Title     string
	CreatedAt time.Time

	updatedAt time.Time
	lastUsed  time.Time
	version   int
	tree      toc.Tree
	history   *history.Stack
	log       *slog.Logger
	newID     func() string

	listeners  map[uint64]Listener
	nextListen uint64

	drag   *drag.Interpreter
	keys   *keybind.Registry
	unbind func()
	closed bool
}

// New creates a session whose tree is the normalized form of records.
func New(id, title string, records []toc.Suggestion, opts Options) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return "custom-" + uuid.NewString() }
	}
	now := time.Now()
	s := &Session{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		updatedAt: now,
		lastUsed:  now,
		tree:      toc.Normalize(records),
		history:   history.New(opts.HistoryLimit),
		log:       log.With("session_id", id),
		newID:     newID,
		listeners: make(map[uint64]Listener),
	}
	s.drag = drag.NewInterpreter(s)
	return s
}

// Tree returns a copy of the current tree.
func (s *Session) Tree() toc.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Clone()
}

// Version counts successful mutations, including undos.
func (s *Session) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// HistoryLen returns the number of undo steps available.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// Subscribe registers l for change notifications and returns a function that
// removes it.
func (s *Session) Subscribe(l Listener) (cancel func()) {
	s.mu.Lock()
	s.nextListen++
	id := s.nextListen
	s.listeners[id] = l
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// apply runs a pure tree operation. History is recorded and listeners are
// notified only when the operation changed the tree.
func (s *Session) apply(op string, fn func(toc.Tree) (toc.Tree, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	if s.closed {
		return false
	}
	next, ok := fn(s.tree)
	if !ok {
		s.log.Debug("no-op mutation", "op", op)
		return false
	}
	if err := toc.Validate(next); err != nil {
		s.log.Error("mutation broke tree invariants, discarding", "op", op, "error", err)
		return false
	}
	s.history.Push(s.tree)
	s.commitLocked(op, next)
	return true
}

func (s *Session) commitLocked(op string, next toc.Tree) {
	s.tree = next
	s.version++
	s.updatedAt = time.Now()
	for _, l := range s.listeners {
		l(Change{SessionID: s.ID, Op: op, Version: s.version, Tree: next.Clone()})
	}
}

// AddSection appends a custom top-level section and returns its id.
func (s *Session) AddSection(title string) (string, bool) {
	var id string
	ok := s.apply("add", func(t toc.Tree) (toc.Tree, bool) {
		id = s.newID()
		return toc.AddSection(t, id, title)
	})
	if !ok {
		return "", false
	}
	return id, true
}

// RemoveSection deletes a section (and its subsections) from either level.
func (s *Session) RemoveSection(id string) bool {
	return s.apply("remove", func(t toc.Tree) (toc.Tree, bool) {
		return toc.RemoveSection(t, id)
	})
}

func (s *Session) RenameSection(id, title string) bool {
	return s.apply("rename", func(t toc.Tree) (toc.Tree, bool) {
		return toc.RenameSection(t, id, title)
	})
}

func (s *Session) SetContent(id, content string) bool {
	return s.apply("set_content", func(t toc.Tree) (toc.Tree, bool) {
		return toc.SetContent(t, id, content)
	})
}

func (s *Session) SetStatus(id string, status toc.Status) bool {
	return s.apply("set_status", func(t toc.Tree) (toc.Tree, bool) {
		return toc.SetStatus(t, id, status)
	})
}

// Accept adopts a suggestion: suggested_add and suggested_remove both become
// keep.
func (s *Session) Accept(id string) bool {
	return s.apply("accept", func(t toc.Tree) (toc.Tree, bool) {
		n, ok := t.Node(id)
		if !ok || !n.Status.Triage() {
			return t, false
		}
		return toc.SetStatus(t, id, toc.StatusKeep)
	})
}

// Reject removes a section that is still awaiting triage. Once a section has
// left triage it can only be deleted with RemoveSection.
func (s *Session) Reject(id string) bool {
	return s.apply("reject", func(t toc.Tree) (toc.Tree, bool) {
		n, ok := t.Node(id)
		if !ok || !n.Status.Triage() {
			return t, false
		}
		return toc.RemoveSection(t, id)
	})
}

func (s *Session) ReorderTopLevel(from, to int) bool {
	return s.apply("reorder", func(t toc.Tree) (toc.Tree, bool) {
		return toc.ReorderTopLevel(t, from, to)
	})
}

func (s *Session) NestUnderParent(childID, parentID string) bool {
	return s.apply("nest", func(t toc.Tree) (toc.Tree, bool) {
		return toc.NestUnderParent(t, childID, parentID)
	})
}

func (s *Session) PromoteToTopLevel(parentID string, childIndex int) bool {
	return s.apply("promote", func(t toc.Tree) (toc.Tree, bool) {
		return toc.PromoteToTopLevel(t, parentID, childIndex)
	})
}

// Undo restores the tree as it was before the most recent mutation.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	if s.closed {
		return false
	}
	prev, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.commitLocked("undo", prev)
	return true
}

// Flatten returns the generation-ready outline. Sections still awaiting
// triage are left out and logged.
func (s *Session) Flatten() []toc.Section {
	sections, _ := s.Outline()
	return sections
}

// Outline returns the generation-ready outline together with the IDs of the
// sections it left out, both read from the same tree.
func (s *Session) Outline() ([]toc.Section, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	pending := toc.Untriaged(s.tree)
	if len(pending) > 0 {
		s.log.Warn("untriaged sections dropped from outline", "count", len(pending), "ids", pending)
	} else {
		pending = []string{}
	}
	return toc.Flatten(s.tree), pending
}

// Drag returns the session's drag interpreter.
func (s *Session) Drag() *drag.Interpreter { return s.drag }

// Mount registers the session's undo shortcut with reg. Any earlier mount is
// released first.
func (s *Session) Mount(reg *keybind.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.unbind != nil {
		s.unbind()
	}
	s.keys = reg
	s.unbind = reg.Register(func() { s.Undo() }, keybind.Undo...)
}

// Shortcut dispatches a key combination through the registry the session is
// mounted on.
func (s *Session) Shortcut(combo string) bool {
	s.mu.Lock()
	reg := s.keys
	s.mu.Unlock()
	if reg == nil {
		return false
	}
	return reg.Dispatch(combo)
}

// Close ends the session: shortcuts are released, listeners dropped, and
// further actions become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.unbind != nil {
		s.unbind()
		s.unbind = nil
	}
	s.drag.Cancel()
	clear(s.listeners)
	s.history.Reset()
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Snapshot is a read-only, JSON-safe view of the session.
type Snapshot struct {
	ID        string    `json:"session_id"`
	Title     string    `json:"title"`
	Version   int       `json:"version"`
	Undoable  int       `json:"undoable"`
	Untriaged []string  `json:"untriaged"`
	Tree      toc.Tree  `json:"tree"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	tree := s.tree.Clone()
	if tree == nil {
		tree = toc.Tree{}
	}
	pending := toc.Untriaged(s.tree)
	if pending == nil {
		pending = []string{}
	}
	return Snapshot{
		ID:        s.ID,
		Title:     s.Title,
		Version:   s.version,
		Undoable:  s.history.Len(),
		Untriaged: pending,
		Tree:      tree,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}
