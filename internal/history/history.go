package history

import (
	"github.com/dgallion1/proposaltoc/internal/toc"
)

// DefaultLimit is the number of snapshots kept when none is configured. It is
// also the ceiling: larger limits are clamped to it.
const DefaultLimit = 50

// Stack is a bounded, linear undo history of whole-tree snapshots. There is
// no redo: once a snapshot is popped it is gone.
//
// Stack is not safe for concurrent use; the owning session serializes access.
type Stack struct {
	limit     int
	snapshots []toc.Tree
}

// New returns a stack holding at most limit snapshots. Limits outside
// [1, DefaultLimit] fall back to DefaultLimit.
func New(limit int) *Stack {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	return &Stack{
		limit:     limit,
		snapshots: make([]toc.Tree, 0, limit),
	}
}

// Push stores an independent copy of tree, discarding the oldest snapshot
// when the stack is full.
func (s *Stack) Push(tree toc.Tree) {
	snap := tree.Clone()
	if snap == nil {
		snap = toc.Tree{}
	}
	if len(s.snapshots) == s.limit {
		copy(s.snapshots, s.snapshots[1:])
		s.snapshots[len(s.snapshots)-1] = nil
		s.snapshots = s.snapshots[:len(s.snapshots)-1]
	}
	s.snapshots = append(s.snapshots, snap)
}

// Undo pops the most recent snapshot. It reports false, and changes nothing,
// when the stack is empty.
func (s *Stack) Undo() (toc.Tree, bool) {
	if len(s.snapshots) == 0 {
		return nil, false
	}
	last := len(s.snapshots) - 1
	snap := s.snapshots[last]
	s.snapshots[last] = nil
	s.snapshots = s.snapshots[:last]
	return snap, true
}

// Len returns the number of stored snapshots.
func (s *Stack) Len() int { return len(s.snapshots) }

// Limit returns the configured capacity.
func (s *Stack) Limit() int { return s.limit }

// Reset drops every snapshot.
func (s *Stack) Reset() {
	clear(s.snapshots)
	s.snapshots = s.snapshots[:0]
}
