package drag

import (
	"sync"

	"github.com/dgallion1/proposaltoc/internal/toc"
)

// Zone is the kind of drop target under the pointer.
type Zone string

const (
	// ZoneGap is the space between or around top-level sections, including
	// the trailing end-of-list zone. Dropping here reorders.
	ZoneGap Zone = "gap"
	// ZoneBody is the interior of a top-level section. Dropping here nests.
	ZoneBody Zone = "body"
)

// End is the target id of the trailing gap after the last section.
const End = "end"

// Op is the tree operation a drop resolves to.
type Op string

const (
	OpNone    Op = "none"
	OpReorder Op = "reorder"
	OpNest    Op = "nest"
)

// Mutator is the part of a curation session the interpreter drives.
type Mutator interface {
	Tree() toc.Tree
	ReorderTopLevel(from, to int) bool
	NestUnderParent(childID, parentID string) bool
}

// Plan is the outcome of interpreting a pointer position.
type Plan struct {
	Op       Op     `json:"op"`
	Dragged  string `json:"dragged,omitempty"`
	TargetID string `json:"target_id,omitempty"`
	Zone     Zone   `json:"zone,omitempty"`
	From     int    `json:"from,omitempty"`
	To       int    `json:"to,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Valid reports whether dropping here would change the tree.
func (p Plan) Valid() bool { return p.Op != OpNone }

// Result describes what a drop did.
type Result struct {
	Plan
	Applied bool `json:"applied"`
}

// Interpreter turns one drag gesture into at most one tree mutation.
type Interpreter struct {
	m Mutator

	mu       sync.Mutex
	dragging string
	active   bool
	last     Plan
}

func NewInterpreter(m Mutator) *Interpreter {
	return &Interpreter{m: m}
}

// Start begins a drag of the section with id. Unknown ids are ignored and
// leave no drag in progress.
func (in *Interpreter) Start(id string) bool {
	_, found := in.m.Tree().Find(id)

	in.mu.Lock()
	defer in.mu.Unlock()
	in.reset()
	if !found {
		return false
	}
	in.dragging = id
	in.active = true
	return true
}

// Dragging returns the id being dragged, if any.
func (in *Interpreter) Dragging() (string, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.dragging, in.active
}

// Hover reports what dropping at the given target would do, for drop
// feedback. It never mutates.
func (in *Interpreter) Hover(targetID string, zone Zone) Plan {
	in.mu.Lock()
	dragged, active := in.dragging, in.active
	in.mu.Unlock()
	if !active {
		return Plan{Op: OpNone, Reason: "no drag in progress"}
	}
	plan := Interpret(in.m.Tree(), dragged, targetID, zone)

	in.mu.Lock()
	if in.active && in.dragging == dragged {
		in.last = plan
	}
	in.mu.Unlock()
	return plan
}

// LastHover returns the plan reported by the most recent Hover of the
// current drag.
func (in *Interpreter) LastHover() Plan {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.last
}

// Drop ends the gesture and applies the resolved operation, if any.
func (in *Interpreter) Drop(targetID string, zone Zone) Result {
	in.mu.Lock()
	if !in.active {
		in.mu.Unlock()
		return Result{Plan: Plan{Op: OpNone, Reason: "no drag in progress"}}
	}
	dragged := in.dragging
	in.reset()
	in.mu.Unlock()

	plan := Interpret(in.m.Tree(), dragged, targetID, zone)
	res := Result{Plan: plan}
	switch plan.Op {
	case OpReorder:
		res.Applied = in.m.ReorderTopLevel(plan.From, plan.To)
	case OpNest:
		res.Applied = in.m.NestUnderParent(plan.Dragged, plan.TargetID)
	}
	return res
}

// Cancel abandons the gesture without touching the tree.
func (in *Interpreter) Cancel() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.reset()
}

func (in *Interpreter) reset() {
	in.dragging = ""
	in.active = false
	in.last = Plan{}
}

// Interpret resolves a drop of dragged onto (targetID, zone) against tree.
// Gap drops reorder top-level sections; body drops nest under the target.
func Interpret(tree toc.Tree, dragged, targetID string, zone Zone) Plan {
	p := Plan{Op: OpNone, Dragged: dragged, TargetID: targetID, Zone: zone}
	from, ok := tree.Find(dragged)
	if !ok {
		p.Reason = "dragged section not found"
		return p
	}

	switch zone {
	case ZoneGap:
		if !from.TopLevel() {
			p.Reason = "subsections are promoted, not reordered"
			return p
		}
		to := len(tree) - 1
		if targetID != "" && targetID != End {
			target, ok := tree.Find(targetID)
			if !ok || !target.TopLevel() {
				p.Reason = "drop target not found"
				return p
			}
			// Gap sits before the target; account for the dragged section
			// leaving its slot first.
			to = target.Index
			if from.Index < target.Index {
				to--
			}
		}
		if to == from.Index {
			p.Reason = "position unchanged"
			return p
		}
		p.Op, p.From, p.To = OpReorder, from.Index, to

	case ZoneBody:
		if targetID == "" || targetID == End {
			p.Reason = "drop target not found"
			return p
		}
		if targetID == dragged {
			p.Reason = "cannot nest a section under itself"
			return p
		}
		target, ok := tree.Find(targetID)
		if !ok || !target.TopLevel() {
			p.Reason = "drop target not found"
			return p
		}
		if _, ok := toc.NestUnderParent(tree, dragged, targetID); !ok {
			p.Reason = "nesting not allowed here"
			return p
		}
		p.Op = OpNest

	default:
		p.Reason = "unknown drop zone"
	}
	return p
}
