package keybind

import (
	"slices"
	"strings"
	"sync"
)

// Undo shortcuts registered by a curation session.
var Undo = []string{"ctrl+z", "meta+z"}

// Handler reacts to a key combination.
type Handler func()

type binding struct {
	id      uint64
	handler Handler
}

// Registry is a host-wide keyboard shortcut listener. Each combination keeps a
// stack of bindings; the most recently registered live binding handles it.
type Registry struct {
	mu       sync.Mutex
	bindings map[string][]binding
	nextID   uint64
}

func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string][]binding)}
}

// Normalize canonicalizes a combination: lower case, modifiers sorted,
// "cmd" folded into "meta" and "control" into "ctrl".
func Normalize(combo string) string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	if len(parts) == 0 {
		return ""
	}
	key := strings.TrimSpace(parts[len(parts)-1])
	var mods []string
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		switch p {
		case "cmd", "command", "super":
			p = "meta"
		case "control":
			p = "ctrl"
		case "option":
			p = "alt"
		case "":
			continue
		}
		if !slices.Contains(mods, p) {
			mods = append(mods, p)
		}
	}
	slices.Sort(mods)
	return strings.Join(append(mods, key), "+")
}

// Register binds handler to every combination and returns a function that
// removes exactly these bindings. Calling the returned function twice is safe.
func (r *Registry) Register(h Handler, combos ...string) (unregister func()) {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	keys := make([]string, 0, len(combos))
	for _, c := range combos {
		k := Normalize(c)
		if k == "" {
			continue
		}
		r.bindings[k] = append(r.bindings[k], binding{id: id, handler: h})
		keys = append(keys, k)
	}
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for _, k := range keys {
				r.bindings[k] = slices.DeleteFunc(r.bindings[k], func(b binding) bool { return b.id == id })
				if len(r.bindings[k]) == 0 {
					delete(r.bindings, k)
				}
			}
		})
	}
}

// Dispatch runs the handler for combo and reports whether one was bound. The
// handler runs outside the registry lock.
func (r *Registry) Dispatch(combo string) bool {
	r.mu.Lock()
	stack := r.bindings[Normalize(combo)]
	var h Handler
	if len(stack) > 0 {
		h = stack[len(stack)-1].handler
	}
	r.mu.Unlock()

	if h == nil {
		return false
	}
	h()
	return true
}

// Bound reports whether combo currently has a handler.
func (r *Registry) Bound(combo string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bindings[Normalize(combo)]) > 0
}
