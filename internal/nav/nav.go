package nav

import "quickcomm/internal/model"

// MaxStack bounds the back-stack; the oldest entries are evicted first.
const MaxStack = 50

// Navigator tracks the current route and the routes visited before it.
type Navigator struct {
	current model.Route
	stack   []model.Route
}

func New() *Navigator {
	return &Navigator{current: model.Home{}}
}

func (n *Navigator) Current() model.Route {
	return n.current
}

// Navigate pushes the current route and moves to target. Navigating to the
// route already shown still records history.
func (n *Navigator) Navigate(target model.Route) {
	if target == nil {
		target = model.Home{}
	}
	n.stack = append(n.stack, n.current)
	if len(n.stack) > MaxStack {
		n.stack = append([]model.Route(nil), n.stack[len(n.stack)-MaxStack:]...)
	}
	n.current = target
}

// Back restores the most recent route, or def when there is no history.
func (n *Navigator) Back(def model.Route) model.Route {
	if len(n.stack) == 0 {
		if def == nil {
			def = model.Home{}
		}
		n.current = def
		return n.current
	}
	last := len(n.stack) - 1
	n.current = n.stack[last]
	n.stack[last] = nil
	n.stack = n.stack[:last]
	return n.current
}

func (n *Navigator) Depth() int {
	return len(n.stack)
}

// Stack returns a copy of the back-stack, oldest first.
func (n *Navigator) Stack() []model.Route {
	return append([]model.Route(nil), n.stack...)
}

// BackDefault is where Back lands from r when history is exhausted.
func BackDefault(r model.Route) model.Route {
	switch r := r.(type) {
	case model.Category:
		if sl, err := model.NewScopeList(r.Scope()); err == nil {
			return sl
		}
	case model.Fullscreen:
		return model.Display{}
	}
	return model.Home{}
}
