package event

import "github.com/heathj/goevents/dom"

// Set is an ordered group of targets with the chainable binding API. Every
// method returns the set it was called on.
type Set struct {
	eng      *Engine
	targets  []Target
	selector string
	context  *dom.Node
}

// Wrap makes a set of the given targets. nil targets are skipped.
func (eng *Engine) Wrap(targets ...Target) *Set {
	s := &Set{eng: eng}
	for _, t := range targets {
		if t != nil {
			s.targets = append(s.targets, t)
		}
	}
	return s
}

// Select makes a set of the elements under root matching selector. The set
// remembers both, which is what Live and Die bind with.
func (eng *Engine) Select(root *dom.Node, selector string) *Set {
	s := &Set{eng: eng, selector: selector, context: root}
	if root == nil {
		return s
	}
	for _, n := range eng.matcher.QueryAll(root, selector) {
		s.targets = append(s.targets, n)
	}
	return s
}

func (s *Set) Len() int { return len(s.targets) }

func (s *Set) Get(i int) Target {
	if i < 0 || i >= len(s.targets) {
		return nil
	}
	return s.targets[i]
}

func (s *Set) Targets() []Target { return append([]Target(nil), s.targets...) }

// On binds cb on every target for each type in types.
func (s *Set) On(types string, cb *Callback, opts ...BindOption) *Set {
	o := bindConfig(opts)
	for _, t := range s.targets {
		s.eng.add(t, types, cb, o)
	}
	return s
}

// OnMap binds each callback under its type list.
func (s *Set) OnMap(m map[string]*Callback, opts ...BindOption) *Set {
	for types, cb := range m {
		s.On(types, cb, opts...)
	}
	return s
}

// One is On, but each binding removes itself before its first run.
func (s *Set) One(types string, cb *Callback, opts ...BindOption) *Set {
	o := bindConfig(opts)
	o.once = true
	for _, t := range s.targets {
		s.eng.add(t, types, cb, o)
	}
	return s
}

// Off unbinds. Empty types matches any type, a nil cb any callback, and the
// Selector option restricts removal to handlers delegated with it.
func (s *Set) Off(types string, cb *Callback, opts ...BindOption) *Set {
	o := bindConfig(opts)
	for _, t := range s.targets {
		s.eng.Remove(t, types, cb, o.selector)
	}
	return s
}

func (s *Set) OffMap(m map[string]*Callback, opts ...BindOption) *Set {
	for types, cb := range m {
		s.Off(types, cb, opts...)
	}
	return s
}

func (s *Set) Bind(types string, cb *Callback) *Set   { return s.On(types, cb) }
func (s *Set) Unbind(types string, cb *Callback) *Set { return s.Off(types, cb) }

func (s *Set) Delegate(selector, types string, cb *Callback) *Set {
	return s.On(types, cb, Selector(selector))
}

func (s *Set) Undelegate(selector, types string, cb *Callback) *Set {
	return s.Off(types, cb, Selector(selector))
}

// Live delegates from the set's context, or its document body when it has
// none, using the selector the set was made with.
func (s *Set) Live(types string, cb *Callback) *Set {
	if root := s.liveRoot(); root != nil && s.selector != "" {
		s.eng.Wrap(root).On(types, cb, Selector(s.selector))
	}
	return s
}

func (s *Set) Die(types string, cb *Callback) *Set {
	if root := s.liveRoot(); root != nil && s.selector != "" {
		s.eng.Wrap(root).Off(types, cb, Selector(s.selector))
	}
	return s
}

func (s *Set) liveRoot() Target {
	if s.context != nil {
		if s.context.NodeType() == dom.DocumentNode {
			if b := s.context.OwnerDocument().Body(); b != nil {
				return b
			}
		}
		return s.context
	}
	for _, t := range s.targets {
		if n, ok := t.(*dom.Node); ok {
			if b := n.OwnerDocument().Body(); b != nil {
				return b
			}
		}
	}
	s.eng.log.WithField("method", "Live").Warnf("[EVENT]: no root to delegate %q from", s.selector)
	return nil
}

// Ready runs cb once the targets' document is ready.
func (s *Set) Ready(cb *Callback) *Set {
	return s.On("ready", cb)
}

func (s *Set) Trigger(ev any, args ...any) error {
	return s.eng.Trigger(s.targets, ev, args...)
}

func (s *Set) TriggerHandler(ev any, args ...any) (any, error) {
	return s.eng.TriggerHandler(s.targets, ev, args...)
}
