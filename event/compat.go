package event

import (
	"maps"
	"regexp"
	"time"

	"github.com/heathj/goevents/dom"
	"github.com/heathj/goevents/webidl"
)

// Native is a platform event. *dom.Event is the usual one, but any type with
// this shape can be shimmed. The optional capabilities below are probed for
// and used when present.
type Native interface {
	Type() string
	Fields() dom.EventFields
}

type (
	defaultPreventer            interface{ PreventDefault() }
	propagationStopper          interface{ StopPropagation() }
	immediatePropagationStopper interface{ StopImmediatePropagation() }

	// The three ways a source may report that its default was prevented.
	defaultPreventedReporter interface{ DefaultPrevented() bool }
	returnValueReporter      interface{ ReturnValue() bool }
	preventDefaultGetter     interface{ GetPreventDefault() bool }

	timeStampSetter interface {
		SetTimeStamp(webidl.DOMHighResTimeStamp) error
	}
	attacher interface {
		Attach(key, v any)
		Attachment(key any) any
	}
)

// Kind says how an Event relates to the platform event it came from.
type Kind uint8

const (
	// NativeWrapped events read through to the native event and remember
	// their flags on it, so every handler of one dispatch sees the same state.
	NativeWrapped Kind = iota + 1
	// Synthesized events are detached snapshots. Actions on them still reach
	// the event they were taken from.
	Synthesized
)

func (k Kind) String() string {
	switch k {
	case NativeWrapped:
		return "native"
	case Synthesized:
		return "synthesized"
	}
	return "unknown"
}

type shimKey struct{}

// state holds what the shim adds to an event. The three flags only ever go
// from false to true.
type state struct {
	native Native
	parent *state
	live   bool

	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool

	timeStamp webidl.DOMHighResTimeStamp
	args      []any
	ns        string
}

func (s *state) preventDefault() {
	s.defaultPrevented = true
	if s.parent != nil {
		s.parent.preventDefault()
		return
	}
	if p, ok := s.native.(defaultPreventer); ok {
		p.PreventDefault()
	}
}

func (s *state) stopPropagation() {
	s.propagationStopped = true
	if s.parent != nil {
		s.parent.stopPropagation()
		return
	}
	if p, ok := s.native.(propagationStopper); ok {
		p.StopPropagation()
	}
}

func (s *state) stopImmediatePropagation() {
	s.immediateStopped = true
	s.propagationStopped = true
	if s.parent != nil {
		s.parent.stopImmediatePropagation()
		return
	}
	if p, ok := s.native.(immediatePropagationStopper); ok {
		p.StopImmediatePropagation()
		return
	}
	if p, ok := s.native.(propagationStopper); ok {
		p.StopPropagation()
	}
}

func (s *state) isDefaultPrevented() bool {
	if !s.defaultPrevented && s.live && prevented(s.native) {
		s.defaultPrevented = true
	}
	if !s.defaultPrevented && s.parent != nil && s.parent.isDefaultPrevented() {
		s.defaultPrevented = true
	}
	return s.defaultPrevented
}

func prevented(n Native) bool {
	switch r := n.(type) {
	case defaultPreventedReporter:
		return r.DefaultPrevented()
	case returnValueReporter:
		return !r.ReturnValue()
	case preventDefaultGetter:
		return r.GetPreventDefault()
	}
	return false
}

// Event is the portable event handlers receive. Each handler call gets its
// own view; views of one dispatch share their flags.
type Event struct {
	kind   Kind
	fields dom.EventFields
	st     *state

	target        Target
	currentTarget Target
	liveFired     Target
	data          any
}

// wrap shims n in place. A native that can hold attachments keeps its shim
// state, so wrapping it again yields the same flags.
func wrap(n Native, now func() time.Time) *Event {
	a, canAttach := n.(attacher)
	if canAttach {
		if st, ok := a.Attachment(shimKey{}).(*state); ok {
			return &Event{kind: NativeWrapped, st: st}
		}
	}
	st := &state{native: n, live: true}
	st.defaultPrevented = prevented(n)
	if n.Fields().TimeStamp.IsZero() {
		st.timeStamp = webidl.TimeStamp(now())
		if s, ok := n.(timeStampSetter); ok {
			_ = s.SetTimeStamp(st.timeStamp)
		}
	}
	if canAttach {
		a.Attach(shimKey{}, st)
	}
	return &Event{kind: NativeWrapped, st: st}
}

// excluded names never make it into a snapshot.
var excluded = regexp.MustCompile(`^(?:[A-Z]|returnValue$|layer[XY]$|webkitMovement[XY]$)`)

// snapshot copies src into a detached event. src is an *Event or a Native.
func snapshot(src any, now func() time.Time) *Event {
	st := &state{}
	var fields dom.EventFields
	switch s := src.(type) {
	case *Event:
		fields = s.base()
		st.native = s.st.native
		st.parent = s.st
	case Native:
		fields = s.Fields()
		st.native = s
		if a, ok := s.(attacher); ok {
			if parent, ok := a.Attachment(shimKey{}).(*state); ok {
				st.parent = parent
			}
		}
	}
	return synthesize(fields, st, now)
}

func synthesize(fields dom.EventFields, st *state, now func() time.Time) *Event {
	fields.Props = filterProps(fields.Props)
	if fields.TimeStamp.IsZero() {
		fields.TimeStamp = webidl.TimeStamp(now())
	}
	if st.parent != nil {
		st.defaultPrevented = st.parent.isDefaultPrevented()
	} else if st.native != nil {
		st.defaultPrevented = prevented(st.native)
	}
	return &Event{kind: Synthesized, fields: fields, st: st}
}

func filterProps(props map[string]any) map[string]any {
	if len(props) == 0 {
		return nil
	}
	out := maps.Clone(props)
	maps.DeleteFunc(out, func(k string, v any) bool {
		return v == nil || excluded.MatchString(k)
	})
	return out
}

func (e *Event) view() *Event {
	v := *e
	return &v
}

func (e *Event) withData(data any) *Event {
	v := e.view()
	v.data = data
	return v
}

func (e *Event) delegated(match, root Target) *Event {
	v := e.view()
	v.currentTarget = match
	v.liveFired = root
	return v
}

func (e *Event) base() dom.EventFields {
	if e.kind == NativeWrapped {
		return e.st.native.Fields()
	}
	return e.fields
}

func (e *Event) Kind() Kind { return e.kind }

func (e *Event) Type() string { return e.base().Type }

func (e *Event) Target() Target {
	if e.target != nil {
		return e.target
	}
	return asTarget(e.base().Target)
}

func (e *Event) CurrentTarget() Target {
	if e.currentTarget != nil {
		return e.currentTarget
	}
	return asTarget(e.base().CurrentTarget)
}

func (e *Event) RelatedTarget() Target { return asTarget(e.base().RelatedTarget) }

// LiveFired is the element a delegated handler was bound to. It is nil for
// direct handlers.
func (e *Event) LiveFired() Target { return e.liveFired }

func (e *Event) Phase() dom.EventPhase { return e.base().Phase }
func (e *Event) Bubbles() bool         { return e.base().Bubbles }
func (e *Event) Cancelable() bool      { return e.base().Cancelable }
func (e *Event) IsTrusted() bool       { return e.base().IsTrusted }
func (e *Event) Detail() any           { return e.base().Detail }

// TimeStamp is never zero: a source without one gets the time it was shimmed.
func (e *Event) TimeStamp() webidl.DOMHighResTimeStamp {
	if ts := e.base().TimeStamp; !ts.IsZero() {
		return ts
	}
	return e.st.timeStamp
}

// Fields returns the underlying attributes, including the mouse and key ones.
func (e *Event) Fields() dom.EventFields { return e.base() }

func (e *Event) Prop(name string) (any, bool) {
	v, ok := e.base().Props[name]
	return v, ok
}

// Data is the value given with Data when the running handler was bound.
func (e *Event) Data() any { return e.data }

// Args are the extra values passed to Trigger or TriggerHandler.
func (e *Event) Args() []any { return e.st.args }

// OriginalEvent is the native event behind e, if any.
func (e *Event) OriginalEvent() Native { return e.st.native }

func (e *Event) PreventDefault()          { e.st.preventDefault() }
func (e *Event) StopPropagation()         { e.st.stopPropagation() }
func (e *Event) StopImmediatePropagation() { e.st.stopImmediatePropagation() }

func (e *Event) IsDefaultPrevented() bool            { return e.st.isDefaultPrevented() }
func (e *Event) IsPropagationStopped() bool          { return e.st.propagationStopped }
func (e *Event) IsImmediatePropagationStopped() bool { return e.st.immediateStopped }

func asTarget(t dom.Target) Target {
	if t == nil {
		return nil
	}
	return t
}
