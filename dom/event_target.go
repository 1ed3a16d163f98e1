package dom

import "github.com/pkg/errors"

// Target is anything events can be dispatched at: nodes and the window.
type Target interface {
	AddEventListener(typ string, l *Listener, capture bool)
	RemoveEventListener(typ string, l *Listener, capture bool)
	DispatchEvent(e *Event) (bool, error)
	ZID() uint64
	SetZID(id uint64)

	target() *EventTarget
	parentTarget() Target
}

// Listener wraps a callback. Registration and removal compare listeners by
// pointer, so hold on to the *Listener to remove it later.
type Listener struct {
	handle func(e *Event)
}

func NewListener(fn func(e *Event)) *Listener {
	return &Listener{handle: fn}
}

// https://dom.spec.whatwg.org/#callbackdef-eventlistener
func (l *Listener) HandleEvent(e *Event) {
	if l.handle != nil {
		l.handle(e)
	}
}

type registration struct {
	typ      string
	listener *Listener
	capture  bool
	once     bool
	removed  bool
}

// EventTarget is https://dom.spec.whatwg.org/#interface-eventtarget
// The zero value is ready to use.
type EventTarget struct {
	listeners map[string][]*registration
}

// AddEventListener is https://dom.spec.whatwg.org/#dom-eventtarget-addeventlistener
// A listener already registered for the same type and capture is ignored.
func (et *EventTarget) AddEventListener(typ string, l *Listener, capture bool) {
	et.addEventListener(typ, l, capture, false)
}

// AddEventListenerOnce registers l so it is removed before its first call.
func (et *EventTarget) AddEventListenerOnce(typ string, l *Listener, capture bool) {
	et.addEventListener(typ, l, capture, true)
}

func (et *EventTarget) addEventListener(typ string, l *Listener, capture, once bool) {
	if l == nil {
		return
	}
	if et.listeners == nil {
		et.listeners = make(map[string][]*registration)
	}
	for _, r := range et.listeners[typ] {
		if r.listener == l && r.capture == capture {
			return
		}
	}
	et.listeners[typ] = append(et.listeners[typ], &registration{
		typ:      typ,
		listener: l,
		capture:  capture,
		once:     once,
	})
}

// RemoveEventListener is https://dom.spec.whatwg.org/#dom-eventtarget-removeeventlistener
func (et *EventTarget) RemoveEventListener(typ string, l *Listener, capture bool) {
	regs := et.listeners[typ]
	for i, r := range regs {
		if r.listener == l && r.capture == capture {
			r.removed = true
			et.listeners[typ] = append(regs[:i:i], regs[i+1:]...)
			if len(et.listeners[typ]) == 0 {
				delete(et.listeners, typ)
			}
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (et *EventTarget) ListenerCount(typ string) int {
	return len(et.listeners[typ])
}

// https://dom.spec.whatwg.org/#concept-event-dispatch
func dispatch(t Target, e *Event) (bool, error) {
	if e == nil {
		return false, errors.Wrap(ErrInvalidState, "nil event")
	}
	if e.dispatching {
		return false, errors.Wrapf(ErrInvalidState, "%q is already being dispatched", e.fields.Type)
	}
	if !e.initialized {
		return false, errors.Wrap(ErrInvalidState, "event is not initialized")
	}

	e.dispatching = true
	e.fields.Target = t
	e.path = e.path[:0]
	for p := t; p != nil; p = p.parentTarget() {
		e.path = append(e.path, p)
	}
	defer func() {
		e.dispatching = false
		e.stopPropagation = false
		e.stopImmediate = false
		e.fields.Phase = NoneEventPhase
		e.fields.CurrentTarget = nil
		e.path = nil
	}()

	path := e.path
	e.fields.Phase = CapturingPhase
	for i := len(path) - 1; i > 0 && !e.stopPropagation; i-- {
		invoke(path[i], e, true)
	}

	e.fields.Phase = AtTargetPhase
	if !e.stopPropagation {
		invoke(path[0], e, true)
	}
	if !e.stopPropagation {
		invoke(path[0], e, false)
	}

	if e.fields.Bubbles {
		e.fields.Phase = BubblingPhase
		for i := 1; i < len(path) && !e.stopPropagation; i++ {
			invoke(path[i], e, false)
		}
	}

	return !e.defaultPrevented, nil
}

// https://dom.spec.whatwg.org/#concept-event-listener-inner-invoke
func invoke(t Target, e *Event, capture bool) {
	et := t.target()
	regs := append([]*registration(nil), et.listeners[e.fields.Type]...)
	e.fields.CurrentTarget = t
	for _, r := range regs {
		if e.stopImmediate {
			return
		}
		if r.removed || r.capture != capture {
			continue
		}
		if r.once {
			et.RemoveEventListener(r.typ, r.listener, r.capture)
		}
		r.listener.HandleEvent(e)
	}
}
