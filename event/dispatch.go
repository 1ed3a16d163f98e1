package event

import (
	"math"
	"time"

	"github.com/heathj/goevents/dom"
	"github.com/pkg/errors"
)

// Props describes an event to create: "type" names it, "bubbles" defaults to
// true, and everything else is copied onto the event.
type Props map[string]any

// specialEvents get a mouse event so their coordinates are settable.
var specialEvents = map[string]string{
	"click":     "MouseEvents",
	"mousedown": "MouseEvents",
	"mouseup":   "MouseEvents",
	"mousemove": "MouseEvents",
}

type dispatcher interface {
	DispatchEvent(e *dom.Event) (bool, error)
}

// NewEvent creates a cancelable native event ready to be triggered. typ may
// carry namespaces; the native type is the bare one and the namespaces limit
// which handlers a trigger reaches.
func NewEvent(typ string, props Props) (*Event, error) {
	return newEvent(typ, props, time.Now)
}

func newEvent(typ string, props Props, now func() time.Time) (*Event, error) {
	spec := parse(typ)
	if spec.typ == "" {
		return nil, errors.Wrapf(ErrInvalidEvent, "empty type in %q", typ)
	}
	iface, ok := specialEvents[spec.typ]
	if !ok {
		iface = "Events"
	}
	ne, err := dom.CreateEvent(iface)
	if err != nil {
		return nil, errors.Wrapf(err, "create %q", typ)
	}
	bubbles := true
	for name, v := range props {
		switch name {
		case "type":
		case "bubbles":
			bubbles = truthy(v)
		default:
			// the platform refuses some names; the rest still apply
			_ = ne.Set(name, v)
		}
	}
	ne.InitEvent(spec.typ, bubbles, true)
	e := wrap(ne, now)
	e.st.ns = spec.ns
	return e, nil
}

func (eng *Engine) toEvent(ev any) (*Event, error) {
	switch v := ev.(type) {
	case string:
		return newEvent(v, nil, eng.now)
	case Props:
		typ, _ := v["type"].(string)
		return newEvent(typ, v, eng.now)
	case map[string]any:
		typ, _ := v["type"].(string)
		return newEvent(typ, v, eng.now)
	case *Event:
		if v == nil {
			break
		}
		return v, nil
	case Native:
		if v == nil {
			break
		}
		return wrap(v, eng.now), nil
	}
	return nil, errors.Wrapf(ErrInvalidEvent, "got %T", ev)
}

// Trigger fires ev at every target in turn, with the platform's own dispatch
// so it captures and bubbles like a real event. ev is a type string, Props,
// an *Event or a Native. args reach every handler after the event.
//
// focus and blur call the target's Focus or Blur instead. Targets that cannot
// dispatch natively get TriggerHandler semantics.
func (eng *Engine) Trigger(targets []Target, ev any, args ...any) error {
	if _, ok := namespaceOnly(ev); ok {
		// nothing native listens for an empty type
		for _, t := range targets {
			if _, native := t.(dispatcher); native || t == nil {
				continue
			}
			if _, err := eng.TriggerHandler([]Target{t}, ev, args...); err != nil {
				return err
			}
		}
		return nil
	}
	e, err := eng.toEvent(ev)
	if err != nil {
		return err
	}
	e.st.args = args
	for _, t := range targets {
		if t == nil {
			continue
		}
		typ := e.Type()
		if fn, ok := focusMethod(t, typ); ok {
			fn()
			continue
		}
		ne, native := e.st.native.(*dom.Event)
		d, canDispatch := t.(dispatcher)
		if e.kind == NativeWrapped && native && canDispatch {
			if _, err := d.DispatchEvent(ne); err != nil {
				return errors.Wrapf(err, "trigger %q", typ)
			}
			continue
		}
		if _, err := eng.TriggerHandler([]Target{t}, e, args...); err != nil {
			return err
		}
	}
	return nil
}

// namespaceOnly reports whether ev is a type token like ".ns" that names
// namespaces but no type.
func namespaceOnly(ev any) (eventSpec, bool) {
	v, ok := ev.(string)
	if !ok {
		return eventSpec{}, false
	}
	spec := parse(v)
	return spec, spec.typ == "" && spec.ns != ""
}

func focusMethod(t Target, typ string) (func(), bool) {
	switch typ {
	case "focus":
		if f, ok := t.(interface{ Focus() }); ok {
			return f.Focus, true
		}
	case "blur":
		if b, ok := t.(interface{ Blur() }); ok {
			return b.Blur, true
		}
	}
	return nil, false
}

// TriggerHandler runs the handlers bound to each target for ev's type and
// namespaces, without the platform: nothing bubbles and no default action
// runs. Every target gets its own snapshot aimed at it. The result is the
// last non-nil value a handler returned.
func (eng *Engine) TriggerHandler(targets []Target, ev any, args ...any) (any, error) {
	var (
		result any
		src    *Event
		q      query
	)
	if spec, ok := namespaceOnly(ev); ok {
		// namespaces alone reach every type bound under them
		q = query{ns: spec.ns}
		src = synthesize(dom.EventFields{Bubbles: true, Cancelable: true}, &state{ns: spec.ns}, eng.now)
	} else {
		var err error
		if src, err = eng.toEvent(ev); err != nil {
			return nil, err
		}
		q = query{typ: src.Type(), ns: src.st.ns}
	}

	for _, t := range targets {
		if t == nil || t.ZID() == 0 {
			continue
		}
		e := snapshot(src, eng.now)
		e.target, e.currentTarget = t, t
		e.st.args = args

		for _, h := range eng.store.find(t.ZID(), q) {
			if h.removed {
				continue
			}
			if r := eng.fire(h, e); r != nil {
				result = r
			}
			if e.IsImmediatePropagationStopped() {
				break
			}
		}
	}
	return result, nil
}

// truthy reports whether v counts as set: nil, false, zero numbers and the
// empty string do not.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case int32:
		return x != 0
	case uint:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	}
	return true
}
