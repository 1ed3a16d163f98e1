package event

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
)

// Func is a handler body. this is the element the handler runs for: the
// element it was bound to, or the matching descendant when it was bound with
// a selector. args are the extra values given to Trigger or TriggerHandler.
// Returning exactly false prevents the default action and stops propagation.
type Func func(this Target, e *Event, args ...any) any

// Callback is a Func with an identity. Handlers are removed by identity, so
// keep the *Callback around to unbind it later.
type Callback struct {
	fn  Func
	zid uint64
}

func NewCallback(fn Func) *Callback {
	return &Callback{fn: fn}
}

func (c *Callback) ZID() uint64      { return c.zid }
func (c *Callback) SetZID(id uint64) { c.zid = id }

// Call runs the callback directly, outside of any dispatch.
func (c *Callback) Call(this Target, e *Event, args ...any) any {
	if c == nil || c.fn == nil {
		return nil
	}
	return c.fn(this, e, args...)
}

// Derive returns a callback running fn that shares c's identity, so that
// removing either removes both.
func (c *Callback) Derive(fn Func) *Callback {
	return &Callback{fn: fn, zid: zid(c)}
}

// False is the shared handler that just returns false.
var False = NewCallback(func(Target, *Event, ...any) any { return false })

type methodKey struct {
	zid  uint64
	name string
}

// methods remembers the identity handed out for a receiver's named method so
// Proxy(obj, "Name") is removable by a second Proxy(obj, "Name").
var methods sync.Map

// Proxy binds fn to a fixed receiver, prepending args to the extra values of
// every call. The result shares fn's identity.
//
// fn is a *Callback, a Func, or a plain func with the Func signature. When
// context is a string, fn is the receiver instead and context names one of
// its methods; the receiver must then be a Target. A nil context keeps the
// receiver given at call time.
func Proxy(fn any, context any, args ...any) (*Callback, error) {
	var base *Callback
	switch f := fn.(type) {
	case *Callback:
		base = f
	case Func:
		base = NewCallback(f)
	case func(Target, *Event, ...any) any:
		base = NewCallback(f)
	default:
		name, ok := context.(string)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidCallback, "got %T", fn)
		}
		m, err := method(fn, name)
		if err != nil {
			return nil, err
		}
		base, context = m, fn
	}
	if base == nil || base.fn == nil {
		return nil, errors.Wrap(ErrInvalidCallback, "nil callback")
	}

	var this Target
	if context != nil {
		t, ok := context.(Target)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidCallback, "context %T cannot receive events", context)
		}
		this = t
	}
	bound := append([]any(nil), args...)
	return base.Derive(func(recv Target, e *Event, extra ...any) any {
		if this != nil {
			recv = this
		}
		return base.fn(recv, e, append(bound[:len(bound):len(bound)], extra...)...)
	}), nil
}

func method(recv any, name string) (*Callback, error) {
	t, ok := recv.(Target)
	if !ok || t == nil {
		return nil, errors.Wrapf(ErrInvalidCallback, "%T has no method %q", recv, name)
	}
	v := reflect.ValueOf(recv).MethodByName(name)
	if !v.IsValid() {
		return nil, errors.Wrapf(ErrInvalidCallback, "%T has no method %q", recv, name)
	}
	f, ok := v.Interface().(func(Target, *Event, ...any) any)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidCallback, "%T.%s has signature %s", recv, name, v.Type())
	}
	cb := NewCallback(f)
	key := methodKey{zid: zid(t), name: name}
	id, _ := methods.LoadOrStore(key, zid(cb))
	cb.zid = id.(uint64)
	return cb, nil
}
