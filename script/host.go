// Package script runs JavaScript against a document, with the event engine
// exposed to scripts through a small chainable $ API:
//
//	$('#list').on('click', 'li', function (e) { ... })
//	$(fn)                       // ready
//	$.proxy(fn, context, args)  // stable identity, fixed this
//	$.Event('click.ns', {clientX: 1})
//
// Go values (nodes, the document, events made by $.Event) are exposed with
// their methods lower-camel-cased: document.getElementByID('a').click().
package script

import (
	"slices"

	"github.com/dop251/goja"
	"github.com/heathj/goevents/dom"
	"github.com/heathj/goevents/event"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Host owns a goja runtime wired to one document and one engine. Like both
// of those it must be used from a single goroutine.
type Host struct {
	vm  *goja.Runtime
	doc *dom.Document
	eng *event.Engine
	log logrus.FieldLogger

	// callbacks gives each JS function one identity for its whole life, so
	// passing the same function to off removes what on added.
	callbacks map[*goja.Object]*event.Callback
}

func New(doc *dom.Document, eng *event.Engine, log logrus.FieldLogger) *Host {
	if log == nil {
		log = logrus.StandardLogger()
	}
	h := &Host{
		vm:        goja.New(),
		doc:       doc,
		eng:       eng,
		log:       log,
		callbacks: make(map[*goja.Object]*event.Callback),
	}
	h.vm.SetFieldNameMapper(goja.UncapFieldNameMapper())

	dollar := h.vm.ToValue(h.dollar).ToObject(h.vm)
	h.must(dollar.Set("proxy", h.proxy))
	h.must(dollar.Set("Event", h.newEvent))
	h.must(h.vm.Set("$", dollar))
	h.must(h.vm.Set("document", doc))
	h.must(h.vm.Set("window", doc.Window()))
	return h
}

func (h *Host) must(err error) {
	if err != nil {
		// only fails for invalid property names
		panic(err)
	}
}

func (h *Host) Runtime() *goja.Runtime { return h.vm }

// Run evaluates src. Exceptions, including ones thrown by handlers the
// script triggered, come back as errors.
func (h *Host) Run(src string) (goja.Value, error) {
	v, err := h.vm.RunString(src)
	if err != nil {
		h.log.WithField("method", "Run").WithError(err).Debug("[SCRIPT]: script failed")
		return nil, errors.Wrap(err, "run script")
	}
	return v, nil
}

// throw raises err in the running script.
func (h *Host) throw(err error) {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		panic(ex)
	}
	panic(h.vm.NewGoError(err))
}

func nullish(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

// callback returns the identity-stable callback for a JS function, or
// event.False for a literal false.
func (h *Host) callback(v goja.Value) *event.Callback {
	if nullish(v) {
		return nil
	}
	if b, ok := v.Export().(bool); ok && !b {
		return event.False
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		panic(h.vm.NewTypeError("expected function, got %s", v))
	}
	obj := v.ToObject(h.vm)
	if cb, ok := h.callbacks[obj]; ok {
		return cb
	}
	cb := event.NewCallback(func(this event.Target, e *event.Event, args ...any) any {
		return h.call(fn, h.vm.ToValue(this), e, nil, args)
	})
	h.callbacks[obj] = cb
	return cb
}

func (h *Host) call(fn goja.Callable, this goja.Value, e *event.Event, bound []goja.Value, args []any) any {
	in := append(slices.Clone(bound), h.eventValue(e))
	for _, a := range args {
		in = append(in, h.vm.ToValue(a))
	}
	res, err := fn(this, in...)
	if err != nil {
		h.throw(err)
	}
	if res == nil {
		return nil
	}
	return res.Export()
}

// eventValue presents e the way scripts expect: fields as properties,
// actions and predicates as methods.
func (h *Host) eventValue(e *event.Event) goja.Value {
	if e == nil {
		return goja.Undefined()
	}
	o := h.vm.NewObject()
	f := e.Fields()
	for name, v := range map[string]any{
		"type":                          e.Type(),
		"target":                        e.Target(),
		"currentTarget":                 e.CurrentTarget(),
		"relatedTarget":                 e.RelatedTarget(),
		"liveFired":                     e.LiveFired(),
		"data":                          e.Data(),
		"timeStamp":                     uint64(e.TimeStamp()),
		"bubbles":                       e.Bubbles(),
		"cancelable":                    e.Cancelable(),
		"isTrusted":                     e.IsTrusted(),
		"detail":                        e.Detail(),
		"clientX":                       f.ClientX,
		"clientY":                       f.ClientY,
		"key":                           f.Key,
		"originalEvent":                 e.OriginalEvent(),
		"preventDefault":                e.PreventDefault,
		"stopPropagation":               e.StopPropagation,
		"stopImmediatePropagation":      e.StopImmediatePropagation,
		"isDefaultPrevented":            e.IsDefaultPrevented,
		"isPropagationStopped":          e.IsPropagationStopped,
		"isImmediatePropagationStopped": e.IsImmediatePropagationStopped,
	} {
		h.must(o.Set(name, v))
	}
	for name, v := range f.Props {
		if o.Get(name) == nil {
			h.must(o.Set(name, v))
		}
	}
	return o
}

// dollar is $: a selector string, a node, or a ready callback.
func (h *Host) dollar(call goja.FunctionCall) goja.Value {
	arg := call.Argument(0)
	if _, ok := goja.AssertFunction(arg); ok {
		return h.wrapSet(h.eng.Wrap(h.doc).Ready(h.callback(arg)))
	}
	switch v := arg.Export().(type) {
	case string:
		return h.wrapSet(h.eng.Select(h.doc.Node, v))
	case event.Target:
		return h.wrapSet(h.eng.Wrap(v))
	case []any:
		var targets []event.Target
		for _, x := range v {
			if t, ok := x.(event.Target); ok {
				targets = append(targets, t)
			}
		}
		return h.wrapSet(h.eng.Wrap(targets...))
	}
	return h.wrapSet(h.eng.Wrap())
}

// proxy is $.proxy(fn, context, ...args) and $.proxy(object, 'method').
func (h *Host) proxy(call goja.FunctionCall) goja.Value {
	fnv, this := call.Argument(0), call.Argument(1)
	var bound []goja.Value
	if len(call.Arguments) > 2 {
		bound = slices.Clone(call.Arguments[2:])
	}
	if name, ok := this.Export().(string); ok && !nullish(fnv) {
		if _, isFn := goja.AssertFunction(fnv); !isFn {
			obj := fnv.ToObject(h.vm)
			fnv, this = obj.Get(name), obj
		}
	}
	fn, ok := goja.AssertFunction(fnv)
	if !ok {
		h.throw(errors.Wrapf(event.ErrInvalidCallback, "proxy of %s", fnv))
	}

	derived := h.callback(fnv).Derive(func(_ event.Target, e *event.Event, args ...any) any {
		return h.call(fn, this, e, bound, args)
	})
	wrapper := h.vm.ToValue(func(c goja.FunctionCall) goja.Value {
		res, err := fn(this, append(slices.Clone(bound), c.Arguments...)...)
		if err != nil {
			h.throw(err)
		}
		return res
	})
	h.callbacks[wrapper.ToObject(h.vm)] = derived
	return wrapper
}

// newEvent is $.Event(type, props).
func (h *Host) newEvent(call goja.FunctionCall) goja.Value {
	var props event.Props
	if m, ok := call.Argument(1).Export().(map[string]any); ok {
		props = event.Props(m)
	}
	e, err := event.NewEvent(call.Argument(0).String(), props)
	if err != nil {
		h.throw(err)
	}
	return h.vm.ToValue(e)
}

// eventArg turns a trigger argument into something the engine accepts.
func eventArg(v goja.Value) any {
	switch x := v.Export().(type) {
	case map[string]any:
		return event.Props(x)
	default:
		return x
	}
}

// triggerArgs spreads an array payload into separate handler arguments; any
// other value is passed as one.
func triggerArgs(v goja.Value) []any {
	if v == nil || goja.IsUndefined(v) {
		return nil
	}
	if list, ok := v.Export().([]any); ok {
		return list
	}
	return []any{v.Export()}
}
