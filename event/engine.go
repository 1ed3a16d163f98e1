package event

import (
	"time"

	"github.com/heathj/goevents/dom"
	"github.com/sirupsen/logrus"
)

// listenerTarget is what native registration needs from an element. Targets
// without it can still hold handlers; they only run through TriggerHandler.
type listenerTarget interface {
	AddEventListener(typ string, l *dom.Listener, capture bool)
	RemoveEventListener(typ string, l *dom.Listener, capture bool)
}

// Engine binds, unbinds and fires handlers. It is not safe for concurrent
// use: like the documents it serves, it belongs to one goroutine.
type Engine struct {
	store   *Store
	log     logrus.FieldLogger
	matcher Matcher
	ready   ReadyNotifier
	focusin *bool
	now     func() time.Time
}

func NewEngine(opts ...Option) *Engine {
	c := config{
		log: logrus.StandardLogger(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.store == nil {
		c.store = NewStore()
	}
	if c.matcher == nil {
		c.matcher = domMatcher{log: c.log}
	}
	return &Engine{
		store:   c.store,
		log:     c.log,
		matcher: c.matcher,
		ready:   c.ready,
		focusin: c.focusin,
		now:     c.now,
	}
}

func (eng *Engine) Store() *Store { return eng.store }

func (eng *Engine) focusinSupported(el Target) bool {
	if eng.focusin != nil {
		return *eng.focusin
	}
	if r, ok := el.(focusinReporter); ok {
		return r.FocusinSupported()
	}
	return true
}

// Add binds cb to el for every type in the whitespace separated list types.
// Each type may carry namespaces: "click.menu.main".
func (eng *Engine) Add(el Target, types string, cb *Callback, opts ...BindOption) {
	eng.add(el, types, cb, bindConfig(opts))
}

func (eng *Engine) add(el Target, types string, cb *Callback, o bindOptions) {
	if el == nil || cb == nil || cb.fn == nil {
		eng.log.WithField("method", "add").Debugf("[EVENT]: ignoring %q without target or callback", types)
		return
	}
	zid(cb)
	for _, token := range splitTypes(types) {
		if token == "ready" {
			eng.bindReady(el, cb)
			continue
		}
		spec := parse(token)
		focusin := eng.focusinSupported(el)
		h := &handler{
			id:       zid(el),
			typ:      spec.typ,
			ns:       spec.ns,
			fn:       cb,
			sel:      o.selector,
			data:     o.data,
			once:     o.once,
			element:  el,
			realType: realEvent(spec.typ, focusin),
			capture:  (o.selector != "" && !focusin && isFocus(spec.typ)) || o.capture,
		}

		call := cb.fn
		// delegated handlers see every over/out that reaches a match
		if !h.delegated() && (isHover(spec.typ) || (!focusin && isFocus(spec.typ))) {
			call = enterLeave(el, call)
		}
		if h.once {
			call = eng.autoRemove(h, call)
		}
		if h.delegated() {
			call = eng.delegate(el, h.sel, call)
		}
		h.call = call

		eng.store.add(h)
		if t, ok := el.(listenerTarget); ok {
			h.listener = dom.NewListener(func(ne *dom.Event) {
				eng.fire(h, wrap(ne, eng.now))
			})
			t.AddEventListener(h.realType, h.listener, h.capture)
		}
		eng.log.WithField("method", "add").Debugf("[EVENT]: bound %s as %s on %d", spec, h.realType, h.id)
	}
}

// Remove unbinds handlers from el. An empty types list matches every type;
// a nil cb matches every callback; selector, when given, must match too.
func (eng *Engine) Remove(el Target, types string, cb *Callback, selector string) {
	if el == nil {
		return
	}
	id := el.ZID()
	if id == 0 {
		return
	}
	tokens := splitTypes(types)
	if len(tokens) == 0 {
		tokens = []string{""}
	}
	for _, token := range tokens {
		spec := parse(token)
		for _, h := range eng.store.find(id, query{typ: spec.typ, ns: spec.ns, fn: cb, sel: selector}) {
			eng.strike(h)
		}
	}
}

func (eng *Engine) strike(h *handler) {
	if h.removed {
		return
	}
	eng.store.strike(h)
	if t, ok := h.element.(listenerTarget); ok && h.listener != nil {
		t.RemoveEventListener(h.realType, h.listener, h.capture)
	}
}

// Dispose unbinds everything bound to el and forgets el.
func (eng *Engine) Dispose(el Target) {
	if el == nil || el.ZID() == 0 {
		return
	}
	for _, h := range eng.store.drop(el.ZID()) {
		h.removed = true
		if t, ok := h.element.(listenerTarget); ok && h.listener != nil {
			t.RemoveEventListener(h.realType, h.listener, h.capture)
		}
	}
}

// Handlers lists the live bindings of el in registration order.
func (eng *Engine) Handlers(el Target) []HandlerInfo {
	if el == nil || el.ZID() == 0 {
		return nil
	}
	return eng.store.info(el.ZID())
}

// fire runs one handler for e: the proxy every native listener calls.
func (eng *Engine) fire(h *handler, e *Event) any {
	if h.removed || e.IsImmediatePropagationStopped() {
		return nil
	}
	if ns := e.st.ns; ns != "" && !matchesNamespace(h.ns, ns) {
		return nil
	}
	v := e.withData(h.data)
	result := h.call(h.element, v, v.Args()...)
	if r, ok := result.(bool); ok && !r {
		v.PreventDefault()
		v.StopPropagation()
	}
	return result
}

func (eng *Engine) autoRemove(h *handler, fn Func) Func {
	return func(this Target, e *Event, args ...any) any {
		eng.strike(h)
		return fn(this, e, args...)
	}
}

// delegate runs fn for the closest ancestor-or-self of the event target that
// matches selector, stopping below root.
func (eng *Engine) delegate(root Target, selector string, fn Func) Func {
	return func(_ Target, e *Event, args ...any) any {
		match := eng.closest(e.Target(), selector, root)
		if match == nil {
			return nil
		}
		return fn(match, e.delegated(match, root), args...)
	}
}

func (eng *Engine) closest(from Target, selector string, root Target) *dom.Node {
	n, ok := from.(*dom.Node)
	if !ok {
		return nil
	}
	stop := root.ZID()
	for ; n != nil; n = n.ParentNode() {
		if n.ZID() == stop || n.NodeType() == dom.DocumentNode {
			return nil
		}
		if eng.matcher.Matches(n, selector) {
			return n
		}
	}
	return nil
}

// enterLeave drops events whose related target lies inside bound, which turns
// over/out and the focus pair into their enter/leave forms.
func enterLeave(bound Target, fn Func) Func {
	return func(this Target, e *Event, args ...any) any {
		related, ok := e.RelatedTarget().(*dom.Node)
		if ok && related != nil && contains(bound, related) {
			return nil
		}
		return fn(this, e, args...)
	}
}

func contains(t Target, n *dom.Node) bool {
	switch c := t.(type) {
	case *dom.Node:
		return c.Contains(n)
	case *dom.Document:
		return c.Contains(n)
	}
	return false
}

func (eng *Engine) bindReady(el Target, cb *Callback) {
	r := eng.readyNotifier(el)
	if r == nil {
		eng.log.WithField("method", "bindReady").Warnf("[EVENT]: no document to wait on for %T", el)
		return
	}
	r.Ready(func() {
		e := synthesize(dom.EventFields{Type: "ready", Target: asDOM(el)}, &state{}, eng.now)
		cb.Call(el, e)
	})
}

func (eng *Engine) readyNotifier(el Target) ReadyNotifier {
	if eng.ready != nil {
		return eng.ready
	}
	switch t := el.(type) {
	case ReadyNotifier:
		return t
	case *dom.Node:
		return t.OwnerDocument()
	case *dom.Window:
		return t.Document()
	}
	return nil
}

func asDOM(t Target) dom.Target {
	d, _ := t.(dom.Target)
	return d
}
