package script

import (
	"github.com/dop251/goja"
	"github.com/heathj/goevents/event"
)

type method = func(call goja.FunctionCall) goja.Value

// wrapSet exposes s to scripts. Every binding method returns the same
// object, so calls chain.
func (h *Host) wrapSet(s *event.Set) goja.Value {
	o := h.vm.NewObject()
	self := func(fn func(call goja.FunctionCall)) method {
		return func(call goja.FunctionCall) goja.Value {
			fn(call)
			return o
		}
	}
	methods := map[string]method{
		"on": self(func(call goja.FunctionCall) {
			h.on(s, call.Arguments, false)
		}),
		"one": self(func(call goja.FunctionCall) {
			h.on(s, call.Arguments, true)
		}),
		"bind": self(func(call goja.FunctionCall) {
			h.on(s, call.Arguments, false)
		}),
		"off": self(func(call goja.FunctionCall) {
			h.off(s, call.Arguments)
		}),
		"unbind": self(func(call goja.FunctionCall) {
			h.off(s, call.Arguments)
		}),
		"delegate": self(func(call goja.FunctionCall) {
			args := call.Arguments
			if len(args) < 2 {
				return
			}
			h.on(s, append([]goja.Value{args[1], args[0]}, args[2:]...), false)
		}),
		"undelegate": self(func(call goja.FunctionCall) {
			args := call.Arguments
			if len(args) < 2 {
				return
			}
			s.Undelegate(args[0].String(), args[1].String(), h.callback(call.Argument(2)))
		}),
		"live": self(func(call goja.FunctionCall) {
			s.Live(call.Argument(0).String(), h.callback(call.Argument(1)))
		}),
		"die": self(func(call goja.FunctionCall) {
			s.Die(call.Argument(0).String(), h.callback(call.Argument(1)))
		}),
		"ready": self(func(call goja.FunctionCall) {
			s.Ready(h.callback(call.Argument(0)))
		}),
		"trigger": self(func(call goja.FunctionCall) {
			if err := s.Trigger(eventArg(call.Argument(0)), triggerArgs(call.Argument(1))...); err != nil {
				h.throw(err)
			}
		}),
		"triggerHandler": func(call goja.FunctionCall) goja.Value {
			res, err := s.TriggerHandler(eventArg(call.Argument(0)), triggerArgs(call.Argument(1))...)
			if err != nil {
				h.throw(err)
			}
			return h.vm.ToValue(res)
		},
		"get": func(call goja.FunctionCall) goja.Value {
			return h.vm.ToValue(s.Get(int(call.Argument(0).ToInteger())))
		},
	}
	for _, typ := range event.ShortcutTypes {
		methods[typ] = self(func(call goja.FunctionCall) {
			if len(call.Arguments) == 0 {
				if err := s.Trigger(typ); err != nil {
					h.throw(err)
				}
				return
			}
			s.On(typ, h.callback(call.Argument(0)))
		})
	}
	for name, m := range methods {
		h.must(o.Set(name, m))
	}
	h.must(o.Set("length", s.Len()))
	return o
}

func rest(vs []goja.Value, from int) []goja.Value {
	if len(vs) <= from {
		return nil
	}
	return vs[from:]
}

// on handles on(types, [selector], [data], fn) and on({types: fn}, [selector], [data]).
func (h *Host) on(s *event.Set, args []goja.Value, once bool) {
	if len(args) == 0 {
		return
	}
	bind := s.On
	if once {
		bind = s.One
	}
	if m, ok := h.handlerMap(args[0]); ok {
		opts := h.bindOptions(args[1:])
		for types, cb := range m {
			bind(types, cb, opts...)
		}
		return
	}
	types := args[0].String()
	if len(args) < 2 {
		return
	}
	cb := h.callback(args[len(args)-1])
	bind(types, cb, h.bindOptions(args[1:len(args)-1])...)
}

// bindOptions reads the optional selector and data arguments.
func (h *Host) bindOptions(args []goja.Value) []event.BindOption {
	var opts []event.BindOption
	if len(args) == 0 {
		return nil
	}
	if sel, ok := args[0].Export().(string); ok {
		opts = append(opts, event.Selector(sel))
		args = args[1:]
	} else if len(args) > 1 && nullish(args[0]) {
		args = args[1:]
	}
	if len(args) > 0 && !nullish(args[0]) {
		opts = append(opts, event.Data(args[0].Export()))
	}
	return opts
}

// off handles off(types, [selector], [fn]) and off({types: fn}, [selector]).
func (h *Host) off(s *event.Set, args []goja.Value) {
	if len(args) == 0 {
		s.Off("", nil)
		return
	}
	if m, ok := h.handlerMap(args[0]); ok {
		opts := h.bindOptions(rest(args, 1))
		for types, cb := range m {
			s.Off(types, cb, opts...)
		}
		return
	}
	var (
		cb   *event.Callback
		opts []event.BindOption
	)
	for _, a := range args[1:] {
		if sel, ok := a.Export().(string); ok {
			opts = append(opts, event.Selector(sel))
			continue
		}
		cb = h.callback(a)
	}
	s.Off(args[0].String(), cb, opts...)
}

func (h *Host) handlerMap(v goja.Value) (map[string]*event.Callback, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	if _, isFn := goja.AssertFunction(obj); isFn || obj.ClassName() != "Object" {
		return nil, false
	}
	m := make(map[string]*event.Callback)
	for _, key := range obj.Keys() {
		m[key] = h.callback(obj.Get(key))
	}
	return m, true
}
