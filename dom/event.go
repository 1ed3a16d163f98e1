package dom

import (
	"strings"
	"time"

	"github.com/heathj/goevents/webidl"
	"github.com/pkg/errors"
)

type EventPhase uint16

const (
	NoneEventPhase EventPhase = iota
	CapturingPhase
	AtTargetPhase
	BubblingPhase
)

// Interface names accepted by CreateEvent, canonicalised.
const (
	EventInterface         = "Event"
	UIEventInterface       = "UIEvent"
	MouseEventInterface    = "MouseEvent"
	FocusEventInterface    = "FocusEvent"
	KeyboardEventInterface = "KeyboardEvent"
	CustomEventInterface   = "CustomEvent"
)

// https://dom.spec.whatwg.org/#dom-document-createevent, legacy aliases included.
var eventInterfaces = map[string]string{
	"event":         EventInterface,
	"events":        EventInterface,
	"htmlevents":    EventInterface,
	"uievent":       UIEventInterface,
	"uievents":      UIEventInterface,
	"mouseevent":    MouseEventInterface,
	"mouseevents":   MouseEventInterface,
	"focusevent":    FocusEventInterface,
	"keyboardevent": KeyboardEventInterface,
	"customevent":   CustomEventInterface,
}

// EventFields is the fixed set of attributes an event carries. Props holds
// whatever else a script attached to the event.
type EventFields struct {
	Type          string
	Target        Target
	CurrentTarget Target
	RelatedTarget Target
	Phase         EventPhase
	Bubbles       bool
	Cancelable    bool
	IsTrusted     bool
	TimeStamp     webidl.DOMHighResTimeStamp
	Detail        any

	ClientX, ClientY int
	ScreenX, ScreenY int
	Button           int
	Key              string
	AltKey, CtrlKey  bool
	ShiftKey         bool
	MetaKey          bool

	Props map[string]any
}

// Event is https://dom.spec.whatwg.org/#interface-event
type Event struct {
	iface  string
	fields EventFields

	initialized      bool
	dispatching      bool
	defaultPrevented bool
	stopPropagation  bool
	stopImmediate    bool

	path  []Target
	slots map[any]any
}

// CreateEvent is https://dom.spec.whatwg.org/#dom-document-createevent
// The event is uninitialized until InitEvent is called.
func CreateEvent(iface string) (*Event, error) {
	name, ok := eventInterfaces[strings.ToLower(iface)]
	if !ok {
		return nil, errors.Wrapf(ErrNotSupported, "event interface %q", iface)
	}
	return &Event{
		iface:  name,
		fields: EventFields{TimeStamp: webidl.TimeStamp(time.Now())},
	}, nil
}

// NewEvent is the Event constructor: an initialized, untrusted event.
func NewEvent(typ string, bubbles, cancelable bool) *Event {
	e := &Event{iface: EventInterface, fields: EventFields{TimeStamp: webidl.TimeStamp(time.Now())}}
	e.InitEvent(typ, bubbles, cancelable)
	return e
}

func newTrustedEvent(iface, typ string, bubbles, cancelable bool) *Event {
	e := &Event{iface: iface, fields: EventFields{TimeStamp: webidl.TimeStamp(time.Now())}}
	e.InitEvent(typ, bubbles, cancelable)
	e.fields.IsTrusted = true
	return e
}

// InitEvent is https://dom.spec.whatwg.org/#dom-event-initevent
func (e *Event) InitEvent(typ string, bubbles, cancelable bool) {
	if e.dispatching {
		return
	}
	e.initialized = true
	e.stopPropagation = false
	e.stopImmediate = false
	e.defaultPrevented = false
	e.fields.IsTrusted = false
	e.fields.Target = nil
	e.fields.Type = typ
	e.fields.Bubbles = bubbles
	e.fields.Cancelable = cancelable
}

func (e *Event) Interface() string { return e.iface }

func (e *Event) Type() string                          { return e.fields.Type }
func (e *Event) Target() Target                        { return e.fields.Target }
func (e *Event) CurrentTarget() Target                 { return e.fields.CurrentTarget }
func (e *Event) RelatedTarget() Target                 { return e.fields.RelatedTarget }
func (e *Event) EventPhase() EventPhase                { return e.fields.Phase }
func (e *Event) Bubbles() bool                         { return e.fields.Bubbles }
func (e *Event) Cancelable() bool                      { return e.fields.Cancelable }
func (e *Event) IsTrusted() bool                       { return e.fields.IsTrusted }
func (e *Event) DefaultPrevented() bool                { return e.defaultPrevented }
func (e *Event) TimeStamp() webidl.DOMHighResTimeStamp { return e.fields.TimeStamp }
func (e *Event) Detail() any                           { return e.fields.Detail }

// Fields returns a copy of the event's attributes. Props is shared, not copied.
func (e *Event) Fields() EventFields { return e.fields }

// SetTimeStamp overwrites the time stamp of an untrusted event.
func (e *Event) SetTimeStamp(ts webidl.DOMHighResTimeStamp) error {
	if e.fields.IsTrusted {
		return errors.Wrap(ErrReadOnly, "timeStamp of a trusted event")
	}
	e.fields.TimeStamp = ts
	return nil
}

// ReturnValue is the legacy inverse of DefaultPrevented.
// https://dom.spec.whatwg.org/#dom-event-returnvalue
func (e *Event) ReturnValue() bool { return !e.defaultPrevented }

func (e *Event) SetReturnValue(v bool) {
	if !v {
		e.PreventDefault()
	}
}

func (e *Event) StopPropagation() {
	e.stopPropagation = true
}

func (e *Event) StopImmediatePropagation() {
	e.stopPropagation = true
	e.stopImmediate = true
}

func (e *Event) PreventDefault() {
	if e.fields.Cancelable {
		e.defaultPrevented = true
	}
}

// Set assigns a named attribute. Well known attributes land in their field,
// anything else is kept in Props. Read-only attributes are refused.
func (e *Event) Set(name string, v any) error {
	switch name {
	case "type", "target", "currentTarget", "eventPhase", "bubbles", "cancelable",
		"isTrusted", "defaultPrevented":
		return errors.Wrapf(ErrReadOnly, "event attribute %q", name)
	case "timeStamp":
		ts, ok := v.(webidl.DOMHighResTimeStamp)
		if !ok {
			return errors.Wrapf(ErrNotSupported, "timeStamp of type %T", v)
		}
		return e.SetTimeStamp(ts)
	case "relatedTarget":
		t, ok := v.(Target)
		if v != nil && !ok {
			return errors.Wrapf(ErrNotSupported, "relatedTarget of type %T", v)
		}
		e.fields.RelatedTarget = t
	case "detail":
		e.fields.Detail = v
	case "clientX":
		return setInt(&e.fields.ClientX, name, v)
	case "clientY":
		return setInt(&e.fields.ClientY, name, v)
	case "screenX":
		return setInt(&e.fields.ScreenX, name, v)
	case "screenY":
		return setInt(&e.fields.ScreenY, name, v)
	case "button":
		return setInt(&e.fields.Button, name, v)
	case "key":
		s, ok := v.(string)
		if !ok {
			return errors.Wrapf(ErrNotSupported, "key of type %T", v)
		}
		e.fields.Key = s
	case "altKey":
		return setBool(&e.fields.AltKey, name, v)
	case "ctrlKey":
		return setBool(&e.fields.CtrlKey, name, v)
	case "shiftKey":
		return setBool(&e.fields.ShiftKey, name, v)
	case "metaKey":
		return setBool(&e.fields.MetaKey, name, v)
	default:
		if e.fields.Props == nil {
			e.fields.Props = make(map[string]any)
		}
		e.fields.Props[name] = v
	}
	return nil
}

// Prop reads back an attribute stored by Set that has no dedicated field.
func (e *Event) Prop(name string) (any, bool) {
	v, ok := e.fields.Props[name]
	return v, ok
}

// Attach stores a value in a slot private to whoever owns key. Slots are
// invisible to Fields and survive the whole life of the event.
func (e *Event) Attach(key, v any) {
	if e.slots == nil {
		e.slots = make(map[any]any)
	}
	e.slots[key] = v
}

func (e *Event) Attachment(key any) any {
	return e.slots[key]
}

func setInt(dst *int, name string, v any) error {
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case float64:
		*dst = int(n)
	default:
		return errors.Wrapf(ErrNotSupported, "%s of type %T", name, v)
	}
	return nil
}

func setBool(dst *bool, name string, v any) error {
	b, ok := v.(bool)
	if !ok {
		return errors.Wrapf(ErrNotSupported, "%s of type %T", name, v)
	}
	*dst = b
	return nil
}
