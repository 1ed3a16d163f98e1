package event

import "github.com/pkg/errors"

var (
	// ErrInvalidCallback is returned by Proxy when it is given neither a
	// callable nor a method name that resolves to one.
	ErrInvalidCallback = errors.New("expected function")

	// ErrInvalidEvent is returned when Trigger or TriggerHandler cannot make
	// an event out of their argument.
	ErrInvalidEvent = errors.New("invalid event")
)
