// Package event binds, unbinds and fires handlers on DOM nodes and any other
// value with an identity slot.
//
// Handlers live in a Store keyed by target identity, never by the target
// itself, so a store does not keep nodes alive. It does keep their handlers
// alive: unbind or Dispose a target before dropping it.
//
// Event types carry optional namespaces ("click.menu.main"). Removal and
// namespaced triggers match any handler whose namespaces include all of the
// given ones. Handlers bound with a Selector run for matching descendants of
// the element they are bound to, including descendants added later.
//
// Every handler sees an *Event, a view over the platform event with
// consistent, monotone prevention and propagation flags. Returning false
// from a handler prevents the default and stops propagation.
//
// An Engine is meant to be driven from a single goroutine.
package event
