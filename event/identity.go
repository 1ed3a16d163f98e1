package event

import "sync/atomic"

// Target is anything handlers can be bound to. The identity slot is written
// the first time the engine sees the target; zero means unassigned. The
// engine never holds on to a target through its identity.
type Target interface {
	ZID() uint64
	SetZID(id uint64)
}

// Identity gives a non-DOM type an identity slot. Embed it to bind handlers
// to arbitrary objects; such targets only ever see TriggerHandler dispatch.
type Identity struct {
	zid uint64
}

func (i *Identity) ZID() uint64      { return i.zid }
func (i *Identity) SetZID(id uint64) { i.zid = id }

var lastID atomic.Uint64

// zid returns t's identity, assigning the next free one on first use.
func zid(t Target) uint64 {
	if id := t.ZID(); id != 0 {
		return id
	}
	id := lastID.Add(1)
	t.SetZID(id)
	return id
}
