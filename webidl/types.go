// Package webidl holds the IDL scalar types the DOM is described in.
package webidl

import "time"

// https://w3c.github.io/hr-time/#dom-domhighrestimestamp
//
// Stored as whole milliseconds since the Unix epoch. Zero means "unset".
type DOMHighResTimeStamp uint64

// TimeStamp converts t to a DOMHighResTimeStamp.
func TimeStamp(t time.Time) DOMHighResTimeStamp {
	ms := t.UnixMilli()
	if ms <= 0 {
		return 0
	}
	return DOMHighResTimeStamp(ms)
}

// Time converts the stamp back to wall time.
func (ts DOMHighResTimeStamp) Time() time.Time {
	return time.UnixMilli(int64(ts))
}

// IsZero reports whether the stamp was never set.
func (ts DOMHighResTimeStamp) IsZero() bool { return ts == 0 }
