package event

import (
	"slices"
	"strings"
)

// eventSpec is one parsed "type.ns1.ns2" token. ns holds the namespace
// labels sorted and joined by a single space.
type eventSpec struct {
	typ string
	ns  string
}

func parse(token string) eventSpec {
	parts := strings.Split(token, ".")
	labels := slices.Clone(parts[1:])
	slices.Sort(labels)
	return eventSpec{typ: parts[0], ns: strings.Join(labels, " ")}
}

func (s eventSpec) String() string {
	if s.ns == "" {
		return s.typ
	}
	return s.typ + "." + strings.ReplaceAll(s.ns, " ", ".")
}

// matchesNamespace reports whether every label in query is one of the labels
// in stored. An empty query matches anything.
func matchesNamespace(stored, query string) bool {
	if query == "" {
		return true
	}
	have := strings.Fields(stored)
	for _, want := range strings.Fields(query) {
		if !slices.Contains(have, want) {
			return false
		}
	}
	return true
}

// splitTypes splits a whitespace separated type list.
func splitTypes(types string) []string {
	return strings.Fields(types)
}

// hover and focus map the non-bubbling types onto their bubbling twins.
var (
	hover = map[string]string{"mouseenter": "mouseover", "mouseleave": "mouseout"}
	focus = map[string]string{"focus": "focusin", "blur": "focusout"}
)

func isHover(typ string) bool {
	_, ok := hover[typ]
	return ok
}

func isFocus(typ string) bool {
	_, ok := focus[typ]
	return ok
}

// realEvent is the type actually listened for natively.
func realEvent(typ string, focusin bool) string {
	if t, ok := hover[typ]; ok {
		return t
	}
	if t, ok := focus[typ]; ok && focusin {
		return t
	}
	return typ
}
