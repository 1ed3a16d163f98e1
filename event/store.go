package event

import "github.com/heathj/goevents/dom"

// handler is one binding. The record outlives its removal only as long as
// something still references it; the store itself forgets it.
type handler struct {
	id       uint64
	typ      string
	ns       string
	fn       *Callback
	sel      string
	data     any
	once     bool
	capture  bool
	element  Target
	index    int
	realType string

	// call is the wrapped body: delegation outside, once in the middle, the
	// hover guard innermost.
	call     Func
	listener *dom.Listener
	removed  bool
}

func (h *handler) delegated() bool { return h.sel != "" }

type query struct {
	typ string
	ns  string
	fn  *Callback
	sel string
}

func (q query) matches(h *handler) bool {
	return h != nil && !h.removed &&
		(q.typ == "" || h.typ == q.typ) &&
		matchesNamespace(h.ns, q.ns) &&
		(q.fn == nil || zid(h.fn) == zid(q.fn)) &&
		(q.sel == "" || h.sel == q.sel)
}

// Store maps element identities to their handlers in registration order.
// Removal leaves a hole, so a handler's index never changes and is never
// reused, not even after the element's entry is dropped.
type Store struct {
	sets map[uint64][]*handler
	// base is the index of sets[id][0]; it grows past every dropped entry.
	base map[uint64]int
}

func NewStore() *Store {
	return &Store{
		sets: make(map[uint64][]*handler),
		base: make(map[uint64]int),
	}
}

func (s *Store) add(h *handler) {
	h.index = s.base[h.id] + len(s.sets[h.id])
	s.sets[h.id] = append(s.sets[h.id], h)
}

func (s *Store) find(id uint64, q query) []*handler {
	var out []*handler
	for _, h := range s.sets[id] {
		if q.matches(h) {
			out = append(out, h)
		}
	}
	return out
}

func (s *Store) strike(h *handler) {
	h.removed = true
	set := s.sets[h.id]
	if i := h.index - s.base[h.id]; i >= 0 && i < len(set) && set[i] == h {
		set[i] = nil
	}
}

// drop forgets everything bound to id and returns what was still live.
func (s *Store) drop(id uint64) []*handler {
	var live []*handler
	for _, h := range s.sets[id] {
		if h != nil {
			live = append(live, h)
		}
	}
	s.base[id] += len(s.sets[id])
	delete(s.sets, id)
	return live
}

// Len is the number of elements the store holds an entry for.
func (s *Store) Len() int { return len(s.sets) }

// Live is the number of handlers still bound to id.
func (s *Store) Live(id uint64) int {
	n := 0
	for _, h := range s.sets[id] {
		if h != nil {
			n++
		}
	}
	return n
}

// HandlerInfo describes one live binding.
type HandlerInfo struct {
	Type      string
	Namespace string
	Selector  string
	Index     int
	Capture   bool
	Once      bool
}

func (s *Store) info(id uint64) []HandlerInfo {
	var out []HandlerInfo
	for _, h := range s.sets[id] {
		if h == nil {
			continue
		}
		out = append(out, HandlerInfo{
			Type:      h.typ,
			Namespace: h.ns,
			Selector:  h.sel,
			Index:     h.index,
			Capture:   h.capture,
			Once:      h.once,
		})
	}
	return out
}
