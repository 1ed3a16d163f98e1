package event

import (
	"strings"
	"testing"

	"github.com/heathj/goevents/dom"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const listPage = `<!DOCTYPE html><html><head></head><body>
<div id="outer"><ul id="list"><li id="a" class="item">A</li><li id="b" class="item"><span id="b-span">B</span></li></ul></div>
</body></html>`

func parsePage(t *testing.T, opts ...dom.Option) *dom.Document {
	t.Helper()
	d, err := dom.Parse(strings.NewReader(listPage), opts...)
	require.NoError(t, err)
	return d
}

func newEngine(opts ...Option) *Engine {
	logger, _ := test.NewNullLogger()
	return NewEngine(append([]Option{WithLogger(logger)}, opts...)...)
}

// recorder collects what its callbacks saw.
type recorder struct {
	labels []string
	this   []Target
	events []*Event
	args   [][]any
}

func (r *recorder) cb(label string) *Callback {
	return r.returning(label, nil)
}

func (r *recorder) returning(label string, result any) *Callback {
	return NewCallback(func(this Target, e *Event, args ...any) any {
		r.labels = append(r.labels, label)
		r.this = append(r.this, this)
		r.events = append(r.events, e)
		r.args = append(r.args, args)
		return result
	})
}

func (r *recorder) last() *Event {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func bindings(eng *Engine, el Target) []string {
	var out []string
	for _, h := range eng.Handlers(el) {
		out = append(out, eventSpec{typ: h.Type, ns: h.Namespace}.String())
	}
	return out
}
