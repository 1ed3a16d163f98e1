package script

import (
	"strings"
	"testing"

	"github.com/heathj/goevents/dom"
	"github.com/heathj/goevents/event"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><head></head><body>
<ul id="list"><li id="a">A</li><li id="b">B</li></ul>
</body></html>`

func newHost(t *testing.T) (*Host, *dom.Document) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	d, err := dom.Parse(strings.NewReader(page), dom.WithLogger(logger))
	require.NoError(t, err)
	return New(d, event.NewEngine(event.WithLogger(logger)), logger), d
}

func run(t *testing.T, h *Host, src string) string {
	t.Helper()
	v, err := h.Run(src)
	require.NoError(t, err)
	return v.String()
}

func TestScripts(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "delegated click",
			src: `var hits = [];
				$('#list').on('click', 'li', function (e) { hits.push(e.currentTarget.textContent()); });
				document.getElementByID('a').click();
				$('#b').trigger('click');
				hits.join(',')`,
			want: "A,B",
		},
		{
			name: "off with the same function",
			src: `var n = 0;
				function f() { n++; }
				$('#a').on('click', f).off('click', f);
				$('#a').trigger('click');
				n`,
			want: "0",
		},
		{
			name: "proxy by method name",
			src: `var o = {n: 0, inc: function () { this.n++; }};
				$('#a').on('click', $.proxy(o, 'inc'));
				$('#a').trigger('click');
				$('#a').off('click', $.proxy(o, 'inc'));
				$('#a').trigger('click');
				o.n`,
			want: "1",
		},
		{
			name: "proxy bound args come first",
			src: `var got;
				var p = $.proxy(function (x, e) { got = x + ':' + e.type; }, null, 'bound');
				$('#a').one('click', p);
				$('#a').click();
				got`,
			want: "bound:click",
		},
		{
			name: "return false",
			src:  `$('#a').on('click', false); String(document.getElementByID('a').click())`,
			want: "false",
		},
		{
			name: "triggerHandler result and args",
			src:  `$('#a').on('custom', function (e, x) { return x * 2; }); $('#a').triggerHandler('custom', 21)`,
			want: "42",
		},
		{
			name: "event factory",
			src: `var seen;
				$('#a').click(function (e) { seen = e.clientX; });
				$('#a').trigger($.Event('click', {clientX: 3}));
				seen`,
			want: "3",
		},
		{
			name: "data",
			src: `var seen;
				$('#a').on('click', {k: 7}, function (e) { seen = e.data.k; });
				$('#a').click();
				seen`,
			want: "7",
		},
		{
			name: "handler map",
			src: `var log = [];
				$('#a').on({click: function () { log.push('c'); }, 'keyup keydown': function (e) { log.push(e.type); }});
				$('#a').trigger('keyup').trigger('click');
				log.join(',')`,
			want: "keyup,c",
		},
		{
			name: "namespaced off",
			src: `var log = [];
				$('#a').on('click.one', function () { log.push(1); }).on('click.two', function () { log.push(2); });
				$('#a').off('.one').trigger('click');
				log.join(',')`,
			want: "2",
		},
		{
			name: "trigger spreads array args",
			src: `var seen;
				$('#a').on('click', function (e, x, y) { seen = typeof e + ':' + x + ':' + y; });
				$('#a').trigger('click', [1, 2]);
				seen`,
			want: "object:1:2",
		},
		{
			name: "triggerHandler keeps a single arg whole",
			src:  `$('#a').on('custom', function (e, o) { return o.k; }); $('#a').triggerHandler('custom', {k: 'v'})`,
			want: "v",
		},
		{
			name: "falsy bubbles",
			src: `var log = [];
				$('#list').on('click', function () { log.push('list'); });
				$('#a').on('click', function () { log.push('a'); });
				$('#a').trigger({type: 'click', bubbles: 0});
				log.join(',')`,
			want: "a",
		},
		{
			name: "namespace only triggerHandler",
			src: `var log = [];
				$('#a').on('click.ns', function (e) { log.push('c'); }).on('keyup.ns', function () { log.push('k'); }).on('keyup', function () { log.push('x'); });
				$('#a').triggerHandler('.ns');
				log.join(',')`,
			want: "c,k",
		},
		{
			name: "length",
			src:  `$('li').length + $('p').length`,
			want: "2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := newHost(t)
			assert.Equal(t, tt.want, run(t, h, tt.src))
		})
	}
}

func TestReady(t *testing.T) {
	h, d := newHost(t)
	run(t, h, `var ready = false; $(function () { ready = true; });`)
	assert.False(t, h.Runtime().Get("ready").ToBoolean())
	d.Complete()
	assert.True(t, h.Runtime().Get("ready").ToBoolean())
}

func TestHandlerExceptionsReachTheScript(t *testing.T) {
	h, _ := newHost(t)
	_, err := h.Run(`$('#a').on('click', function () { throw new Error('boom'); }); $('#a').trigger('click');`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestInvalidProxy(t *testing.T) {
	h, _ := newHost(t)
	_, err := h.Run(`$.proxy(42)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), event.ErrInvalidCallback.Error())
}
