package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	d := parsePage(t)
	eng := newEngine()

	s := eng.Select(d.Node, "li.item")
	require.Equal(t, 2, s.Len())
	assert.Same(t, d.GetElementByID("a"), s.Get(0))
	assert.Nil(t, s.Get(2))
	assert.Equal(t, 0, eng.Select(nil, "li").Len())
	assert.Equal(t, 1, eng.Wrap(nil, &Identity{}).Len())
}

func TestOnMapAndOffMap(t *testing.T) {
	d := parsePage(t)
	a := d.GetElementByID("a")
	eng := newEngine()
	var r recorder
	click, key := r.cb("click"), r.cb("key")

	eng.Wrap(a).OnMap(map[string]*Callback{"click": click, "keyup keydown": key})
	assert.Len(t, eng.Handlers(a), 3)

	eng.Wrap(a).OffMap(map[string]*Callback{"keyup keydown": key})
	assert.Equal(t, []string{"click"}, bindings(eng, a))
}

func TestShortcuts(t *testing.T) {
	d := parsePage(t)
	a := d.GetElementByID("a")
	eng := newEngine()
	var r recorder

	s := eng.Wrap(a)
	s.Click(r.cb("click")).DblClick(r.cb("dblclick"))
	s.Click()
	s.DblClick()
	assert.Equal(t, []string{"click", "dblclick"}, r.labels)

	s.Focus()
	assert.Same(t, a, d.ActiveElement())
	s.Blur()
	assert.Nil(t, d.ActiveElement())
	assert.Len(t, ShortcutTypes, 23)
}

func TestLiveAndDie(t *testing.T) {
	d := parsePage(t)
	list := d.GetElementByID("list")
	eng := newEngine()
	var r recorder
	cb := r.cb("live")

	eng.Select(d.Node, "li").Live("click", cb)
	infos := eng.Handlers(d.Body())
	require.Len(t, infos, 1)
	assert.Equal(t, "li", infos[0].Selector)

	li := d.CreateElement("li")
	_, err := list.AppendChild(li)
	require.NoError(t, err)
	li.Click()
	require.Len(t, r.this, 1)
	assert.Same(t, li, r.this[0])

	eng.Select(d.Node, "li").Die("click", cb)
	assert.Empty(t, eng.Handlers(d.Body()))
}

func TestLiveFromContext(t *testing.T) {
	d := parsePage(t)
	list := d.GetElementByID("list")
	eng := newEngine()
	var r recorder

	eng.Select(list, "span").Live("click", r.cb("span"))
	assert.Len(t, eng.Handlers(list), 1)
	d.GetElementByID("b-span").Click()
	assert.Equal(t, []string{"span"}, r.labels)
}

func TestNilCallbackIsIgnored(t *testing.T) {
	d := parsePage(t)
	a := d.GetElementByID("a")
	eng := newEngine()

	eng.Wrap(a).On("click", nil)
	assert.Empty(t, eng.Handlers(a))
	assert.Zero(t, a.ZID(), "no identity is handed out for nothing")
}
