package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentSkeleton(t *testing.T) {
	d := NewDocument()
	require.NotNil(t, d.DocumentElement())
	require.NotNil(t, d.Head())
	require.NotNil(t, d.Body())
	assert.Equal(t, Loading, d.ReadyState())
	assert.Same(t, d.Node, d.Body().ParentNode().ParentNode())
}

func TestLifecycle(t *testing.T) {
	d := NewDocument()
	var tr trace
	d.AddEventListener("readystatechange", NewListener(func(e *Event) {
		tr = append(tr, string(d.ReadyState()))
	}), false)
	d.AddEventListener("DOMContentLoaded", tr.listener("DOMContentLoaded"), false)
	d.Window().AddEventListener("load", tr.listener("load"), false)

	d.Complete()
	d.Complete()
	assert.Equal(t, trace{"interactive", "DOMContentLoaded", "complete", "load"}, tr)
}

func TestReadyFiresOnceOnFirstSignal(t *testing.T) {
	d := NewDocument()
	calls := 0
	d.Ready(func() { calls++ })

	d.Interactive()
	assert.Equal(t, 1, calls)
	d.Complete()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.ListenerCount("DOMContentLoaded"))
	assert.Equal(t, 0, d.Window().ListenerCount("load"))
}

func TestReadyWhenAlreadyReadyIsDeferred(t *testing.T) {
	d := NewDocument(WithReadyState(Complete))
	calls := 0
	d.Ready(func() { calls++ })

	assert.Equal(t, 0, calls, "never inline")
	assert.Equal(t, 1, d.Window().Pending())
	assert.Equal(t, 1, d.Window().RunTasks())
	assert.Equal(t, 1, calls)
}

func TestRunTasksDrainsNestedTasks(t *testing.T) {
	w := NewDocument().Window()
	var order []int
	w.SetTimeout(func() {
		order = append(order, 1)
		w.SetTimeout(func() { order = append(order, 3) })
	})
	w.SetTimeout(func() { order = append(order, 2) })

	assert.Equal(t, 3, w.RunTasks())
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestFocus(t *testing.T) {
	d := parsePage(t, listPage)
	outer := d.GetElementByID("outer")
	a := d.GetElementByID("a")
	b := d.GetElementByID("b")

	var tr trace
	for _, typ := range []string{"focus", "blur", "focusin", "focusout"} {
		outer.AddEventListener(typ, tr.listener("outer:"+typ), false)
	}
	b.AddEventListener("focus", NewListener(func(e *Event) {
		tr = append(tr, "b:focus")
		assert.Same(t, a, e.RelatedTarget())
	}), false)

	a.Focus()
	b.Focus()
	assert.Same(t, b, d.ActiveElement())
	assert.Equal(t, trace{"outer:focusin", "outer:focusout", "b:focus", "outer:focusin"}, tr)

	b.Blur()
	assert.Nil(t, d.ActiveElement())
}

func TestFocusWithoutFocusin(t *testing.T) {
	d := parsePage(t, listPage, WithFocusinSupport(false))
	outer := d.GetElementByID("outer")
	a := d.GetElementByID("a")

	var tr trace
	outer.AddEventListener("focusin", tr.listener("focusin"), false)
	outer.AddEventListener("focus", tr.listener("capture"), true)

	a.Focus()
	assert.Equal(t, trace{"capture"}, tr)
	assert.False(t, d.FocusinSupported())
}

func TestDetachedNodesCannotFocus(t *testing.T) {
	d := NewDocument()
	p := d.CreateElement("p")
	p.Focus()
	assert.Nil(t, d.ActiveElement())
}

func TestRemovingFocusedNodeClearsActiveElement(t *testing.T) {
	d := parsePage(t, listPage)
	a := d.GetElementByID("a")
	a.Focus()
	_, err := d.GetElementByID("list").RemoveChild(a)
	require.NoError(t, err)
	assert.Nil(t, d.ActiveElement())
}
