package dom

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage = `<!DOCTYPE html><html><head></head><body>
<div id="outer"><ul id="list"><li id="a" class="item">A</li><li id="b" class="item"><span id="b-span">B</span></li></ul></div>
</body></html>`

func parsePage(t *testing.T, markup string, opts ...Option) *Document {
	t.Helper()
	d, err := Parse(strings.NewReader(markup), opts...)
	require.NoError(t, err)
	return d
}

func TestNodeWrappersAreStable(t *testing.T) {
	d := parsePage(t, listPage)
	a := d.GetElementByID("a")
	require.NotNil(t, a)
	assert.Same(t, a, d.GetElementByID("a"))
	assert.Same(t, a.ParentNode(), d.GetElementByID("list"))
	assert.Same(t, a.NextSibling(), d.GetElementByID("b"))
	assert.Equal(t, "LI", a.NodeName())
	assert.Equal(t, "li", a.LocalName())
	assert.Equal(t, "A", a.TextContent())
}

func TestContainsIsInclusive(t *testing.T) {
	d := parsePage(t, listPage)
	list := d.GetElementByID("list")
	span := d.GetElementByID("b-span")

	assert.True(t, list.Contains(list))
	assert.True(t, list.Contains(span))
	assert.False(t, span.Contains(list))
	assert.False(t, list.Contains(nil))
}

func TestAppendChildMovesNode(t *testing.T) {
	d := parsePage(t, listPage)
	list := d.GetElementByID("list")
	outer := d.GetElementByID("outer")
	a := d.GetElementByID("a")

	_, err := outer.AppendChild(a)
	require.NoError(t, err)
	assert.Same(t, outer, a.ParentNode())
	assert.Equal(t, 1, len(list.ChildNodes()))
	assert.Same(t, a, outer.LastChild())
}

func TestInsertBefore(t *testing.T) {
	d := parsePage(t, listPage)
	list := d.GetElementByID("list")
	b := d.GetElementByID("b")

	li := d.CreateElement("LI")
	li.SetAttribute("id", "new")
	_, err := list.InsertBefore(li, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "new", "b"}, ids(list.ChildNodes()))
	assert.True(t, li.IsConnected())
}

func TestHierarchyErrors(t *testing.T) {
	d := parsePage(t, listPage)
	outer := d.GetElementByID("outer")
	span := d.GetElementByID("b-span")
	text := d.CreateTextNode("x")

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"ancestor into descendant", func() error { _, err := span.AppendChild(outer); return err }, ErrHierarchyRequest},
		{"self", func() error { _, err := outer.AppendChild(outer); return err }, ErrHierarchyRequest},
		{"into text", func() error { _, err := text.AppendChild(d.CreateElement("p")); return err }, ErrHierarchyRequest},
		{"document", func() error { _, err := outer.AppendChild(d.Node); return err }, ErrHierarchyRequest},
		{"foreign ref", func() error { _, err := outer.InsertBefore(d.CreateElement("p"), span); return err }, ErrNotFound},
		{"remove non child", func() error { _, err := outer.RemoveChild(span); return err }, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Cause(tt.run()))
		})
	}
}

func TestAdoptAcrossDocuments(t *testing.T) {
	src := parsePage(t, listPage)
	dst := NewDocument()
	a := src.GetElementByID("a")

	_, err := dst.Body().AppendChild(a)
	require.NoError(t, err)
	assert.Same(t, dst, a.OwnerDocument())
	assert.Nil(t, src.GetElementByID("a"))
	assert.Same(t, a, dst.GetElementByID("a"))
}

func TestSelectors(t *testing.T) {
	d := parsePage(t, listPage)
	span := d.GetElementByID("b-span")
	list := d.GetElementByID("list")

	ok, err := span.Matches("li > span, p")
	require.NoError(t, err)
	assert.True(t, ok)

	li, err := span.Closest("li.item")
	require.NoError(t, err)
	assert.Equal(t, "b", li.ID())

	items, err := list.QuerySelectorAll(".item")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(items))

	first, err := list.QuerySelector(".item span, .item")
	require.NoError(t, err)
	assert.Equal(t, "a", first.ID(), "first match in document order")

	missing, err := list.QuerySelector("p")
	require.NoError(t, err)
	assert.Nil(t, missing)

	none, err := list.QuerySelectorAll("ul")
	require.NoError(t, err)
	assert.Empty(t, none, "the root is not part of its own query")

	_, err = span.Matches("li[")
	assert.Equal(t, ErrSyntax, errors.Cause(err))
}

func TestParseFragment(t *testing.T) {
	d := parsePage(t, listPage)
	list := d.GetElementByID("list")

	nodes, err := d.ParseFragment(`<li id="c">C</li>`, list)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.False(t, nodes[0].IsConnected())

	_, err = list.AppendChild(nodes[0])
	require.NoError(t, err)
	assert.Same(t, nodes[0], d.GetElementByID("c"))
}

func TestNodeListHelpers(t *testing.T) {
	d := parsePage(t, listPage)
	nl := d.GetElementByID("list").ChildNodes()
	b := d.GetElementByID("b")

	assert.Equal(t, 1, nl.Contains(b))
	assert.Same(t, b, nl.Remove(1))
	assert.Equal(t, -1, nl.Contains(b))
	assert.Nil(t, nl.Remove(5))
}

func ids(nl NodeList) []string {
	out := make([]string, 0, len(nl))
	for _, n := range nl.Elements() {
		out = append(out, n.ID())
	}
	return out
}
