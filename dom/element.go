package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// LocalName is the lower-case tag name of an element.
func (n *Node) LocalName() string {
	if n.h.Type != html.ElementNode {
		return ""
	}
	return n.h.Data
}

func (n *Node) GetAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range n.h.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (n *Node) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i := range n.h.Attr {
		if n.h.Attr[i].Namespace == "" && n.h.Attr[i].Key == name {
			n.h.Attr[i].Val = value
			return
		}
	}
	n.h.Attr = append(n.h.Attr, html.Attribute{Key: name, Val: value})
}

func (n *Node) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range n.h.Attr {
		if a.Namespace == "" && a.Key == name {
			n.h.Attr = append(n.h.Attr[:i], n.h.Attr[i+1:]...)
			return
		}
	}
}

func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return id
}

func (n *Node) ClassName() string {
	c, _ := n.GetAttribute("class")
	return c
}

// Matches is https://dom.spec.whatwg.org/#dom-element-matches
func (n *Node) Matches(selectors string) (bool, error) {
	m, err := n.doc.compile(selectors)
	if err != nil {
		return false, err
	}
	return n.h.Type == html.ElementNode && m.Match(n.h), nil
}

// Closest is https://dom.spec.whatwg.org/#dom-element-closest
func (n *Node) Closest(selectors string) (*Node, error) {
	m, err := n.doc.compile(selectors)
	if err != nil {
		return nil, err
	}
	for h := n.h; h != nil; h = h.Parent {
		if h.Type == html.ElementNode && m.Match(h) {
			return n.doc.wrap(h), nil
		}
	}
	return nil, nil
}

// QuerySelector is https://dom.spec.whatwg.org/#dom-parentnode-queryselector
func (n *Node) QuerySelector(selectors string) (*Node, error) {
	m, err := n.doc.compile(selectors)
	if err != nil {
		return nil, err
	}
	return n.doc.wrap(cascadia.Query(n.h, m)), nil
}

// QuerySelectorAll is https://dom.spec.whatwg.org/#dom-parentnode-queryselectorall
// The node itself is never part of the result.
func (n *Node) QuerySelectorAll(selectors string) (NodeList, error) {
	m, err := n.doc.compile(selectors)
	if err != nil {
		return nil, err
	}
	var nl NodeList
	for _, h := range cascadia.QueryAll(n.h, m) {
		nl = append(nl, n.doc.wrap(h))
	}
	return nl, nil
}

// Click fires a trusted, bubbling, cancelable click at the element.
// https://html.spec.whatwg.org/#dom-click
func (n *Node) Click() bool {
	e := newTrustedEvent(MouseEventInterface, "click", true, true)
	ok, _ := n.DispatchEvent(e)
	return ok
}

// Focus moves the document's focus to n.
// https://html.spec.whatwg.org/#dom-focus
func (n *Node) Focus() {
	d := n.doc
	if d == nil || n.h.Type != html.ElementNode || !n.IsConnected() {
		return
	}
	prev := d.activeElement
	if prev == n {
		return
	}
	if prev != nil {
		prev.blurTo(n)
	}
	d.activeElement = n
	n.fireFocus("focus", false, prev)
	if d.focusinSupported {
		n.fireFocus("focusin", true, prev)
	}
}

// Blur drops focus from n if it holds it.
// https://html.spec.whatwg.org/#dom-blur
func (n *Node) Blur() {
	if n.doc == nil || n.doc.activeElement != n {
		return
	}
	n.blurTo(nil)
}

func (n *Node) blurTo(next *Node) {
	n.doc.activeElement = nil
	n.fireFocus("blur", false, next)
	if n.doc.focusinSupported {
		n.fireFocus("focusout", true, next)
	}
}

func (n *Node) fireFocus(typ string, bubbles bool, related *Node) {
	e := newTrustedEvent(FocusEventInterface, typ, bubbles, false)
	if related != nil {
		e.fields.RelatedTarget = related
	}
	_, _ = n.DispatchEvent(e)
}
