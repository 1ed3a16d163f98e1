package dom

import (
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type DocumentReadyState string

const (
	Loading     DocumentReadyState = "loading"
	Interactive DocumentReadyState = "interactive"
	Complete    DocumentReadyState = "complete"
)

// Document is https://html.spec.whatwg.org/#the-document-object
//
// It embeds the wrapper of its own document node, so a *Document can be used
// anywhere a *Node or Target is expected.
type Document struct {
	*Node

	window           *Window
	nodes            map[*html.Node]*Node
	selectors        map[string]cascadia.Matcher
	readyState       DocumentReadyState
	focusinSupported bool
	activeElement    *Node
	log              logrus.FieldLogger
}

type Option func(*Document)

// WithFocusinSupport controls whether focus changes also fire the bubbling
// focusin/focusout events. Defaults to true.
func WithFocusinSupport(supported bool) Option {
	return func(d *Document) {
		d.focusinSupported = supported
	}
}

// WithReadyState sets the initial ready state. Defaults to Loading.
func WithReadyState(s DocumentReadyState) Option {
	return func(d *Document) {
		d.readyState = s
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Document) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDocument returns an empty html/head/body document.
func NewDocument(opts ...Option) *Document {
	d, err := Parse(strings.NewReader(""), opts...)
	if err != nil {
		// parsing an empty string cannot fail
		panic(err)
	}
	return d
}

// Parse builds a document from markup.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse document")
	}
	d := &Document{
		nodes:            make(map[*html.Node]*Node),
		selectors:        make(map[string]cascadia.Matcher),
		readyState:       Loading,
		focusinSupported: true,
		log:              logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Node = &Node{h: h, doc: d}
	d.nodes[h] = d.Node
	d.window = &Window{document: d}
	return d, nil
}

// ParseFragment parses markup in the context of an element. The returned
// nodes are detached and ready to be inserted.
func (d *Document) ParseFragment(markup string, context *Node) (NodeList, error) {
	if context == nil || context.h.Type != html.ElementNode {
		return nil, errors.Wrap(ErrNotSupported, "fragment context must be an element")
	}
	hs, err := html.ParseFragment(strings.NewReader(markup), context.h)
	if err != nil {
		return nil, errors.Wrap(err, "parse fragment")
	}
	nl := make(NodeList, 0, len(hs))
	for _, h := range hs {
		nl = append(nl, d.wrap(h))
	}
	return nl, nil
}

func (d *Document) wrap(h *html.Node) *Node {
	if h == nil {
		return nil
	}
	if n, ok := d.nodes[h]; ok {
		return n
	}
	n := &Node{h: h, doc: d}
	d.nodes[h] = n
	return n
}

// adopt moves n and its descendants from their document into d.
// https://dom.spec.whatwg.org/#concept-node-adopt
func (d *Document) adopt(n *Node) {
	old := n.doc
	walk(n.h, func(h *html.Node) bool {
		w, ok := old.nodes[h]
		if !ok {
			return true
		}
		delete(old.nodes, h)
		w.doc = d
		d.nodes[h] = w
		return true
	})
	if old.activeElement != nil && n.Contains(old.activeElement) {
		old.activeElement = nil
	}
}

func (d *Document) compile(selectors string) (cascadia.Matcher, error) {
	if m, ok := d.selectors[selectors]; ok {
		return m, nil
	}
	m, err := cascadia.ParseGroup(selectors)
	if err != nil {
		return nil, errors.Wrapf(ErrSyntax, "selector %q: %v", selectors, err)
	}
	d.selectors[selectors] = m
	return m, nil
}

func (d *Document) Window() *Window { return d.window }

func (d *Document) DocumentElement() *Node {
	for c := d.h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(c)
		}
	}
	return nil
}

func (d *Document) Head() *Node { return d.child(atom.Head) }
func (d *Document) Body() *Node { return d.child(atom.Body) }

func (d *Document) child(a atom.Atom) *Node {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for c := root.h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return d.wrap(c)
		}
	}
	return nil
}

func (d *Document) CreateElement(localName string) *Node {
	localName = strings.ToLower(localName)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     localName,
		DataAtom: atom.Lookup([]byte(localName)),
	})
}

func (d *Document) CreateTextNode(data string) *Node {
	return d.wrap(&html.Node{Type: html.TextNode, Data: data})
}

func (d *Document) CreateEvent(iface string) (*Event, error) {
	return CreateEvent(iface)
}

func (d *Document) GetElementByID(id string) *Node {
	var found *html.Node
	walk(d.h, func(h *html.Node) bool {
		if h.Type != html.ElementNode {
			return true
		}
		for _, a := range h.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				found = h
				return false
			}
		}
		return true
	})
	return d.wrap(found)
}

func (d *Document) ActiveElement() *Node { return d.activeElement }

func (d *Document) ReadyState() DocumentReadyState { return d.readyState }

// Interactive finishes parsing: the document becomes interactive and
// DOMContentLoaded fires. Calling it again is a no-op.
// https://html.spec.whatwg.org/#the-end
func (d *Document) Interactive() {
	if d.readyState != Loading {
		return
	}
	d.setReadyState(Interactive)
	_, _ = d.DispatchEvent(newTrustedEvent(EventInterface, "DOMContentLoaded", true, false))
}

// Complete finishes loading: the document becomes complete and load fires
// at the window. A loading document passes through Interactive first.
func (d *Document) Complete() {
	if d.readyState == Complete {
		return
	}
	d.Interactive()
	d.setReadyState(Complete)
	_, _ = d.window.DispatchEvent(newTrustedEvent(EventInterface, "load", false, false))
}

func (d *Document) setReadyState(s DocumentReadyState) {
	d.log.WithField("method", "setReadyState").Debugf("[DOCUMENT]: %s -> %s", d.readyState, s)
	d.readyState = s
	_, _ = d.DispatchEvent(newTrustedEvent(EventInterface, "readystatechange", false, false))
}

// Ready runs fn once the document is at least interactive. If it already is,
// fn is queued on the window's task queue instead of running inline.
// Otherwise fn runs on whichever of DOMContentLoaded or load arrives first.
func (d *Document) Ready(fn func()) {
	if d.readyState != Loading {
		d.window.SetTimeout(fn)
		return
	}
	var l *Listener
	l = NewListener(func(*Event) {
		d.RemoveEventListener("DOMContentLoaded", l, false)
		d.window.RemoveEventListener("load", l, false)
		fn()
	})
	d.AddEventListener("DOMContentLoaded", l, false)
	d.window.AddEventListener("load", l, false)
}
