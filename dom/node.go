package dom

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

// Node is https://dom.spec.whatwg.org/#node
//
// The tree itself lives in the wrapped *html.Node; a Node only adds what the
// html package has no room for: listeners, an identity slot and a link back
// to its Document. Each html node has exactly one wrapper per document.
type Node struct {
	EventTarget

	h   *html.Node
	doc *Document
	zid uint64
}

func (n *Node) NodeType() NodeType {
	switch n.h.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	case html.CommentNode:
		return CommentNode
	case html.DocumentNode:
		return DocumentNode
	case html.DoctypeNode:
		return DocumentTypeNode
	case html.RawNode:
		return TextNode
	}
	return 0
}

func (n *Node) NodeName() string {
	switch n.h.Type {
	case html.ElementNode:
		return strings.ToUpper(n.h.Data)
	case html.TextNode, html.RawNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DocumentNode:
		return "#document"
	}
	return n.h.Data
}

// TextContent concatenates the data of every descendant text node.
func (n *Node) TextContent() string {
	var sb strings.Builder
	walk(n.h, func(h *html.Node) bool {
		if h.Type == html.TextNode {
			sb.WriteString(h.Data)
		}
		return true
	})
	return sb.String()
}

func (n *Node) OwnerDocument() *Document { return n.doc }

// FocusinSupported reports whether the owning document fires focusin/focusout.
func (n *Node) FocusinSupported() bool { return n.doc.focusinSupported }

func (n *Node) ParentNode() *Node      { return n.doc.wrap(n.h.Parent) }
func (n *Node) FirstChild() *Node      { return n.doc.wrap(n.h.FirstChild) }
func (n *Node) LastChild() *Node       { return n.doc.wrap(n.h.LastChild) }
func (n *Node) PreviousSibling() *Node { return n.doc.wrap(n.h.PrevSibling) }
func (n *Node) NextSibling() *Node     { return n.doc.wrap(n.h.NextSibling) }

// ParentElement is the parent if it is an element, nil otherwise.
func (n *Node) ParentElement() *Node {
	if p := n.h.Parent; p != nil && p.Type == html.ElementNode {
		return n.doc.wrap(p)
	}
	return nil
}

func (n *Node) ChildNodes() NodeList {
	var nl NodeList
	for c := n.h.FirstChild; c != nil; c = c.NextSibling {
		nl = append(nl, n.doc.wrap(c))
	}
	return nl
}

func (n *Node) HasChildNodes() bool {
	return n.h.FirstChild != nil
}

// IsConnected reports whether the node's root is its document.
func (n *Node) IsConnected() bool {
	root := n.h
	for root.Parent != nil {
		root = root.Parent
	}
	return root.Type == html.DocumentNode && root == n.doc.Node.h
}

// Contains is https://dom.spec.whatwg.org/#dom-node-contains and is inclusive:
// a node contains itself.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	for h := other.h; h != nil; h = h.Parent {
		if h == n.h {
			return true
		}
	}
	return false
}

// https://dom.spec.whatwg.org/#concept-node-ensure-pre-insertion-validity
func (n *Node) ensurePreInsertionValidity(child, ref *Node) error {
	switch n.h.Type {
	case html.ElementNode, html.DocumentNode:
	default:
		return errors.Wrapf(ErrHierarchyRequest, "%s cannot have children", n.NodeName())
	}
	if child == nil {
		return errors.Wrap(ErrHierarchyRequest, "nil child")
	}
	if child.h.Type == html.DocumentNode {
		return errors.Wrap(ErrHierarchyRequest, "cannot insert a document")
	}
	if child.Contains(n) {
		return errors.Wrapf(ErrHierarchyRequest, "%s is an inclusive ancestor of %s", child.NodeName(), n.NodeName())
	}
	if ref != nil && ref.h.Parent != n.h {
		return errors.Wrapf(ErrNotFound, "%s is not a child of %s", ref.NodeName(), n.NodeName())
	}
	return nil
}

// AppendChild is https://dom.spec.whatwg.org/#dom-node-appendchild
func (n *Node) AppendChild(child *Node) (*Node, error) {
	return n.InsertBefore(child, nil)
}

// InsertBefore is https://dom.spec.whatwg.org/#dom-node-insertbefore
// A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) (*Node, error) {
	if err := n.ensurePreInsertionValidity(child, ref); err != nil {
		return nil, err
	}
	if child == ref {
		return child, nil
	}
	if p := child.h.Parent; p != nil {
		p.RemoveChild(child.h)
	}
	if child.doc != n.doc {
		n.doc.adopt(child)
	}
	if ref == nil {
		n.h.AppendChild(child.h)
	} else {
		n.h.InsertBefore(child.h, ref.h)
	}
	return child, nil
}

// RemoveChild is https://dom.spec.whatwg.org/#dom-node-removechild
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil || child.h.Parent != n.h {
		return nil, errors.Wrap(ErrNotFound, "remove child")
	}
	if n.doc.activeElement != nil && child.Contains(n.doc.activeElement) {
		n.doc.activeElement = nil
	}
	n.h.RemoveChild(child.h)
	return child, nil
}

// ZID is the identity slot used by event registries.
func (n *Node) ZID() uint64      { return n.zid }
func (n *Node) SetZID(id uint64) { n.zid = id }

func (n *Node) DispatchEvent(e *Event) (bool, error) {
	return dispatch(n, e)
}

func (n *Node) target() *EventTarget { return &n.EventTarget }

func (n *Node) parentTarget() Target {
	if p := n.ParentNode(); p != nil {
		return p
	}
	if n.h.Type == html.DocumentNode && n.doc != nil {
		return n.doc.window
	}
	return nil
}

func (n *Node) String() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n.h); err != nil {
		return ""
	}
	return buf.String()
}

// walk visits h and its descendants in tree order until fn returns false.
func walk(h *html.Node, fn func(*html.Node) bool) bool {
	if !fn(h) {
		return false
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
