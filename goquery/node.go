// Package goquery implements lodestone.Node over goquery selections.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/lodestone"
	"golang.org/x/net/html"
)

// Ensure Node implements lodestone.Node at compile time.
var _ lodestone.Node = (*Node)(nil)

// Node wraps a single-node goquery selection. The selection borrows from the
// parsed document and is never modified.
type Node struct {
	sel *goquery.Selection
}

// Parse parses an HTML document and returns its document node.
func Parse(r io.Reader) (*Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, lodestone.Errorf(lodestone.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Node{sel: goquery.NewDocumentFromNode(root).Selection}, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// ValidateSelector reports whether selector is valid CSS. goquery treats an
// invalid selector as matching nothing, so definitions are checked up front.
func ValidateSelector(selector string) error {
	if _, err := cascadia.Compile(selector); err != nil {
		return lodestone.Errorf(lodestone.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return nil
}

// Find returns the first descendant matching selector.
func (n *Node) Find(selector string) (lodestone.Node, bool) {
	match := n.sel.Find(selector).First()
	if match.Length() == 0 {
		return nil, false
	}
	return &Node{sel: match}, true
}

// Children returns all child nodes, including text nodes, in document order.
func (n *Node) Children() []lodestone.Node {
	contents := n.sel.Contents()
	children := make([]lodestone.Node, 0, contents.Length())
	contents.Each(func(_ int, s *goquery.Selection) {
		children = append(children, &Node{sel: s})
	})
	return children
}

// IsElement reports whether the node is an HTML element.
func (n *Node) IsElement() bool {
	return len(n.sel.Nodes) > 0 && n.sel.Nodes[0].Type == html.ElementNode
}

// Attr returns the named attribute re-encoded with HTML entities, matching
// InnerText. A present attribute with an empty value is reported as present.
func (n *Node) Attr(name string) (string, bool) {
	value, ok := n.sel.Attr(name)
	if !ok {
		return "", false
	}
	return html.EscapeString(value), true
}

// InnerText returns the text content re-encoded with HTML entities. The
// parser decodes entities while building the tree, so encoding restores the
// raw form that lodestone.Parser decodes exactly once.
func (n *Node) InnerText() string {
	return html.EscapeString(n.sel.Text())
}
