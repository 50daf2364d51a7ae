package lodestone

// Node is a read-only handle into a parsed document tree. Implementations
// must distinguish a missing attribute from an attribute with an empty value.
// A Node borrows from its tree and must not outlive it.
type Node interface {
	// Find returns the first descendant matching the CSS selector.
	Find(selector string) (Node, bool)

	// Children returns all child nodes, text nodes included, in document order.
	Children() []Node

	// IsElement reports whether the node is an element (not text, comment, etc.).
	IsElement() bool

	// Attr returns the raw, entity-encoded value of the named attribute.
	Attr(name string) (string, bool)

	// InnerText returns the raw, entity-encoded text content.
	InnerText() string
}
