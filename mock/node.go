package mock

import "github.com/fwojciec/lodestone"

var _ lodestone.Node = (*Node)(nil)

// Node is a mock implementation of lodestone.Node.
type Node struct {
	FindFn      func(selector string) (lodestone.Node, bool)
	ChildrenFn  func() []lodestone.Node
	IsElementFn func() bool
	AttrFn      func(name string) (string, bool)
	InnerTextFn func() string
}

func (n *Node) Find(selector string) (lodestone.Node, bool) {
	return n.FindFn(selector)
}

func (n *Node) Children() []lodestone.Node {
	return n.ChildrenFn()
}

func (n *Node) IsElement() bool {
	return n.IsElementFn()
}

func (n *Node) Attr(name string) (string, bool) {
	return n.AttrFn(name)
}

func (n *Node) InnerText() string {
	return n.InnerTextFn()
}
