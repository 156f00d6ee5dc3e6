package api

type nodeKind int

const (
	kindAction nodeKind = iota
	kindStart
	kindEnd
)

// Node is a vertex in a flow graph: an Action plus its outgoing edges.
//
// Edges come in two flavors. A default edge is followed when the node's
// routing value matches no conditional edge. Conditional edges are keyed by
// exact routing value and always win over the default edge. A node holds at
// most one default edge; registering a second one replaces the first, and a
// duplicate conditional registration for the same value replaces the
// earlier target (last registration wins).
type Node struct {
	name   string
	kind   nodeKind
	action Action

	defaultEdge *Node
	conditional map[string]*Node
}

// NewNode wraps an action in a graph node. The node's name is derived via
// ActionName.
func NewNode(a Action) *Node {
	if a == nil {
		panic("flowchain: node action must not be nil")
	}
	return &Node{name: ActionName(a), action: a}
}

// NewStart creates a Start sentinel: a pure routing anchor that is never
// executed. A flow begins at the Start's default edge target.
func NewStart() *Node {
	return &Node{name: "start", kind: kindStart}
}

// NewEnd creates an End sentinel: a terminal node with no outgoing edges.
// Reaching it ends the run normally.
func NewEnd() *Node {
	return &Node{name: "end", kind: kindEnd}
}

// Name returns the node's stable identity.
func (n *Node) Name() string { return n.name }

// IsStart reports whether the node is a Start sentinel.
func (n *Node) IsStart() bool { return n.kind == kindStart }

// IsEnd reports whether the node is an End sentinel.
func (n *Node) IsEnd() bool { return n.kind == kindEnd }

// Then registers next as n's default edge and returns next, so sequential
// links chain left to right:
//
//	start.Then(fetch).Then(transform).Then(end)
func (n *Node) Then(next *Node) *Node {
	if next == nil {
		panic("flowchain: Then target must not be nil")
	}
	if n.kind == kindEnd {
		panic("flowchain: end node cannot have outgoing edges")
	}
	n.defaultEdge = next
	return next
}

// On registers next under the routing value in n's conditional edge map and
// returns n, so several branches can be registered off the same node. It
// does not touch n's default edge.
func (n *Node) On(value string, next *Node) *Node {
	if next == nil {
		panic("flowchain: On target must not be nil")
	}
	if n.kind == kindEnd {
		panic("flowchain: end node cannot have outgoing edges")
	}
	if n.kind == kindStart {
		panic("flowchain: start node only has a default edge")
	}
	if n.conditional == nil {
		n.conditional = make(map[string]*Node)
	}
	n.conditional[value] = next
	return n
}

// Resolve picks the next node for a routing value: exact conditional match
// first, then the default edge. A node with both always prefers the
// conditional match. The second return value is false when neither exists.
func (n *Node) Resolve(value string) (*Node, bool) {
	if next, ok := n.conditional[value]; ok {
		return next, true
	}
	if n.defaultEdge != nil {
		return n.defaultEdge, true
	}
	return nil, false
}

// DefaultEdge returns the node's default edge target, or nil. Read-only
// accessor for graph consumers such as diagram generators.
func (n *Node) DefaultEdge() *Node { return n.defaultEdge }

// ConditionalEdges returns a copy of the node's conditional edge map.
func (n *Node) ConditionalEdges() map[string]*Node {
	if len(n.conditional) == 0 {
		return nil
	}
	out := make(map[string]*Node, len(n.conditional))
	for v, target := range n.conditional {
		out[v] = target
	}
	return out
}
