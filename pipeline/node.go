package pipeline

type nodeKind uint8

const (
	startTerminator nodeKind = iota + 1
	endTerminator
	sourceNode
	sinkNode
	transformNode
)

func (k nodeKind) String() string {
	switch k {
	case startTerminator:
		return "start terminator"
	case endTerminator:
		return "end terminator"
	case sourceNode:
		return "source node"
	case sinkNode:
		return "sink node"
	case transformNode:
		return "transform node"
	default:
		return "invalid node"
	}
}

// mirror is the kind a node takes once its chain is reversed.
func (k nodeKind) mirror() nodeKind {
	switch k {
	case startTerminator:
		return endTerminator
	case endTerminator:
		return startTerminator
	case sourceNode:
		return sinkNode
	case sinkNode:
		return sourceNode
	default:
		return k
	}
}

// link is a write-once reference to a neighbouring node.
type link struct {
	n   *node
	set bool
}

// node positions one stage inside one chain. Terminators carry no stage.
// Both links are written exactly once, while the chain is built.
type node struct {
	kind     nodeKind
	stage    *stage
	inverted bool
	label    string
	prev     link
	next     link
}

func newTerminator(k nodeKind) *node { return &node{kind: k} }

func (n *node) hasPredecessor() bool { return n.kind != startTerminator && n.kind != sourceNode }

func (n *node) hasSuccessor() bool { return n.kind != endTerminator && n.kind != sinkNode }

func (n *node) predecessor() *node {
	if !n.hasPredecessor() {
		panic(invariant(ErrNoPredecessor, "%s starts its chain", n.kind))
	}
	if !n.prev.set {
		panic(invariant(ErrNoPredecessor, "%s is not linked yet", n.kind))
	}
	return n.prev.n
}

func (n *node) successor() *node {
	if !n.hasSuccessor() {
		panic(invariant(ErrNoSuccessor, "%s ends its chain", n.kind))
	}
	if !n.next.set {
		panic(invariant(ErrNoSuccessor, "%s is not linked yet", n.kind))
	}
	return n.next.n
}

func (n *node) setPredecessor(p *node) {
	if !n.hasPredecessor() {
		panic(invariant(ErrNoPredecessor, "%s cannot take a predecessor", n.kind))
	}
	if n.prev.set {
		panic(invariant(ErrPredecessorAssigned, "%s", n.kind))
	}
	n.prev = link{n: p, set: true}
}

func (n *node) setSuccessor(s *node) {
	if !n.hasSuccessor() {
		panic(invariant(ErrNoSuccessor, "%s cannot take a successor", n.kind))
	}
	if n.next.set {
		panic(invariant(ErrSuccessorAssigned, "%s", n.kind))
	}
	n.next = link{n: s, set: true}
}

// first follows backward links to the node that starts the chain.
func (n *node) first() *node {
	cur := n
	for cur.hasPredecessor() {
		cur = cur.predecessor()
	}
	return cur
}

// last follows forward links to the node that ends the chain.
func (n *node) last() *node {
	cur := n
	for cur.hasSuccessor() {
		cur = cur.successor()
	}
	return cur
}

// clone returns an unlinked node wrapping the same stage.
func (n *node) clone() *node {
	return &node{kind: n.kind, stage: n.stage, inverted: n.inverted, label: n.label}
}

// mirrored returns an unlinked node for the reversed chain.
func (n *node) mirrored() *node {
	return &node{kind: n.kind.mirror(), stage: n.stage, inverted: !n.inverted, label: n.label}
}

// role reports what the node does when walked in the given direction.
func (n *node) role(backward bool) Role {
	k := n.kind
	if backward {
		k = k.mirror()
	}
	switch k {
	case sourceNode:
		return RoleSource
	case sinkNode:
		return RoleSink
	default:
		return RoleTransform
	}
}

func (n *node) apply(v any, backward bool) Result[any] {
	if backward != n.inverted {
		if n.stage.backward == nil {
			panic(invariant(ErrNotBidirectional, "%s has no inverse", n.kind))
		}
		return n.stage.backward(v)
	}
	return n.stage.forward(v)
}

func connect(a, b *node) {
	a.setSuccessor(b)
	b.setPredecessor(a)
}
