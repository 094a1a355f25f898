package pipeline

import (
	"context"
	"reflect"
	"time"
)

// chain is the doubly linked node sequence behind every pipeline handle.
// in and out are the pipeline's forward input and output types.
type chain struct {
	first, last *node
	in, out     reflect.Type
	bi          bool
}

// stageChain builds the one-stage chain for st. Transforms get a terminator
// on both sides, sources only at the end, sinks only at the start.
func stageChain(st *stage, k nodeKind) chain {
	n := &node{kind: k, stage: st}
	nodes := make([]*node, 0, 3)
	if k != sourceNode {
		nodes = append(nodes, newTerminator(startTerminator))
	}
	nodes = append(nodes, n)
	if k != sinkNode {
		nodes = append(nodes, newTerminator(endTerminator))
	}
	c := linkAll(nodes)
	c.in, c.out = st.in, st.out
	c.bi = st.backward != nil
	return c
}

// identityChain is the degenerate chain of two terminators.
func identityChain(t reflect.Type, bi bool) chain {
	c := linkAll([]*node{newTerminator(startTerminator), newTerminator(endTerminator)})
	c.in, c.out = t, t
	c.bi = bi
	return c
}

func linkAll(nodes []*node) chain {
	for i := 0; i+1 < len(nodes); i++ {
		connect(nodes[i], nodes[i+1])
	}
	return chain{first: nodes[0], last: nodes[len(nodes)-1]}
}

func (c chain) valid() {
	if c.first == nil || c.last == nil {
		panic(invariant(ErrZeroPipeline, "build pipelines from stages or joins"))
	}
}

func (c chain) shape() Shape {
	c.valid()
	return shapeOf(c.first.kind == sourceNode, c.last.kind == sinkNode)
}

// stages counts the nodes that carry a stage.
func (c chain) stages() int {
	count := 0
	for _, n := range c.nodes() {
		if n.stage != nil {
			count++
		}
	}
	return count
}

// nodes lists the chain front to back.
func (c chain) nodes() []*node {
	c.valid()
	var out []*node
	seen := make(map[*node]struct{})
	n := c.first
	for {
		visit(seen, n)
		out = append(out, n)
		if !n.hasSuccessor() {
			return out
		}
		n = n.successor()
	}
}

func visit(seen map[*node]struct{}, n *node) {
	if _, ok := seen[n]; ok {
		panic(invariant(ErrCycle, "%s reached twice", n.kind))
	}
	seen[n] = struct{}{}
}

// join builds a new chain running left then right. Neither input is touched:
// every node is copied, the stages they wrap are shared.
//
// Right is copied front to back starting after its start terminator, left is
// copied back to front starting before its end terminator. Each copy only
// knows the neighbour on its own side of the walk when it is made, so the
// links are resolved in a second pass once both halves exist.
func join(left, right chain, want Shape) chain {
	left.valid()
	right.valid()
	got, ok := joinShape(left.shape(), right.shape())
	if !ok {
		panic(invariant(ErrShapeMismatch, "%s with %s", left.shape(), right.shape()))
	}
	if got != want {
		panic(invariant(ErrShapeMismatch, "%s with %s gives %s, not %s", left.shape(), right.shape(), got, want))
	}

	var rightCopies []*node
	seen := make(map[*node]struct{})
	n := right.first
	if n.kind == startTerminator {
		n = n.successor()
	}
	for {
		visit(seen, n)
		rightCopies = append(rightCopies, n.clone())
		if !n.hasSuccessor() {
			break
		}
		n = n.successor()
	}

	var leftCopies []*node
	seen = make(map[*node]struct{})
	n = left.last
	if n.kind == endTerminator {
		n = n.predecessor()
	}
	for {
		visit(seen, n)
		leftCopies = append(leftCopies, n.clone())
		if !n.hasPredecessor() {
			break
		}
		n = n.predecessor()
	}

	nodes := make([]*node, 0, len(leftCopies)+len(rightCopies))
	for i := len(leftCopies) - 1; i >= 0; i-- {
		nodes = append(nodes, leftCopies[i])
	}
	nodes = append(nodes, rightCopies...)

	out := linkAll(nodes)
	out.in, out.out = left.in, right.out
	out.bi = left.bi && right.bi
	if out.first != out.last.first() || out.last != out.first.last() {
		panic(invariant(ErrCycle, "joined chain does not close on its boundaries"))
	}
	if s := out.shape(); s != want {
		panic(invariant(ErrShapeMismatch, "joined chain is %s, want %s", s, want))
	}
	return out
}

// invert builds the reversed chain: every node is mirrored and walks its
// stage in the opposite direction.
func (c chain) invert() chain {
	if !c.bi {
		panic(invariant(ErrNotBidirectional, "cannot invert"))
	}
	nodes := c.nodes()
	rev := make([]*node, len(nodes))
	for i, n := range nodes {
		rev[len(nodes)-1-i] = n.mirrored()
	}
	out := linkAll(rev)
	out.in, out.out = c.out, c.in
	out.bi = true
	if s, want := out.shape(), invertShape(c.shape()); s != want {
		panic(invariant(ErrShapeMismatch, "inverted chain is %s, want %s", s, want))
	}
	return out
}

// relabel copies a one-stage chain, naming its stage node.
func (c chain) relabel(name string) chain {
	if n := c.stages(); n != 1 {
		panic(invariant(ErrNotSingleStage, "found %d stages", n))
	}
	nodes := c.nodes()
	copies := make([]*node, len(nodes))
	for i, n := range nodes {
		copies[i] = n.clone()
		if n.stage != nil {
			copies[i].label = name
		}
	}
	out := linkAll(copies)
	out.in, out.out, out.bi = c.in, c.out, c.bi
	return out
}

// runHooks carries an observer through one observed run.
type runHooks struct {
	ctx context.Context
	obs Observer
	run RunInfo
}

// walk threads v through the chain. The first Absent ends the walk; stages
// after it are not called.
func (c chain) walk(v any, backward bool, h *runHooks) Result[any] {
	c.valid()
	if backward && !c.bi {
		panic(invariant(ErrNotBidirectional, "cannot run backward"))
	}
	cur := Produced(v)
	n := c.first
	if backward {
		n = c.last
	}
	index := 0
	for {
		if n.stage != nil {
			in, _ := cur.Get()
			if h == nil {
				cur = n.apply(in, backward)
			} else {
				info := StageInfo{Index: index, Role: n.role(backward), Name: n.label}
				h.obs.BeforeStage(h.ctx, h.run, info, in)
				start := time.Now()
				cur = n.apply(in, backward)
				h.obs.AfterStage(h.ctx, h.run, info, in, cur, time.Since(start))
			}
			index++
			if cur.IsAbsent() {
				return cur
			}
		}
		if backward {
			if !n.hasPredecessor() {
				return cur
			}
			n = n.predecessor()
			continue
		}
		if !n.hasSuccessor() {
			return cur
		}
		n = n.successor()
	}
}
