package pipeline

import (
	"fmt"
	"reflect"
)

// Dynamic is a pipeline whose stage types are checked at join time rather
// than by the compiler. Its shape is carried as a value.
type Dynamic struct{ c chain }

// AsDynamic erases the static types of p.
func AsDynamic(p Pipeline) Dynamic {
	if d, ok := p.(Dynamic); ok {
		return d
	}
	c := p.links()
	c.valid()
	c.bi = c.bi && p.Bidirectional()
	return Dynamic{c: c}
}

// CanJoin reports why left and right cannot be joined, or nil when they can.
// The result is error-wrapped ErrZeroPipeline, ErrShapeMismatch or ErrTypeMismatch.
func CanJoin(left, right Pipeline) error {
	if isZero(left) || isZero(right) {
		return fmt.Errorf("%w: nothing to join", ErrZeroPipeline)
	}
	ls, rs := left.Shape(), right.Shape()
	if _, ok := joinShape(ls, rs); !ok {
		return fmt.Errorf("%w: %s with %s", ErrShapeMismatch, ls, rs)
	}
	if out, in := left.Out(), right.In(); out != in {
		return fmt.Errorf("%w: %s feeds %s", ErrTypeMismatch, out, in)
	}
	return nil
}

// JoinDynamic joins left and right after checking shapes and types at run
// time. It panics with an *InvariantError when CanJoin would fail. The
// result is bidirectional only if both sides are.
func JoinDynamic(left, right Pipeline) Dynamic {
	if err := CanJoin(left, right); err != nil {
		panic(&InvariantError{Err: err})
	}
	l, r := AsDynamic(left), AsDynamic(right)
	want, _ := joinShape(l.Shape(), r.Shape())
	return Dynamic{c: join(l.c, r.c, want)}
}

// Run feeds in forward. Source-bound pipelines ignore in; otherwise in must
// be assignable to In, or Run panics with ErrTypeMismatch.
func (d Dynamic) Run(in any) Result[any] {
	return d.c.walk(d.input(in, false), false, nil)
}

// RunBackward feeds in backward. Sink-bound pipelines ignore in; otherwise in
// must be assignable to Out. It panics on a unidirectional pipeline.
func (d Dynamic) RunBackward(in any) Result[any] {
	if !d.c.bi {
		panic(invariant(ErrNotBidirectional, "cannot run backward"))
	}
	return d.c.walk(d.input(in, true), true, nil)
}

// input returns the value the walk starts with: Unit at a bound end, in
// itself once its type has been checked.
func (d Dynamic) input(in any, backward bool) any {
	shape, want := d.Shape(), d.c.in
	if backward {
		want = d.c.out
	}
	if (!backward && shape.SourceBound()) || (backward && shape.SinkBound()) {
		return Unit{}
	}
	checkInput(in, want)
	return in
}

func checkInput(in any, want reflect.Type) {
	if want == nil {
		return
	}
	if in == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return
		}
		panic(invariant(ErrTypeMismatch, "nil into %s", want))
	}
	if !reflect.TypeOf(in).AssignableTo(want) {
		panic(invariant(ErrTypeMismatch, "%T into %s", in, want))
	}
}

// isZero reports whether p has no chain behind it.
func isZero(p Pipeline) bool {
	if p == nil {
		return true
	}
	c := p.links()
	return c.first == nil || c.last == nil
}

// Invert reverses a bidirectional pipeline. It panics on a unidirectional one.
func (d Dynamic) Invert() Dynamic { return Dynamic{c: d.c.invert()} }

func (d Dynamic) Shape() Shape          { return d.c.shape() }
func (d Dynamic) Bidirectional() bool   { return d.c.bi }
func (d Dynamic) Len() int              { return d.c.stages() }
func (d Dynamic) In() reflect.Type      { return d.c.in }
func (d Dynamic) Out() reflect.Type     { return d.c.out }
func (d Dynamic) links() chain          { return d.c }
func (d Dynamic) with(c chain) Pipeline { return Dynamic{c: c} }

// Stages lists the stage labels front to back; unlabelled stages report their role.
func (d Dynamic) Stages() []string {
	var names []string
	for _, n := range d.c.nodes() {
		if n.stage == nil {
			continue
		}
		if n.label != "" {
			names = append(names, n.label)
			continue
		}
		names = append(names, n.role(false).String())
	}
	return names
}
