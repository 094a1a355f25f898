package pipeline

import "reflect"

// Pipeline is implemented by every pipeline handle in this package. It is
// what runtime composition (JoinDynamic, RunObserved, the config package)
// works with when stage types are only known at run time.
type Pipeline interface {
	Shape() Shape
	Bidirectional() bool
	// Len is the number of stages; terminators are not counted.
	Len() int
	// In is the forward input type (Unit when source-bound).
	In() reflect.Type
	// Out is the forward output type (Unit when sink-bound).
	Out() reflect.Type

	links() chain
	with(c chain) Pipeline
}

// Open has neither a source nor a sink: it maps an I to an O.
type Open[I, O any] struct{ c chain }

// LeftClosed starts with a source and produces an O.
type LeftClosed[O any] struct{ c chain }

// RightClosed ends with a sink and consumes an I.
type RightClosed[I any] struct{ c chain }

// Closed has both a source and a sink.
type Closed struct{ c chain }

// Identity returns the empty Open pipeline. Joining with it copies the other side unchanged.
func Identity[T any]() Open[T, T] {
	return Open[T, T]{c: identityChain(reflect.TypeFor[T](), false)}
}

// Run feeds in through every stage. The first Absent stops the run.
func (p Open[I, O]) Run(in I) Result[O] { return narrow[O](p.c.walk(in, false, nil)) }

// Run pulls a value from the source and passes it down the chain.
func (p LeftClosed[O]) Run() Result[O] { return narrow[O](p.c.walk(Unit{}, false, nil)) }

// Run feeds in through every stage into the sink.
func (p RightClosed[I]) Run(in I) Result[Unit] { return narrow[Unit](p.c.walk(in, false, nil)) }

// Run pulls from the source and pushes into the sink.
func (p Closed) Run() Result[Unit] { return narrow[Unit](p.c.walk(Unit{}, false, nil)) }

// To ends p with s.
func (p Open[I, O]) To(s Sink[O]) RightClosed[I] { return JoinSink(p, s.Pipeline()) }

// To ends p with s.
func (p LeftClosed[O]) To(s Sink[O]) Closed { return JoinClosed(p, s.Pipeline()) }

// Join runs left then right.
func Join[I, O, P any](left Open[I, O], right Open[O, P]) Open[I, P] {
	return Open[I, P]{c: join(left.c, right.c, ShapeOpen)}
}

// JoinSink ends left with the sink-bound right.
func JoinSink[I, O any](left Open[I, O], right RightClosed[O]) RightClosed[I] {
	return RightClosed[I]{c: join(left.c, right.c, ShapeRightClosed)}
}

// JoinSource continues the source-bound left with right.
func JoinSource[O, P any](left LeftClosed[O], right Open[O, P]) LeftClosed[P] {
	return LeftClosed[P]{c: join(left.c, right.c, ShapeLeftClosed)}
}

// JoinClosed connects a source-bound pipeline to a sink-bound one.
func JoinClosed[O any](left LeftClosed[O], right RightClosed[O]) Closed {
	return Closed{c: join(left.c, right.c, ShapeClosed)}
}

// Then appends the transform t to p.
func Then[I, O, P any](p Open[I, O], t Transform[O, P]) Open[I, P] {
	return Join(p, t.Pipeline())
}

// ThenFrom appends the transform t to the source-bound p.
func ThenFrom[O, P any](p LeftClosed[O], t Transform[O, P]) LeftClosed[P] {
	return JoinSource(p, t.Pipeline())
}

func (p Open[I, O]) Shape() Shape          { return ShapeOpen }
func (p Open[I, O]) Bidirectional() bool   { return false }
func (p Open[I, O]) Len() int              { return p.c.stages() }
func (p Open[I, O]) In() reflect.Type      { return reflect.TypeFor[I]() }
func (p Open[I, O]) Out() reflect.Type     { return reflect.TypeFor[O]() }
func (p Open[I, O]) links() chain          { return p.c }
func (p Open[I, O]) with(c chain) Pipeline { return Open[I, O]{c: c} }

func (p LeftClosed[O]) Shape() Shape          { return ShapeLeftClosed }
func (p LeftClosed[O]) Bidirectional() bool   { return false }
func (p LeftClosed[O]) Len() int              { return p.c.stages() }
func (p LeftClosed[O]) In() reflect.Type      { return reflect.TypeFor[Unit]() }
func (p LeftClosed[O]) Out() reflect.Type     { return reflect.TypeFor[O]() }
func (p LeftClosed[O]) links() chain          { return p.c }
func (p LeftClosed[O]) with(c chain) Pipeline { return LeftClosed[O]{c: c} }

func (p RightClosed[I]) Shape() Shape          { return ShapeRightClosed }
func (p RightClosed[I]) Bidirectional() bool   { return false }
func (p RightClosed[I]) Len() int              { return p.c.stages() }
func (p RightClosed[I]) In() reflect.Type      { return reflect.TypeFor[I]() }
func (p RightClosed[I]) Out() reflect.Type     { return reflect.TypeFor[Unit]() }
func (p RightClosed[I]) links() chain          { return p.c }
func (p RightClosed[I]) with(c chain) Pipeline { return RightClosed[I]{c: c} }

func (p Closed) Shape() Shape          { return ShapeClosed }
func (p Closed) Bidirectional() bool   { return false }
func (p Closed) Len() int              { return p.c.stages() }
func (p Closed) In() reflect.Type      { return reflect.TypeFor[Unit]() }
func (p Closed) Out() reflect.Type     { return reflect.TypeFor[Unit]() }
func (p Closed) links() chain          { return p.c }
func (p Closed) with(c chain) Pipeline { return Closed{c: c} }

// Label returns a copy of the one-stage pipeline p whose stage reports name
// to observers. It panics if p holds more or fewer than one stage.
func Label[P Pipeline](p P, name string) P {
	return p.with(p.links().relabel(name)).(P)
}
