package pipeline

import "reflect"

// Role is the position a stage can take in a chain.
type Role uint8

const (
	RoleSource Role = iota + 1
	RoleTransform
	RoleSink
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleTransform:
		return "transform"
	case RoleSink:
		return "sink"
	default:
		return "unknown"
	}
}

// Source produces a value from no input. It can only start a pipeline.
type Source[O any] func() Result[O]

// Transform produces an O from an I, or Absent to stop the chain.
type Transform[I, O any] func(in I) Result[O]

// Sink consumes an I. It can only end a pipeline.
type Sink[I any] func(in I) Result[Unit]

// BiTransform is a Transform with an inverse. Backward maps outputs back to inputs.
type BiTransform[I, O any] struct {
	Forward  func(in I) Result[O]
	Backward func(out O) Result[I]
}

// BiTerminal both produces and consumes values of T. At the start of a
// bidirectional pipeline it is a source going forward and a sink going
// backward; at the end it is the other way round.
type BiTerminal[T any] struct {
	Produce func() Result[T]
	Consume func(v T) Result[Unit]
}

// Lift adapts a function that always produces a value.
func Lift[I, O any](f func(I) O) Transform[I, O] {
	return func(in I) Result[O] { return Produced(f(in)) }
}

// LiftSource adapts a producer that always yields a value.
func LiftSource[O any](f func() O) Source[O] {
	return func() Result[O] { return Produced(f()) }
}

// LiftSink adapts a consumer that never stops the chain.
func LiftSink[I any](f func(I)) Sink[I] {
	return func(in I) Result[Unit] {
		f(in)
		return Produced(Unit{})
	}
}

// LiftBi adapts a pair of unconditional functions.
func LiftBi[I, O any](forward func(I) O, backward func(O) I) BiTransform[I, O] {
	return BiTransform[I, O]{Forward: Lift(forward), Backward: Lift(backward)}
}

// Invert swaps the directions of t.
func (t BiTransform[I, O]) Invert() BiTransform[O, I] {
	return BiTransform[O, I]{Forward: t.Backward, Backward: t.Forward}
}

// Pipeline wraps s in a one-stage LeftClosed pipeline.
func (s Source[O]) Pipeline() LeftClosed[O] {
	st := &stage{
		role:    RoleSource,
		forward: func(any) Result[any] { return erase(s()) },
		in:      reflect.TypeFor[Unit](),
		out:     reflect.TypeFor[O](),
	}
	return LeftClosed[O]{c: stageChain(st, sourceNode)}
}

// Pipeline wraps t in a one-stage Open pipeline.
func (t Transform[I, O]) Pipeline() Open[I, O] {
	st := &stage{
		role:    RoleTransform,
		forward: func(v any) Result[any] { return erase(t(as[I](v))) },
		in:      reflect.TypeFor[I](),
		out:     reflect.TypeFor[O](),
	}
	return Open[I, O]{c: stageChain(st, transformNode)}
}

// Pipeline wraps s in a one-stage RightClosed pipeline.
func (s Sink[I]) Pipeline() RightClosed[I] {
	st := &stage{
		role:    RoleSink,
		forward: func(v any) Result[any] { return erase(s(as[I](v))) },
		in:      reflect.TypeFor[I](),
		out:     reflect.TypeFor[Unit](),
	}
	return RightClosed[I]{c: stageChain(st, sinkNode)}
}

// Pipeline wraps t in a one-stage bidirectional Open pipeline.
func (t BiTransform[I, O]) Pipeline() BiOpen[I, O] {
	st := &stage{
		role:     RoleTransform,
		forward:  func(v any) Result[any] { return erase(t.Forward(as[I](v))) },
		backward: func(v any) Result[any] { return erase(t.Backward(as[O](v))) },
		in:       reflect.TypeFor[I](),
		out:      reflect.TypeFor[O](),
	}
	return BiOpen[I, O]{c: stageChain(st, transformNode)}
}

// LeftPipeline places t at the start of a bidirectional pipeline.
func (t BiTerminal[T]) LeftPipeline() BiLeftClosed[T] {
	st := &stage{
		role:     RoleSource,
		forward:  func(any) Result[any] { return erase(t.Produce()) },
		backward: func(v any) Result[any] { return erase(t.Consume(as[T](v))) },
		in:       reflect.TypeFor[Unit](),
		out:      reflect.TypeFor[T](),
	}
	return BiLeftClosed[T]{c: stageChain(st, sourceNode)}
}

// RightPipeline places t at the end of a bidirectional pipeline.
func (t BiTerminal[T]) RightPipeline() BiRightClosed[T] {
	st := &stage{
		role:     RoleSink,
		forward:  func(v any) Result[any] { return erase(t.Consume(as[T](v))) },
		backward: func(any) Result[any] { return erase(t.Produce()) },
		in:       reflect.TypeFor[T](),
		out:      reflect.TypeFor[Unit](),
	}
	return BiRightClosed[T]{c: stageChain(st, sinkNode)}
}

// stage is the type-erased form of a caller's stage. Chain nodes share it by
// pointer; joining never copies it.
type stage struct {
	role     Role
	forward  func(any) Result[any]
	backward func(any) Result[any]
	in, out  reflect.Type
}
