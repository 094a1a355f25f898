package pipeline

import "reflect"

// BiOpen is an Open pipeline whose stages all have inverses.
type BiOpen[I, O any] struct{ c chain }

// BiLeftClosed starts with a BiTerminal. Backward, that terminal consumes.
type BiLeftClosed[O any] struct{ c chain }

// BiRightClosed ends with a BiTerminal. Backward, that terminal produces.
type BiRightClosed[I any] struct{ c chain }

// BiClosed has a BiTerminal at both ends.
type BiClosed struct{ c chain }

// BiIdentity returns the empty bidirectional Open pipeline.
func BiIdentity[T any]() BiOpen[T, T] {
	return BiOpen[T, T]{c: identityChain(reflect.TypeFor[T](), true)}
}

// Run feeds in through every stage. The first Absent stops the run.
func (p BiOpen[I, O]) Run(in I) Result[O] { return narrow[O](p.c.walk(in, false, nil)) }

// RunBackward feeds out through every inverse, last stage first.
func (p BiOpen[I, O]) RunBackward(out O) Result[I] { return narrow[I](p.c.walk(out, true, nil)) }

// Run pulls a value from the leading terminal and passes it down the chain.
func (p BiLeftClosed[O]) Run() Result[O] { return narrow[O](p.c.walk(Unit{}, false, nil)) }

// RunBackward feeds out back through the chain into the leading terminal.
func (p BiLeftClosed[O]) RunBackward(out O) Result[Unit] {
	return narrow[Unit](p.c.walk(out, true, nil))
}

// Run feeds in through every stage into the trailing terminal.
func (p BiRightClosed[I]) Run(in I) Result[Unit] { return narrow[Unit](p.c.walk(in, false, nil)) }

// RunBackward pulls from the trailing terminal and walks back to the front.
func (p BiRightClosed[I]) RunBackward() Result[I] { return narrow[I](p.c.walk(Unit{}, true, nil)) }

// Run pulls from the leading terminal and pushes into the trailing one.
func (p BiClosed) Run() Result[Unit] { return narrow[Unit](p.c.walk(Unit{}, false, nil)) }

// RunBackward pulls from the trailing terminal and pushes into the leading one.
func (p BiClosed) RunBackward() Result[Unit] { return narrow[Unit](p.c.walk(Unit{}, true, nil)) }

// Invert swaps the direction of every stage and reverses the chain.
func (p BiOpen[I, O]) Invert() BiOpen[O, I] { return BiOpen[O, I]{c: p.c.invert()} }

// Invert turns the leading terminal into a trailing one.
func (p BiLeftClosed[O]) Invert() BiRightClosed[O] { return BiRightClosed[O]{c: p.c.invert()} }

// Invert turns the trailing terminal into a leading one.
func (p BiRightClosed[I]) Invert() BiLeftClosed[I] { return BiLeftClosed[I]{c: p.c.invert()} }

// Invert swaps the two terminals and reverses the chain.
func (p BiClosed) Invert() BiClosed { return BiClosed{c: p.c.invert()} }

// Forward narrows p to its forward direction.
func (p BiOpen[I, O]) Forward() Open[I, O] { return Open[I, O]{c: p.c} }

// Forward narrows p to its forward direction.
func (p BiLeftClosed[O]) Forward() LeftClosed[O] { return LeftClosed[O]{c: p.c} }

// Forward narrows p to its forward direction.
func (p BiRightClosed[I]) Forward() RightClosed[I] { return RightClosed[I]{c: p.c} }

// Forward narrows p to its forward direction.
func (p BiClosed) Forward() Closed { return Closed{c: p.c} }

// To ends p with the terminal t.
func (p BiOpen[I, O]) To(t BiTerminal[O]) BiRightClosed[I] {
	return BiJoinSink(p, t.RightPipeline())
}

// To ends p with the terminal t.
func (p BiLeftClosed[O]) To(t BiTerminal[O]) BiClosed {
	return BiJoinClosed(p, t.RightPipeline())
}

// BiJoin runs left then right; backward, right then left.
func BiJoin[I, O, P any](left BiOpen[I, O], right BiOpen[O, P]) BiOpen[I, P] {
	return BiOpen[I, P]{c: join(left.c, right.c, ShapeOpen)}
}

// BiJoinSink ends left with the terminal-bound right.
func BiJoinSink[I, O any](left BiOpen[I, O], right BiRightClosed[O]) BiRightClosed[I] {
	return BiRightClosed[I]{c: join(left.c, right.c, ShapeRightClosed)}
}

// BiJoinSource continues the terminal-bound left with right.
func BiJoinSource[O, P any](left BiLeftClosed[O], right BiOpen[O, P]) BiLeftClosed[P] {
	return BiLeftClosed[P]{c: join(left.c, right.c, ShapeLeftClosed)}
}

// BiJoinClosed connects two terminal-bound pipelines.
func BiJoinClosed[O any](left BiLeftClosed[O], right BiRightClosed[O]) BiClosed {
	return BiClosed{c: join(left.c, right.c, ShapeClosed)}
}

// BiThen appends the bidirectional transform t to p.
func BiThen[I, O, P any](p BiOpen[I, O], t BiTransform[O, P]) BiOpen[I, P] {
	return BiJoin(p, t.Pipeline())
}

// BiThenFrom appends the bidirectional transform t to the terminal-bound p.
func BiThenFrom[O, P any](p BiLeftClosed[O], t BiTransform[O, P]) BiLeftClosed[P] {
	return BiJoinSource(p, t.Pipeline())
}

func (p BiOpen[I, O]) Shape() Shape          { return ShapeOpen }
func (p BiOpen[I, O]) Bidirectional() bool   { return true }
func (p BiOpen[I, O]) Len() int              { return p.c.stages() }
func (p BiOpen[I, O]) In() reflect.Type      { return reflect.TypeFor[I]() }
func (p BiOpen[I, O]) Out() reflect.Type     { return reflect.TypeFor[O]() }
func (p BiOpen[I, O]) links() chain          { return p.c }
func (p BiOpen[I, O]) with(c chain) Pipeline { return BiOpen[I, O]{c: c} }

func (p BiLeftClosed[O]) Shape() Shape          { return ShapeLeftClosed }
func (p BiLeftClosed[O]) Bidirectional() bool   { return true }
func (p BiLeftClosed[O]) Len() int              { return p.c.stages() }
func (p BiLeftClosed[O]) In() reflect.Type      { return reflect.TypeFor[Unit]() }
func (p BiLeftClosed[O]) Out() reflect.Type     { return reflect.TypeFor[O]() }
func (p BiLeftClosed[O]) links() chain          { return p.c }
func (p BiLeftClosed[O]) with(c chain) Pipeline { return BiLeftClosed[O]{c: c} }

func (p BiRightClosed[I]) Shape() Shape          { return ShapeRightClosed }
func (p BiRightClosed[I]) Bidirectional() bool   { return true }
func (p BiRightClosed[I]) Len() int              { return p.c.stages() }
func (p BiRightClosed[I]) In() reflect.Type      { return reflect.TypeFor[I]() }
func (p BiRightClosed[I]) Out() reflect.Type     { return reflect.TypeFor[Unit]() }
func (p BiRightClosed[I]) links() chain          { return p.c }
func (p BiRightClosed[I]) with(c chain) Pipeline { return BiRightClosed[I]{c: c} }

func (p BiClosed) Shape() Shape          { return ShapeClosed }
func (p BiClosed) Bidirectional() bool   { return true }
func (p BiClosed) Len() int              { return p.c.stages() }
func (p BiClosed) In() reflect.Type      { return reflect.TypeFor[Unit]() }
func (p BiClosed) Out() reflect.Type     { return reflect.TypeFor[Unit]() }
func (p BiClosed) links() chain          { return p.c }
func (p BiClosed) with(c chain) Pipeline { return BiClosed{c: c} }
