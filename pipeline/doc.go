// Package pipeline assembles typed, immutable chains of stages. A stage is a
// Source (produces a value), a Transform (maps an input to an output) or a
// Sink (consumes a value); every stage returns a Result, and the first stage
// that returns Absent stops the run: later stages are never called.
//
// Each stage converts into a one-stage pipeline with its Pipeline method.
// Pipelines have one of four shapes depending on which ends are bound:
//
//	Open[I, O]      Run(I) Result[O]
//	LeftClosed[O]   Run() Result[O]        starts with a Source
//	RightClosed[I]  Run(I) Result[Unit]    ends with a Sink
//	Closed          Run() Result[Unit]     both
//
// Pipelines are joined left to right. Only four combinations exist, and each
// has its own function so the compiler rejects the rest:
//
//	Join(Open, Open)               Open
//	JoinSink(Open, RightClosed)    RightClosed
//	JoinSource(LeftClosed, Open)   LeftClosed
//	JoinClosed(LeftClosed, RightClosed)  Closed
//
// Then, ThenFrom and the To methods accept a bare stage on the right.
//
// Joining never modifies its inputs. The nodes of both sides are copied into
// a new chain; the stages they wrap are shared. Both inputs stay usable and
// a pipeline can be joined with itself:
//
//	inc := pipeline.Lift(func(n int) int { return n + 1 }).Pipeline()
//	twice := pipeline.Join(inc, inc)
//	twice.Run(1) // Produced(3)
//	inc.Run(1)   // Produced(2)
//
// # Bidirectional pipelines
//
// BiTransform and BiTerminal stages carry an inverse. They build BiOpen,
// BiLeftClosed, BiRightClosed and BiClosed pipelines, joined with BiJoin,
// BiJoinSink, BiJoinSource and BiJoinClosed. These add RunBackward, which
// walks from the last stage to the first applying each inverse, and Invert,
// which returns the reversed pipeline. Forward narrows one to its
// unidirectional counterpart.
//
// # Runtime composition
//
// Every handle implements Pipeline. When stage types are only known at run
// time (see the config package), CanJoin and JoinDynamic check the
// composition table and the stage types when joining, and Dynamic runs the
// result with values of type any.
//
// # Observing runs
//
// RunObserved and RunBackwardObserved run any Pipeline with an Observer
// attached through RunOptions (see the observer package for logging and
// recording implementations). Label names a stage for those hooks.
//
// # Programming errors
//
// Misusing construction (joining shapes outside the table at run time,
// inverting a unidirectional pipeline, running a zero-value pipeline) panics
// with an *InvariantError wrapping one of the Err sentinels. Absent is not an
// error, and panics raised by stages propagate to the caller unchanged.
package pipeline
