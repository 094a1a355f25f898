package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Observer provides pre/post hooks around an observed run and around each
// stage that actually runs. Stages skipped by a short-circuit get no hooks.
// Hooks must not panic; a panicking hook aborts the run like a panicking stage.
type Observer interface {
	BeforePipeline(ctx context.Context, run RunInfo, input any)
	AfterPipeline(ctx context.Context, run RunInfo, result Result[any])
	BeforeStage(ctx context.Context, run RunInfo, stage StageInfo, input any)
	AfterStage(ctx context.Context, run RunInfo, stage StageInfo, input any, output Result[any], duration time.Duration)
}

// RunInfo identifies one observed run.
type RunInfo struct {
	RunID    string
	Name     string
	Shape    Shape
	Backward bool
}

// StageInfo describes a stage within a run. Index counts stages in the
// order they are walked, so it restarts from the sink end when running backward.
type StageInfo struct {
	Index int
	Role  Role
	Name  string
}

// RunOptions attaches an Observer, an optional RunID and a pipeline name to a
// run. If RunID is empty, a new UUID is generated.
type RunOptions struct {
	Observer Observer
	RunID    string
	Name     string
}

// RunObserved runs p forward like its Run method, calling the hooks in opts.
// Source-bound pipelines ignore input. With nil opts or a nil Observer it is
// a plain run.
func RunObserved(ctx context.Context, p Pipeline, input any, opts *RunOptions) Result[any] {
	return runObserved(ctx, p, input, false, opts)
}

// RunBackwardObserved is RunObserved in the backward direction. It panics if
// p is not bidirectional.
func RunBackwardObserved(ctx context.Context, p Pipeline, input any, opts *RunOptions) Result[any] {
	return runObserved(ctx, p, input, true, opts)
}

func runObserved(ctx context.Context, p Pipeline, input any, backward bool, opts *RunOptions) Result[any] {
	d := AsDynamic(p)
	if backward && !d.Bidirectional() {
		panic(invariant(ErrNotBidirectional, "cannot run backward"))
	}
	shape := d.Shape()
	input = d.input(input, backward)
	if opts == nil || opts.Observer == nil {
		return d.c.walk(input, backward, nil)
	}
	run := RunInfo{RunID: opts.RunID, Name: opts.Name, Shape: shape, Backward: backward}
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	opts.Observer.BeforePipeline(ctx, run, input)
	result := d.c.walk(input, backward, &runHooks{ctx: ctx, obs: opts.Observer, run: run})
	opts.Observer.AfterPipeline(ctx, run, result)
	return result
}

// MultiObserver calls each observer in order. Nil entries are skipped.
func MultiObserver(observers ...Observer) Observer {
	list := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return multiObserver(list)
}

type multiObserver []Observer

func (m multiObserver) BeforePipeline(ctx context.Context, run RunInfo, input any) {
	for _, o := range m {
		o.BeforePipeline(ctx, run, input)
	}
}

func (m multiObserver) AfterPipeline(ctx context.Context, run RunInfo, result Result[any]) {
	for _, o := range m {
		o.AfterPipeline(ctx, run, result)
	}
}

func (m multiObserver) BeforeStage(ctx context.Context, run RunInfo, stage StageInfo, input any) {
	for _, o := range m {
		o.BeforeStage(ctx, run, stage, input)
	}
}

func (m multiObserver) AfterStage(ctx context.Context, run RunInfo, stage StageInfo, input any, output Result[any], duration time.Duration) {
	for _, o := range m {
		o.AfterStage(ctx, run, stage, input, output, duration)
	}
}
