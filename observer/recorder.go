package observer

import (
	"context"
	"sync"
	"time"

	"github.com/dcshock/plumb/pipeline"
)

// EventKind names the hook that produced an Event.
type EventKind string

const (
	EventBeforePipeline EventKind = "before_pipeline"
	EventAfterPipeline  EventKind = "after_pipeline"
	EventBeforeStage    EventKind = "before_stage"
	EventAfterStage     EventKind = "after_stage"
)

// Event is one recorded hook call. Stage is zero for pipeline events; Output
// and Duration are set only for after_* events.
type Event struct {
	Kind     EventKind
	Run      pipeline.RunInfo
	Stage    pipeline.StageInfo
	Input    any
	Output   pipeline.Result[any]
	Duration time.Duration
}

// Recorder keeps every hook call in order. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the events recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Stopped returns the last stage that produced Absent in the run with the
// given ID.
func (r *Recorder) Stopped(runID string) (pipeline.StageInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if e.Kind == EventAfterStage && e.Run.RunID == runID && e.Output.IsAbsent() {
			return e.Stage, true
		}
	}
	return pipeline.StageInfo{}, false
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// BeforePipeline implements pipeline.Observer.
func (r *Recorder) BeforePipeline(ctx context.Context, run pipeline.RunInfo, input any) {
	r.add(Event{Kind: EventBeforePipeline, Run: run, Input: input})
}

// AfterPipeline implements pipeline.Observer.
func (r *Recorder) AfterPipeline(ctx context.Context, run pipeline.RunInfo, result pipeline.Result[any]) {
	r.add(Event{Kind: EventAfterPipeline, Run: run, Output: result})
}

// BeforeStage implements pipeline.Observer.
func (r *Recorder) BeforeStage(ctx context.Context, run pipeline.RunInfo, stage pipeline.StageInfo, input any) {
	r.add(Event{Kind: EventBeforeStage, Run: run, Stage: stage, Input: input})
}

// AfterStage implements pipeline.Observer.
func (r *Recorder) AfterStage(ctx context.Context, run pipeline.RunInfo, stage pipeline.StageInfo, input any, output pipeline.Result[any], duration time.Duration) {
	r.add(Event{Kind: EventAfterStage, Run: run, Stage: stage, Input: input, Output: output, Duration: duration})
}
