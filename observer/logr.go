package observer

import (
	"context"
	"time"

	"github.com/dcshock/plumb/pipeline"
	"github.com/go-logr/logr"
)

// Logr reports runs at V(0) and stages at V(1).
type Logr struct {
	log logr.Logger
}

// NewLogr returns an observer writing to log. A zero logr.Logger discards.
func NewLogr(log logr.Logger) *Logr {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Logr{log: log.WithName("pipeline")}
}

func (l *Logr) run(run pipeline.RunInfo) logr.Logger {
	return l.log.WithValues("run_id", run.RunID, "pipeline", run.Name, "backward", run.Backward)
}

// BeforePipeline implements pipeline.Observer.
func (l *Logr) BeforePipeline(ctx context.Context, run pipeline.RunInfo, input any) {}

// AfterPipeline implements pipeline.Observer.
func (l *Logr) AfterPipeline(ctx context.Context, run pipeline.RunInfo, result pipeline.Result[any]) {
	l.run(run).Info("pipeline finished", "shape", run.Shape.String(), "result", result.String())
}

// BeforeStage implements pipeline.Observer.
func (l *Logr) BeforeStage(ctx context.Context, run pipeline.RunInfo, stage pipeline.StageInfo, input any) {
}

// AfterStage implements pipeline.Observer.
func (l *Logr) AfterStage(ctx context.Context, run pipeline.RunInfo, stage pipeline.StageInfo, input any, output pipeline.Result[any], duration time.Duration) {
	l.run(run).V(1).Info("stage finished",
		"stage", stage.Index,
		"role", stage.Role.String(),
		"name", stage.Name,
		"duration", duration,
		"absent", output.IsAbsent())
}
