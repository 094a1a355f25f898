package observer

import (
	"context"
	"time"

	"github.com/dcshock/plumb/pipeline"
	"github.com/rs/zerolog"
)

// Logger logs runs at info level and stages at debug level.
type Logger struct {
	log zerolog.Logger
}

// NewLogger returns an observer writing to log, tagged component=pipeline.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "pipeline").Logger()}
}

func (l *Logger) run(run pipeline.RunInfo) zerolog.Context {
	return l.log.With().
		Str("run_id", run.RunID).
		Str("pipeline", run.Name).
		Str("shape", run.Shape.String()).
		Bool("backward", run.Backward)
}

// BeforePipeline implements pipeline.Observer.
func (l *Logger) BeforePipeline(ctx context.Context, run pipeline.RunInfo, input any) {
	log := l.run(run).Logger()
	log.Debug().Interface("input", input).Msg("pipeline started")
}

// AfterPipeline implements pipeline.Observer.
func (l *Logger) AfterPipeline(ctx context.Context, run pipeline.RunInfo, result pipeline.Result[any]) {
	log := l.run(run).Logger()
	ev := log.Info().Bool("absent", result.IsAbsent())
	if v, ok := result.Get(); ok {
		ev = ev.Interface("result", v)
	}
	ev.Msg("pipeline finished")
}

// BeforeStage implements pipeline.Observer.
func (l *Logger) BeforeStage(ctx context.Context, run pipeline.RunInfo, stage pipeline.StageInfo, input any) {
}

// AfterStage implements pipeline.Observer.
func (l *Logger) AfterStage(ctx context.Context, run pipeline.RunInfo, stage pipeline.StageInfo, input any, output pipeline.Result[any], duration time.Duration) {
	log := l.run(run).Logger()
	log.Debug().
		Int("stage", stage.Index).
		Str("role", stage.Role.String()).
		Str("name", stage.Name).
		Dur("duration", duration).
		Bool("absent", output.IsAbsent()).
		Msg("stage finished")
}
