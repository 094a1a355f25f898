package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dcshock/plumb/pipeline"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

func testRegistry(sunk *[]string) *Registry {
	reg := NewRegistry()
	reg.Register("seven", pipeline.Emit(7).Pipeline())
	reg.Register("double", pipeline.Lift(func(n int) int { return n * 2 }).Pipeline())
	reg.Register("itoa", pipeline.Lift(strconv.Itoa).Pipeline())
	reg.Register("positive", pipeline.Filter(func(n int) bool { return n > 0 }).Pipeline())
	reg.Register("print", pipeline.LiftSink(func(s string) { *sunk = append(*sunk, s) }).Pipeline())
	reg.Register("codec", pipeline.BiTransform[int, string]{
		Forward: func(n int) pipeline.Result[string] { return pipeline.Produced(strconv.Itoa(n)) },
		Backward: func(s string) pipeline.Result[int] {
			n, err := strconv.Atoi(s)
			if err != nil {
				return pipeline.Absent[int]()
			}
			return pipeline.Produced(n)
		},
	}.Pipeline())
	return reg
}

func TestRegistry_RegisterGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register("id", pipeline.Pass[int]().Pipeline())
	p, ok := reg.Get("id")
	if !ok || p == nil {
		t.Fatal("Get(id) should return pipeline")
	}
	if names := pipeline.AsDynamic(p).Stages(); len(names) != 1 || names[0] != "id" {
		t.Errorf("registered stage should carry its name: %v", names)
	}
	_, ok = reg.Get("missing")
	if ok {
		t.Error("Get(missing) should return false")
	}
}

func TestRegistry_MustGet_Panic(t *testing.T) {
	reg := NewRegistry()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustGet missing should panic")
		}
	}()
	reg.MustGet("nope")
}

func TestRegistry_Names(t *testing.T) {
	var sunk []string
	names := testRegistry(&sunk).Names()
	want := []string{"codec", "double", "itoa", "positive", "print", "seven"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("names: got %v", names)
	}
}

func TestParsePipelineConfig_Simple(t *testing.T) {
	yaml := `
name: test-pipeline
stages:
  - seven
  - double
  - itoa
expect: left_closed
`
	cfg, err := ParsePipelineConfig([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "test-pipeline" {
		t.Errorf("name: got %q", cfg.Name)
	}
	if len(cfg.Stages) != 3 {
		t.Fatalf("stages: got %d", len(cfg.Stages))
	}
	if cfg.Stages[0].Name != "seven" || cfg.Stages[1].Name != "double" || cfg.Stages[2].Name != "itoa" {
		t.Errorf("stage names: %v", cfg.Stages)
	}
	if cfg.Expect.Shape() != pipeline.ShapeLeftClosed {
		t.Errorf("expect: got %s", cfg.Expect.Shape())
	}
}

func TestParsePipelineConfig_WithOptions(t *testing.T) {
	yaml := `
name: roundtrip
stages:
  - codec
  - name: codec
    invert: true
`
	cfg, err := ParsePipelineConfig([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Stages) != 2 {
		t.Fatalf("stages: got %d", len(cfg.Stages))
	}
	if s := cfg.Stages[1]; s.Name != "codec" || !s.Invert {
		t.Errorf("stage 1: %+v", s)
	}
	if cfg.Stages[0].Invert {
		t.Error("stage 0 should not be inverted")
	}
}

func TestShape_UnmarshalInvalid(t *testing.T) {
	var s struct {
		Expect Shape `yaml:"expect"`
	}
	if err := yaml.Unmarshal([]byte("expect: sideways"), &s); err == nil {
		t.Fatal("expected error for unknown shape")
	}
}

func TestBuildPipeline_Closed(t *testing.T) {
	var sunk []string
	reg := testRegistry(&sunk)
	cfg := &PipelineConfig{
		Name:   "report",
		Stages: []StageRef{{Name: "seven"}, {Name: "double"}, {Name: "itoa"}, {Name: "print"}},
		Expect: Shape(pipeline.ShapeClosed),
	}
	p, err := BuildPipeline(reg, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Run(nil); got != pipeline.Produced[any](pipeline.Unit{}) {
		t.Errorf("run: got %v", got)
	}
	if len(sunk) != 1 || sunk[0] != "14" {
		t.Errorf("sink saw %v", sunk)
	}
	if got := strings.Join(p.Stages(), ","); got != "seven,double,itoa,print" {
		t.Errorf("stages: %s", got)
	}
}

func TestBuildPipeline_ShortCircuit(t *testing.T) {
	var sunk []string
	reg := testRegistry(&sunk)
	cfg := &PipelineConfig{Name: "guarded", Stages: []StageRef{{Name: "positive"}, {Name: "itoa"}, {Name: "print"}}}
	p, err := BuildPipeline(reg, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Run(-1); !got.IsAbsent() {
		t.Errorf("run(-1): got %v", got)
	}
	if len(sunk) != 0 {
		t.Errorf("sink should not run: %v", sunk)
	}
}

func TestBuildPipeline_Invert(t *testing.T) {
	var sunk []string
	reg := testRegistry(&sunk)
	cfg := &PipelineConfig{Name: "roundtrip", Stages: []StageRef{{Name: "codec"}, {Name: "codec", Invert: true}}}
	p, err := BuildPipeline(reg, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Run(12); got != pipeline.Produced[any](12) {
		t.Errorf("run: got %v", got)
	}
	if got := p.RunBackward(5); got != pipeline.Produced[any](5) {
		t.Errorf("runBackward: got %v", got)
	}
}

func TestBuildPipeline_CollectsAllErrors(t *testing.T) {
	var sunk []string
	reg := testRegistry(&sunk)
	cfg := &PipelineConfig{
		Name: "broken",
		Stages: []StageRef{
			{Name: "print"},               // sink first: nothing may follow
			{Name: "double"},              // right after a sink
			{Name: "itoa"},                // ok
			{Name: "double"},              // string into int
			{Name: "missing"},             // not registered
			{Name: "double", Invert: true}, // not bidirectional
		},
	}
	_, err := BuildPipeline(reg, cfg)
	if err == nil {
		t.Fatal("expected errors")
	}
	errs := multierr.Errors(err)
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), err)
	}
	if !errors.Is(err, pipeline.ErrShapeMismatch) || !errors.Is(err, pipeline.ErrTypeMismatch) || !errors.Is(err, pipeline.ErrNotBidirectional) {
		t.Errorf("missing expected causes: %v", err)
	}
	if !strings.Contains(err.Error(), `"missing" not in registry`) {
		t.Errorf("missing stage not reported: %v", err)
	}
}

func TestBuildPipeline_ExpectMismatch(t *testing.T) {
	var sunk []string
	reg := testRegistry(&sunk)
	cfg := &PipelineConfig{Name: "x", Stages: []StageRef{{Name: "double"}}, Expect: Shape(pipeline.ShapeClosed)}
	_, err := BuildPipeline(reg, cfg)
	if !errors.Is(err, pipeline.ErrShapeMismatch) {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
}

func TestBuildPipeline_Empty(t *testing.T) {
	reg := NewRegistry()
	if _, err := BuildPipeline(reg, &PipelineConfig{Name: "empty"}); err == nil {
		t.Fatal("expected error for empty stage list")
	}
	if _, err := BuildPipeline(reg, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := BuildPipeline(reg, &PipelineConfig{Stages: []StageRef{{}}}); err == nil {
		t.Fatal("expected error for unnamed stage")
	}
}

func TestParseMultiPipelineConfig(t *testing.T) {
	yaml := `
pipelines:
  report:
    name: report
    stages: [seven, double]
  guarded:
    stages: [positive, itoa]
`
	multi, err := ParseMultiPipelineConfig([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if len(multi.Pipelines) != 2 {
		t.Fatalf("pipelines: got %d", len(multi.Pipelines))
	}
	if multi.Pipelines["report"].Name != "report" || len(multi.Pipelines["report"].Stages) != 2 {
		t.Errorf("report: %+v", multi.Pipelines["report"])
	}
	if multi.Pipelines["guarded"].Name != "" {
		t.Errorf("guarded name should be empty in raw config: %q", multi.Pipelines["guarded"].Name)
	}
}

func TestBuildAllPipelines(t *testing.T) {
	var sunk []string
	reg := testRegistry(&sunk)
	yaml := `
pipelines:
  report:
    stages: [seven, double, itoa]
    expect: left_closed
  guarded:
    stages: [positive, double]
`
	multi, err := ParseMultiPipelineConfig([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	pipelines, err := BuildAllPipelines(reg, multi)
	if err != nil {
		t.Fatal(err)
	}
	if len(pipelines) != 2 {
		t.Fatalf("got %d pipelines", len(pipelines))
	}
	if got := pipelines["report"].Run(nil); got != pipeline.Produced[any]("14") {
		t.Errorf("report: got %v", got)
	}
	if got := pipelines["guarded"].Run(3); got != pipeline.Produced[any](6) {
		t.Errorf("guarded: got %v", got)
	}
}

func TestBuildAllPipelines_Errors(t *testing.T) {
	var sunk []string
	reg := testRegistry(&sunk)
	multi := &MultiPipelineConfig{Pipelines: map[string]PipelineConfig{
		"a": {Stages: []StageRef{{Name: "nope"}}},
		"b": {Stages: []StageRef{{Name: "itoa"}, {Name: "double"}}},
		"c": {Stages: []StageRef{{Name: "double"}}},
	}}
	_, err := BuildAllPipelines(reg, multi)
	if len(multierr.Errors(err)) != 2 {
		t.Fatalf("expected 2 errors, got %v", err)
	}
	if !strings.Contains(err.Error(), `pipeline "a"`) || !strings.Contains(err.Error(), `pipeline "b"`) {
		t.Errorf("errors should name pipelines: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipelines.yaml")
	data := "pipelines:\n  report:\n    stages: [seven, itoa]\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	multi, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(multi.Pipelines["report"].Stages) != 2 {
		t.Errorf("report: %+v", multi.Pipelines["report"])
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildObserver(t *testing.T) {
	var sunk []string
	reg := testRegistry(&sunk)
	rec := &countingObserver{}
	observers := NewObserverRegistry()
	observers.Register("count", rec)

	cfg := &PipelineConfig{Name: "observed", Stages: []StageRef{{Name: "double"}, {Name: "itoa"}}, Observers: []string{"count"}}
	obs, err := BuildObserver(cfg, observers)
	if err != nil {
		t.Fatal(err)
	}
	p, err := BuildPipeline(reg, cfg)
	if err != nil {
		t.Fatal(err)
	}
	got := pipeline.RunObserved(context.Background(), p, 4, &pipeline.RunOptions{Observer: obs, Name: cfg.Name})
	if got != pipeline.Produced[any]("8") {
		t.Errorf("run: got %v", got)
	}
	if rec.stages != 2 || rec.runs != 1 {
		t.Errorf("observer saw %d stages, %d runs", rec.stages, rec.runs)
	}

	cfg.Observers = []string{"count", "missing"}
	if _, err := BuildObserver(cfg, observers); err == nil {
		t.Error("expected error for unregistered observer")
	}
	if obs, err := BuildObserver(&PipelineConfig{}, observers); obs != nil || err != nil {
		t.Errorf("no observers: got %v, %v", obs, err)
	}
}

// countingObserver implements pipeline.Observer and counts calls.
type countingObserver struct {
	runs, stages int
}

func (c *countingObserver) BeforePipeline(ctx context.Context, run pipeline.RunInfo, input any) {}
func (c *countingObserver) AfterPipeline(ctx context.Context, run pipeline.RunInfo, result pipeline.Result[any]) {
	c.runs++
}
func (c *countingObserver) BeforeStage(ctx context.Context, run pipeline.RunInfo, stage pipeline.StageInfo, input any) {
}
func (c *countingObserver) AfterStage(ctx context.Context, run pipeline.RunInfo, stage pipeline.StageInfo, input any, output pipeline.Result[any], d time.Duration) {
	c.stages++
}
