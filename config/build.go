package config

import (
	"fmt"
	"sort"

	"github.com/dcshock/plumb/pipeline"
	"go.uber.org/multierr"
)

// BuildPipeline joins the registered entries named in cfg, left to right.
// Every adjacent pair is checked with pipeline.CanJoin before anything is
// joined, and all problems found are returned together.
func BuildPipeline(reg *Registry, cfg *PipelineConfig) (pipeline.Dynamic, error) {
	if cfg == nil {
		return pipeline.Dynamic{}, fmt.Errorf("config is nil")
	}
	if len(cfg.Stages) == 0 {
		return pipeline.Dynamic{}, fmt.Errorf("pipeline %q: no stages", cfg.Name)
	}
	parts := make([]pipeline.Pipeline, 0, len(cfg.Stages))
	var errs error
	for i, ref := range cfg.Stages {
		p, err := resolve(reg, ref)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("stage %d: %w", i, err))
			parts = append(parts, nil)
			continue
		}
		parts = append(parts, p)
	}
	for i := 1; i < len(parts); i++ {
		left, right := parts[i-1], parts[i]
		if left == nil || right == nil {
			continue
		}
		if err := pipeline.CanJoin(left, right); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("stage %d (%q) -> stage %d (%q): %w",
				i-1, cfg.Stages[i-1].Name, i, cfg.Stages[i].Name, err))
		}
	}
	if errs != nil {
		return pipeline.Dynamic{}, errs
	}

	out := pipeline.AsDynamic(parts[0])
	for _, p := range parts[1:] {
		out = pipeline.JoinDynamic(out, p)
	}
	if want := cfg.Expect.Shape(); want != 0 && out.Shape() != want {
		return pipeline.Dynamic{}, fmt.Errorf("pipeline %q: %w: built %s, expected %s",
			cfg.Name, pipeline.ErrShapeMismatch, out.Shape(), want)
	}
	return out, nil
}

func resolve(reg *Registry, ref StageRef) (pipeline.Pipeline, error) {
	if ref.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	p, ok := reg.Get(ref.Name)
	if !ok {
		return nil, fmt.Errorf("%q not in registry", ref.Name)
	}
	if !ref.Invert {
		return p, nil
	}
	if !p.Bidirectional() {
		return nil, fmt.Errorf("%q: %w", ref.Name, pipeline.ErrNotBidirectional)
	}
	return pipeline.AsDynamic(p).Invert(), nil
}

// BuildObserver returns a pipeline.Observer for the config's Observers list by looking up each name
// in reg and combining them with pipeline.MultiObserver. Use it with pipeline.RunObserved
// so the run uses the observers specified in YAML.
// If cfg.Observers is empty or reg is nil, returns (nil, nil). If any observer name is not
// registered, returns an error.
func BuildObserver(cfg *PipelineConfig, reg *ObserverRegistry) (pipeline.Observer, error) {
	if cfg == nil || len(cfg.Observers) == 0 || reg == nil {
		return nil, nil
	}
	list := make([]pipeline.Observer, 0, len(cfg.Observers))
	for i, name := range cfg.Observers {
		obs, ok := reg.Get(name)
		if !ok {
			return nil, fmt.Errorf("observer %d: %q not in registry", i, name)
		}
		list = append(list, obs)
	}
	return pipeline.MultiObserver(list...), nil
}

// BuildAllPipelines builds a pipeline for each entry in multi. Keys are pipeline names.
// If a pipeline config's Name is empty, the map key is used as the pipeline name.
// Errors from every pipeline are returned together.
func BuildAllPipelines(reg *Registry, multi *MultiPipelineConfig) (map[string]pipeline.Dynamic, error) {
	if multi == nil {
		return nil, fmt.Errorf("MultiPipelineConfig is nil")
	}
	names := make([]string, 0, len(multi.Pipelines))
	for name := range multi.Pipelines {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]pipeline.Dynamic, len(names))
	var errs error
	for _, name := range names {
		cfg := multi.Pipelines[name]
		if cfg.Name == "" {
			cfg.Name = name
		}
		p, err := BuildPipeline(reg, &cfg)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("pipeline %q: %w", name, err))
			continue
		}
		out[name] = p
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}
