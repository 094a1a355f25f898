package config

import (
	"fmt"
	"os"

	"github.com/dcshock/plumb/pipeline"
	"gopkg.in/yaml.v3"
)

// PipelineConfig is the root structure for a pipeline definition (e.g. from YAML).
type PipelineConfig struct {
	Name      string     `yaml:"name"`
	Stages    []StageRef `yaml:"stages"`
	Expect    Shape      `yaml:"expect"`    // optional: fail the build unless the result has this shape
	Observers []string   `yaml:"observers"` // optional: names registered in an ObserverRegistry
}

// StageRef is a single stage entry: either a plain name or name + options.
// In YAML, a stage can be written as:
//   - parse
//   - name: encode
//     invert: true
type StageRef struct {
	Name string `yaml:"name"`

	// Invert runs a bidirectional entry in the opposite direction.
	Invert bool `yaml:"invert"`
}

// UnmarshalYAML allows a stage to be a string (stage name only) or a struct.
func (s *StageRef) UnmarshalYAML(value *yaml.Node) error {
	var nameOnly string
	if err := value.Decode(&nameOnly); err == nil {
		s.Name = nameOnly
		return nil
	}
	type raw StageRef
	return value.Decode((*raw)(s))
}

// Shape is a pipeline.Shape that unmarshals from YAML strings ("open", "left_closed", ...).
// The zero value means no expectation.
type Shape pipeline.Shape

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Shape) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := pipeline.ParseShape(name)
	if err != nil {
		return err
	}
	*s = Shape(parsed)
	return nil
}

// Shape returns the pipeline.Shape.
func (s Shape) Shape() pipeline.Shape { return pipeline.Shape(s) }

// ParsePipelineConfig parses YAML bytes into a single PipelineConfig.
func ParsePipelineConfig(data []byte) (*PipelineConfig, error) {
	var cfg PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MultiPipelineConfig is the root structure for a file that defines multiple pipelines.
// Top-level key is "pipelines"; each value is a pipeline (name + stages).
type MultiPipelineConfig struct {
	Pipelines map[string]PipelineConfig `yaml:"pipelines"`
}

// ParseMultiPipelineConfig parses YAML bytes that contain a "pipelines" map from name to pipeline config.
// Example YAML:
//
//	pipelines:
//	  ingest:
//	    name: ingest
//	    stages: [read, parse]
//	    expect: left_closed
//	  roundtrip:
//	    stages: [encode, {name: encode, invert: true}]
func ParseMultiPipelineConfig(data []byte) (*MultiPipelineConfig, error) {
	var cfg MultiPipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads and parses a multi-pipeline YAML file.
func LoadFile(path string) (*MultiPipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := ParseMultiPipelineConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
