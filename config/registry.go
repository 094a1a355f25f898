// Package config provides a stage registry and human-readable pipeline configuration.
package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dcshock/plumb/pipeline"
)

// Registry maps names to pipelines (usually single stages). Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]pipeline.Pipeline
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]pipeline.Pipeline)}
}

// Register adds p under the given name. Overwrites any existing registration.
// A single-stage pipeline is labelled with name so observers can report it.
func (r *Registry) Register(name string, p pipeline.Pipeline) {
	if p.Len() == 1 {
		p = pipeline.Label(p, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]pipeline.Pipeline)
	}
	r.entries[name] = p
}

// Get returns the pipeline for name, or nil and false if not found.
func (r *Registry) Get(name string) (pipeline.Pipeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.entries[name]
	return p, ok
}

// MustGet returns the pipeline for name, or panics if not found.
func (r *Registry) MustGet(name string) pipeline.Pipeline {
	p, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("config: stage %q not registered", name))
	}
	return p
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ObserverRegistry maps names to observers so YAML can attach them to a pipeline.
type ObserverRegistry struct {
	mu        sync.RWMutex
	observers map[string]pipeline.Observer
}

// NewObserverRegistry returns an empty observer registry.
func NewObserverRegistry() *ObserverRegistry {
	return &ObserverRegistry{observers: make(map[string]pipeline.Observer)}
}

// Register adds obs under name. Overwrites any existing registration.
func (r *ObserverRegistry) Register(name string, obs pipeline.Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.observers == nil {
		r.observers = make(map[string]pipeline.Observer)
	}
	r.observers[name] = obs
}

// Get returns the observer for name, or nil and false if not found.
func (r *ObserverRegistry) Get(name string) (pipeline.Observer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.observers[name]
	return o, ok
}
