// Package config provides a stage registry and human-readable pipeline configuration.
//
// Register typed stages (as one-stage pipelines) by name, then define pipelines in YAML
// (or structs) that reference those names:
//
//	pipelines:
//	  report:
//	    stages:
//	      - read
//	      - parse
//	      - name: encode
//	        invert: true
//	      - print
//	    expect: closed
//	    observers: [log]
//
// BuildPipeline(registry, config) checks every adjacent pair with pipeline.CanJoin
// (shape table and stage types) and reports all problems at once; only a valid
// configuration is joined, with pipeline.JoinDynamic. Run the result with
// pipeline.RunObserved and the observer from BuildObserver.
package config
