// Package observer provides pipeline.Observer implementations for the
// pipeline package.
//
//   - Logger: writes one zerolog event per stage and per run, keyed by run ID.
//   - Logr: the same events through a logr.Logger, for callers that already
//     hand a logr sink around.
//   - Recorder: keeps every hook call in memory so tests and tools can
//     inspect the order of stages and which one stopped a run.
//
// Attach one with pipeline.RunOptions, or register it by name in a
// config.ObserverRegistry and list it under observers: in YAML.
package observer
