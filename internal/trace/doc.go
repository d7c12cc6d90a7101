// Package trace provides event tracing and warnings for numlens.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	numlens annotate --trace=- --trace-level=detail report.json
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only warnings
//   - LevelPhase: Command boundaries
//   - LevelDetail: Per-stage events (decode, resolve, render)
//   - LevelDebug: Everything including per-item events
//
// # Scopes
//
//   - ScopeCommand: Top-level CLI operations
//   - ScopeStage: Stages of a command (decode, render, cache)
//   - ScopeItem: Individual items (one report file, one intermediate)
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "render", parentID)
//	defer span.End("")
package trace
