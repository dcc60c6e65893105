// Package trace is the logging subsystem of hyperlex.
//
// Events are spans (begin/end pairs) or points, tagged with a scope. A Level
// selects which scopes reach the output:
//
//   - LevelOff: nothing
//   - LevelError: only ring dumps after a failure
//   - LevelPhase: driver operations and parse passes
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including one point per diagnostic
//
// Tracers travel through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "build", parent)
//	defer span.End("")
//
// Enable it from the command line with --trace=- --trace-level=detail.
package trace
