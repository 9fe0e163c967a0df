// Package graph builds and executes the dataflow graph. It links unit
// definitions into nodes by matching parameter names to output names,
// computes minimal upstream closures for requested outputs, detects cycles,
// and runs memoized depth-first execution over a closure. A Graph is
// immutable after construction; per-call state (memo, overrides, runtime
// inputs) never outlives a single Execute call.
package graph
