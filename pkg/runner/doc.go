// Package runner applies an asynchronous operation to every element of a
// slice concurrently and combines the results with a behavior.ReturnBehavior.
//
// Highlights:
// - New: create a Parallel runner (LastReturn unless WithBehavior is given)
// - Go: fan out one goroutine per element and return a single-value future
// - Run/Await: wait for the future; Await can stop waiting when ctx ends
// - Bind: attach a receiver to a method expression
// - RunDynamic: same as Go for untyped values checked at run time
//
// The first failing invocation rejects the whole run with its own error.
// Other invocations are never cancelled; their outcomes are discarded.
package runner
