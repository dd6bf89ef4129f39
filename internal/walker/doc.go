// Package walker runs an action against every project of a workspace.
//
// Plan orders the projects into batches: with dependency ordering enabled
// the graph scheduler layers them, otherwise registry order is used as a
// single batch (parallel) or one project per batch (serial). Execute then
// runs each batch concurrently and waits for every action in it to settle
// before starting the next one.
//
// Failures are isolated: an action's error or panic becomes a Failure entry
// and never cancels siblings or later batches. Dependents of a failed project
// still run; callers that want different behavior inspect the Result.
//
// The package tests are property-style (every project runs exactly once,
// dependencies settle first, the Jobs cap holds) and use testify.
package walker
