// Package graph builds the dependency graph of a workspace and schedules it
// into batches.
//
// Nodes are projects keyed by name; an edge runs from a project to each of
// its dependencies that is itself a workspace project. Only the dependency
// kinds chosen by an Include take part. Names that match no project are
// external and produce no edge.
//
// Batches performs a layered (Kahn) topological sort: every project in a
// batch depends only on projects in strictly earlier batches, so a batch can
// run concurrently once the previous one has settled.
//
// The package tests check scheduling properties over random acyclic graphs
// and use testify.
package graph
