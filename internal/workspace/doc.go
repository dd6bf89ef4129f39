// Package workspace discovers the member projects of a workspace. It resolves
// the root manifest's member globs against the filesystem, loads every
// matching descriptor, and caches the name-ordered result for the lifetime of
// a Context. It also provides the name and change-based project filters.
package workspace
