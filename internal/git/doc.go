// Package git provides a thin wrapper around the Git CLI for the few queries
// wsrun needs: locating a repository and listing files changed since a ref.
// It does not depend on other internal packages.
package git
