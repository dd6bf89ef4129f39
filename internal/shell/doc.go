// Package shell runs commands and package.json scripts inside project
// directories. Output from concurrent commands is line-buffered and prefixed
// with the project name so lines from different projects never interleave.
package shell
