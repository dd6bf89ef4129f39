// Package logging provides structured logging for wsrun. It wraps log/slog
// with a small Logger type that carries persistent attributes such as the
// project being processed.
package logging
