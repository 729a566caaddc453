// Package logging constructs the slog loggers used throughout reshelf and
// provides attr helpers plus context-derived field propagation.
package logging
