// Package logging constructs the slog loggers used across prepress and
// provides typed attribute helpers so structured field names stay
// consistent between the pipeline, the extractors, and the CLI.
package logging
