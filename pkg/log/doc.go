// Package log provides a logging abstraction for gonio components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. Default implementations are provided for zerolog
// and a no-op logger for testing.
//
// Diagnostics always go to stderr so that generated output, such as the
// pose configuration snippet printed after an export, stays clean on
// stdout.
package log
