// Package logger provides a structured logging solution using the Zap logging library.
// It includes utilities for creating and managing loggers, setting log levels,
// and integrating logging with context for enhanced traceability.
// The package supports key-value logging and customizable log levels; the debug
// level additionally enables on-the-wire dumps in the HTTP transport layer.
package logger
