// Package app provides the main application logic for tracing Azure OpenAI
// requests. It builds the client pair, runs the requested operation through
// the instrumented client, and prints the captured exchange report.
package app
