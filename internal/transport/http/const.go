package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxLogLength is the fallback maximum length of exchange data
	// written to debug logs when no limit is configured.
	DefaultMaxLogLength = 64 * 1024
)
