package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexmanie/sk-tracing-utils/internal/logger"
)

// CaptureTransport is a custom http.RoundTripper that records the most recent
// request/response exchange. It wraps another http.RoundTripper, forwards each
// request unchanged, and after a successful round trip stores the request and
// response headers and bodies for later inspection.
//
// Only the latest exchange is retained; every successful round trip overwrites
// the previous one. A failed round trip leaves the stored exchange untouched
// and propagates the original error.
//
// Overlapping requests on the same instance race: the round trip that commits
// last wins. Callers that need per-request traceability should use a separate
// instance per request.
type CaptureTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of request/response data in debug logs.
	maxLogLength int64

	// mutex guards the captured exchange below.
	mutex sync.RWMutex
	// requestHeaders holds the headers of the most recent outgoing request.
	requestHeaders map[string]string
	// requestContent holds the body of the most recent outgoing request.
	requestContent []byte
	// responseHeaders holds the headers of the most recent incoming response.
	responseHeaders map[string]string
	// responseContent holds the body of the most recent incoming response.
	responseContent []byte
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewCaptureTransport creates and returns a new instance of CaptureTransport.
// If next is nil, http.DefaultTransport is used.
// If maxLogLength is less than or equal to 0, it defaults to DefaultMaxLogLength.
func NewCaptureTransport(next http.RoundTripper, maxLogLength int64) *CaptureTransport {
	if next == nil {
		next = http.DefaultTransport
	}

	if maxLogLength <= 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &CaptureTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction and captures the exchange.
// It implements the http.RoundTripper interface.
//
// The request body is read up front and restored so the wrapped transport
// observes an identical request. The response body is fully read into memory
// and replaced with an in-memory reader before being returned.
func (t *CaptureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	ctx := req.Context()

	requestContent, err := snapshotRequestBody(req)
	if err != nil {
		return nil, err
	}

	requestHeaders := flattenHeader(req.Header)

	exchangeID := uuid.NewString()
	if logger.IsDebugLevel() {
		logger.Debugf(ctx, "Request %s: %s %s\nHeaders: %v\nContent: %s",
			exchangeID, req.Method, req.URL.String(), requestHeaders, t.truncate(requestContent))
	}

	// Record the start time to measure the duration of the request.
	startTime := time.Now()

	// Forward the request to the underlying RoundTripper.
	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)

	if err != nil {
		logger.Debugf(ctx, "Request %s failed: %s %s | Error: %v",
			exchangeID, req.Method, req.URL.String(), err)

		return nil, err
	}

	responseContent, err := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()

	if err != nil {
		logger.Debugf(ctx, "Request %s failed reading response body: %v", exchangeID, err)

		return nil, err
	}

	if closeErr != nil {
		logger.Warnf(ctx, "Failed to close response body for request %s: %v", exchangeID, closeErr)
	}

	// Hand the fully read body back to the caller. Transparent gzip handling
	// already happened in the underlying transport, which also dropped the
	// Content-Encoding header, so the bytes here are the decoded payload.
	resp.Body = io.NopCloser(bytes.NewReader(responseContent))
	resp.ContentLength = int64(len(responseContent))

	responseHeaders := flattenHeader(resp.Header)

	// Commit the exchange only after the whole response has been read,
	// so a failed round trip never leaves a partial capture behind.
	t.mutex.Lock()
	t.requestHeaders = requestHeaders
	t.requestContent = requestContent
	t.responseHeaders = responseHeaders
	t.responseContent = responseContent
	t.mutex.Unlock()

	if logger.IsDebugLevel() {
		logger.Debugf(ctx, "Response %s: %s %s [%d] %s\nHeaders: %v\nContent: %s",
			exchangeID, req.Method, req.URL.Path, resp.StatusCode, duration,
			responseHeaders, t.truncate(responseContent))
	}

	return resp, nil
}

// RequestHeaders returns the headers of the most recent captured request,
// or nil if no exchange has completed yet.
func (t *CaptureTransport) RequestHeaders() map[string]string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.requestHeaders
}

// RequestContent returns the body of the most recent captured request,
// or nil if no exchange has completed yet.
func (t *CaptureTransport) RequestContent() []byte {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.requestContent
}

// ResponseHeaders returns the headers of the most recent captured response,
// or nil if no exchange has completed yet.
func (t *CaptureTransport) ResponseHeaders() map[string]string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.responseHeaders
}

// ResponseContent returns the body of the most recent captured response,
// or nil if no exchange has completed yet.
func (t *CaptureTransport) ResponseContent() []byte {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.responseContent
}

// snapshotRequestBody reads the request body and restores it so the request
// can still be sent. It returns nil for requests without a body.
func snapshotRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	content, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}

	if closeErr := req.Body.Close(); closeErr != nil {
		return nil, closeErr
	}

	req.Body = io.NopCloser(bytes.NewReader(content))
	req.ContentLength = int64(len(content))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(content)), nil
	}

	return content, nil
}

// flattenHeader converts an http.Header into a plain string map,
// joining repeated header values with a comma.
func flattenHeader(header http.Header) map[string]string {
	result := make(map[string]string, len(header))
	for name, values := range header {
		result[name] = strings.Join(values, ", ")
	}

	return result
}

func (t *CaptureTransport) truncate(data []byte) string {
	if int64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}

	return string(data)
}
