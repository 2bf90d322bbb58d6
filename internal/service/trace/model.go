package trace

// Exchange is a point-in-time snapshot of the most recent captured
// request/response pair. Bodies are carried as text; Azure OpenAI payloads
// are JSON, so a lossy decode is not a concern here.
type Exchange struct {
	// RequestHeaders holds the headers of the captured request.
	RequestHeaders map[string]string `json:"request_headers" yaml:"request_headers"`
	// RequestContent holds the body of the captured request.
	RequestContent string `json:"request_content" yaml:"request_content"`
	// ResponseHeaders holds the headers of the captured response.
	ResponseHeaders map[string]string `json:"response_headers" yaml:"response_headers"`
	// ResponseContent holds the body of the captured response.
	ResponseContent string `json:"response_content" yaml:"response_content"`
}

// IsEmpty reports whether the snapshot contains no captured exchange.
func (e *Exchange) IsEmpty() bool {
	return len(e.RequestHeaders) == 0 &&
		e.RequestContent == "" &&
		len(e.ResponseHeaders) == 0 &&
		e.ResponseContent == ""
}
