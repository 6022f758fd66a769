package client

import (
	"fmt"
)

const previewLength = 100

// HTTPError is returned when the remote API answers with an error status. The body is kept verbatim for diagnostics.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// ParseError is returned when the response body is not valid JSON.
type ParseError struct {
	Endpoint string
	Preview  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON from %s: %q", e.Endpoint, e.Preview)
}

// NetworkError is returned when no complete response could be obtained from the remote API.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RequestError is returned when no request could be built for the endpoint, typically a malformed URL.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request URL %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func preview(body []byte) string {
	runes := []rune(string(body))
	if len(runes) <= previewLength {
		return string(runes)
	}
	return string(runes[:previewLength])
}
