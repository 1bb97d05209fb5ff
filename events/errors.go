package events

import "fmt"

// Retryable is implemented by every error returned from Client sends. Callers
// can errors.As to it without caring which concrete failure occurred.
type Retryable interface {
	error

	// RetryAllowedAfterDelay is true if the send may succeed when retried
	// later, or false if it will never succeed and the event must be fixed
	// first.
	RetryAllowedAfterDelay() bool
}

// NetworkError means no HTTP response was obtained at all: DNS failure, TLS
// failure, connection refused, timeout, or context cancellation. Always
// retryable.
type NetworkError struct {
	// URL the request was sent to.
	URL string

	// Err is the underlying transport error.
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to send event to %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) RetryAllowedAfterDelay() bool { return true }

// WebApplicationError is any unsuccessful HTTP response from the Events API.
// Specialized types exist for 400 (BadRequestError), 429 (RateLimitedError),
// and 5xx (InternalServerError); anything else non-202 is reported as this
// generic type and treated as retryable.
type WebApplicationError struct {
	// StatusCode is the HTTP status of the response, such as 400.
	StatusCode int

	// Response is the plaintext body of the response, if one was supplied.
	Response string

	// URL the request was sent to.
	URL string
}

func (e *WebApplicationError) Error() string {
	return fmt.Sprintf("failed to send event to %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *WebApplicationError) RetryAllowedAfterDelay() bool { return true }

// BadRequestError is an HTTP 400 response: the event payload was malformed
// and will never be accepted, so retrying is pointless.
type BadRequestError struct {
	WebApplicationError
}

func (e *BadRequestError) RetryAllowedAfterDelay() bool { return false }

// RateLimitedError is an HTTP 429 response: the service is throttling event
// ingestion. Retry after backing off, preferably by a few minutes.
type RateLimitedError struct {
	WebApplicationError
}

func (e *RateLimitedError) RetryAllowedAfterDelay() bool { return true }

// InternalServerError is an HTTP 5xx response: PagerDuty experienced an error
// while processing the event. Retryable.
type InternalServerError struct {
	WebApplicationError
}

func (e *InternalServerError) RetryAllowedAfterDelay() bool { return true }

// classifyStatus maps a non-202 HTTP status to its typed error.
func classifyStatus(statusCode int, url, responseBody string) error {
	base := WebApplicationError{StatusCode: statusCode, Response: responseBody, URL: url}
	switch {
	case statusCode == 400:
		return &BadRequestError{base}
	case statusCode == 429:
		return &RateLimitedError{base}
	case statusCode >= 500 && statusCode <= 599:
		return &InternalServerError{base}
	default:
		return &base
	}
}
