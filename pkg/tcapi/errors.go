package tcapi

import (
	"fmt"
	"net/http"
)

// APIError is an error reported by the provider inside a response envelope.
//
// The code and message are kept exactly as the provider sent them.
type APIError struct {
	Code      string `json:"Code"`
	Message   string `json:"Message"`
	RequestID string `json:"-"`
}

func (e *APIError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (request id %s)", e.Code, e.Message, e.RequestID)
}

// ParseError is returned when a response body could not be decoded as an envelope.
type ParseError struct {
	StatusCode int    // The HTTP status of the response, 0 if unknown
	Body       string // A prefix of the response body for diagnostics
	Err        error
}

const maxParseErrorBody = 256

func newParseError(statusCode int, body []byte, err error) *ParseError {
	if len(body) > maxParseErrorBody {
		body = body[:maxParseErrorBody]
	}
	return &ParseError{StatusCode: statusCode, Body: string(body), Err: err}
}

func (e *ParseError) Error() string {
	if e.StatusCode != 0 && (e.StatusCode < 200 || e.StatusCode > 299) {
		return fmt.Sprintf("unable to decode response (status %d %s): %v", e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("unable to decode response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransportError is returned when a request could not be sent or its response
// could not be read.
type TransportError struct {
	Action string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Action, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
