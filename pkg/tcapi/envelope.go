package tcapi

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Envelope is the outer object of every API response.
type Envelope[T any] struct {
	Response *Response[T] `json:"Response"`
}

// Response holds either an error or the operation result T, alongside the
// request id. Exactly one of Error and Data is set after decoding.
type Response[T any] struct {
	Error     *APIError
	RequestID string
	Data      *T
}

type responseHead struct {
	Error     *APIError `json:"Error,omitempty"`
	RequestID string    `json:"RequestId"`
}

// UnmarshalJSON decodes the flattened wire form.
func (r *Response[T]) UnmarshalJSON(b []byte) error {
	var head responseHead
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	r.Error = head.Error
	r.RequestID = head.RequestID
	r.Data = nil

	if r.Error != nil {
		r.Error.RequestID = r.RequestID
		return nil
	}

	// Data is only present if the object carries fields beyond the head
	fields := map[string]jsoniter.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	delete(fields, "RequestId")
	delete(fields, "Error")
	if len(fields) == 0 {
		return nil
	}

	data := new(T)
	if err := json.Unmarshal(b, data); err != nil {
		return err
	}
	r.Data = data
	return nil
}

// Validator is implemented by operation results that have required fields.
type Validator interface {
	Validate() error
}

// MarshalJSON encodes the response with the fields of Data merged into the
// same object as RequestId. Data is omitted when Error is set.
func (r Response[T]) MarshalJSON() ([]byte, error) {
	fields := map[string]jsoniter.RawMessage{}
	if r.Error == nil && r.Data != nil {
		b, err := json.Marshal(r.Data)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &fields); err != nil {
			return nil, errors.New("response data must encode as a JSON object")
		}
	}

	head, err := json.Marshal(responseHead{Error: r.Error, RequestID: r.RequestID})
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(head, &fields); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// Decode parses body as an envelope around T.
//
// statusCode is only used to annotate parse failures; the envelope is always
// decoded first since the provider reports errors with a 200 status.
// It returns the operation result and request id, an *APIError if the
// provider reported one, or a *ParseError if the body is not an envelope,
// carries no operation fields, or fails the result's Validate method.
func Decode[T any](statusCode int, body []byte) (data *T, requestID string, err error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, "", newParseError(statusCode, body, errors.New("empty response body"))
	}

	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, "", newParseError(statusCode, body, err)
	}
	if env.Response == nil {
		return nil, "", newParseError(statusCode, body, errors.New("missing Response object"))
	}

	resp := env.Response
	if resp.Error != nil {
		return nil, resp.RequestID, resp.Error
	}
	if resp.Data == nil {
		return nil, resp.RequestID, newParseError(statusCode, body, errors.New("missing response data"))
	}
	if v, ok := any(resp.Data).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, resp.RequestID, newParseError(statusCode, body, fmt.Errorf("invalid response data: %w", err))
		}
	}
	return resp.Data, resp.RequestID, nil
}
