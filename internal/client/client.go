package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/tc-eo-ssl/sdk/pkg/auth"
	"github.com/tc-eo-ssl/sdk/pkg/tcapi"
)

// Client is the underlying raw client for communicating with a Tencent Cloud API service.
//
// It is injected into each service struct by the main [tcssl] package and is
// safe for concurrent use; each call signs its own request.
type Client struct {
	cfg *Config
}

func New(cfg *Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{cfg}
}

// Validator is implemented by request parameters that can be checked before
// they are sent.
type Validator interface {
	Validate() error
}

// Call performs a signed call of action and decodes the result into T.
//
// The returned error is a *tcapi.APIError, *tcapi.ParseError or
// *tcapi.TransportError for failures once the request has been built.
func Call[T any](ctx context.Context, c *Client, action, version string, params any) (*T, error) {
	if v, ok := params.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%s: invalid parameters: %w", action, err)
		}
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal request body: %w", action, err)
	}

	log := c.cfg.Logger.With().
		Str("call_id", uuid.NewString()).
		Str("service", c.cfg.Service).
		Str("action", action).
		Logger()

	start := c.cfg.Clock.Now()
	statusCode, body, err := c.Send(ctx, action, version, payload)
	if err != nil {
		log.Err(err).Msg("request failed")
		return nil, err
	}

	data, requestID, err := tcapi.Decode[T](statusCode, body)
	log.Debug().
		Int("status", statusCode).
		Str("request_id", requestID).
		Dur("duration", c.cfg.Clock.Since(start)).
		Err(err).
		Msg("call completed")
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Send performs a signed POST of payload to the service root and returns the
// HTTP status and raw response body.
//
// A non-2xx status is not an error here, the provider reports failures
// inside the body.
func (c *Client) Send(ctx context.Context, action, version string, payload []byte) (statusCode int, body []byte, err error) {
	signReq := &auth.Request{
		Credential: c.cfg.Credential,
		Service:    c.cfg.Service,
		Host:       c.cfg.Host,
		Region:     c.cfg.Region,
		Action:     action,
		Version:    version,
		Payload:    payload,
	}

	// Sign the request
	headers := auth.Sign(signReq, c.cfg.Clock)

	// Create the request
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, fmt.Sprintf("https://%s/", c.cfg.Host), bytes.NewReader(payload),
	)
	if err != nil {
		return 0, nil, &tcapi.TransportError{Action: action, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	// Set the headers
	headers.Apply(req.Header)
	req.Host = c.cfg.Host
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	// Send the request
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, &tcapi.TransportError{Action: action, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &tcapi.TransportError{Action: action, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return resp.StatusCode, body, nil
}
