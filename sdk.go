package tcssl

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/tc-eo-ssl/sdk/internal/client"
	"github.com/tc-eo-ssl/sdk/ssl"
)

// UserAgent is sent with every request.
const UserAgent = "tc-eo-ssl-sdk"

// NewSDK creates a new SDK with the specified options.
func NewSDK(options ...Option) *SDK {
	// Create the raw client
	cfg := &client.Config{
		Host:       ssl.Host,
		Service:    ssl.Service,
		Clock:      clock.New(),
		HTTPClient: &http.Client{Timeout: client.DefaultTimeout},
		Logger:     zerolog.Nop(),
		UserAgent:  UserAgent,
	}
	for _, option := range options {
		option(cfg)
	}
	rawClient := client.New(cfg)

	// Now create the SDK struct
	return &SDK{
		SSL: ssl.NewClient(rawClient),
	}
}

// SDK is the main SDK for communicating with Tencent Cloud.
type SDK struct {
	// SSL is the client for the SSL certificate service.
	SSL *ssl.Client
}
