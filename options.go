package tcssl

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/tc-eo-ssl/sdk/internal/client"
	"github.com/tc-eo-ssl/sdk/ssl"
)

// Option is a function that can be passed to NewSDK to configure the SDK.
type Option func(config *client.Config)

// WithHost configures the SDK to use the specified host, overriding the default.
func WithHost(host string) Option {
	return func(config *client.Config) {
		config.Host = host
	}
}

// WithInternational selects the international site endpoint instead of the
// China site endpoint.
func WithInternational(international bool) Option {
	return WithHost(ssl.HostFor(international))
}

// WithCredential configures the SDK to sign requests with the specified
// credential.
func WithCredential(secretID, secretKey string) Option {
	return func(config *client.Config) {
		config.Credential.SecretID = secretID
		config.Credential.SecretKey = secretKey
	}
}

// WithSessionToken configures the session token of a temporary credential.
func WithSessionToken(token string) Option {
	return func(config *client.Config) {
		config.Credential.Token = token
	}
}

// WithRegion configures the region sent with every request.
func WithRegion(region string) Option {
	return func(config *client.Config) {
		config.Region = region
	}
}

// WithClock configures the SDK to use the specified clock.
//
// This is useful for testing with a mocked clock, if not
// specified a real clock will be used.
func WithClock(clock clock.Clock) Option {
	return func(config *client.Config) {
		config.Clock = clock
	}
}

// WithHTTPClient configures the HTTP client requests are sent with.
//
// The client may be shared with other SDKs; no per call state is kept on it.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(config *client.Config) {
		config.HTTPClient = httpClient
	}
}

// WithLogger configures the logger. Credentials and signatures are never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(config *client.Config) {
		config.Logger = logger
	}
}
