package client

import (
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/tc-eo-ssl/sdk/pkg/auth"
)

// DefaultTimeout bounds a single call when no HTTP client is configured.
const DefaultTimeout = 30 * time.Second

// Config is the configuration for the client.
type Config struct {
	Host       string          // The API host to use
	Service    string          // The service name used in the credential scope
	Region     string          // The region to send in X-TC-Region, may be empty
	Credential auth.Credential // The credential to sign requests with
	Clock      clock.Clock     // The clock to use
	HTTPClient *http.Client    // The HTTP client to send requests with
	Logger     zerolog.Logger  // The logger to use
	UserAgent  string          // The User-Agent header to send
}
