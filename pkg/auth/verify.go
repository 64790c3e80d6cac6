package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
)

// MaxClockSkew is how far a signed timestamp may drift from the verifier's clock.
const MaxClockSkew = 5 * time.Minute

// CredentialLookup returns the credential for a secret id.
type CredentialLookup func(secretID string) (Credential, bool)

// Verify checks the TC3 signature of an inbound request whose body has
// already been read into payload. On success it returns the signed request.
func Verify(req *http.Request, payload []byte, lookup CredentialLookup, clock clock.Clock) (*Request, error) {
	headers := HeadersFromRequest(req)
	secretID, _, service, timestamp, _, err := headers.SigningComponents()
	if err != nil {
		return nil, err
	}

	if skew := clock.Now().Sub(timestamp); skew > MaxClockSkew || skew < -MaxClockSkew {
		return nil, ErrAuthenticationExpired
	}
	if headers.ContentType != ContentType {
		return nil, fmt.Errorf("%w: unexpected content type %q", ErrInvalidSignature, headers.ContentType)
	}

	cred, ok := lookup(secretID)
	if !ok {
		return nil, ErrUnknownSecretID
	}
	if cred.Token != headers.Token {
		return nil, ErrAuthenticationFailed
	}

	signed := &Request{
		Credential: cred,
		Service:    service,
		Host:       headers.Host,
		Region:     headers.Region,
		Action:     headers.Action,
		Version:    headers.Version,
		Payload:    payload,
	}
	if !SignAt(signed, timestamp).Equal(headers) {
		return nil, ErrAuthenticationFailed
	}
	return signed, nil
}
