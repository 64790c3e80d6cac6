package auth

import (
	"crypto/hmac"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Headers are the headers that are used to authenticate a request.
type Headers struct {
	Authorization string `header:"Authorization" sensitive:"true"`
	ContentType   string `header:"Content-Type"`
	Host          string `header:"Host"`
	Action        string `header:"X-TC-Action"`
	Timestamp     string `header:"X-TC-Timestamp"`
	Version       string `header:"X-TC-Version"`
	Region        string `header:"X-TC-Region"`
	Token         string `header:"X-TC-Token" sensitive:"true"`
}

// Apply sets the headers on h.
//
// Host is set as a header for completeness, but net/http sends the value of
// Request.Host instead, so callers must set that too. X-TC-Token is only
// sent when a session token is in use.
func (h *Headers) Apply(header http.Header) {
	header.Set("Authorization", h.Authorization)
	header.Set("Content-Type", h.ContentType)
	header.Set("Host", h.Host)
	header.Set("X-TC-Action", h.Action)
	header.Set("X-TC-Timestamp", h.Timestamp)
	header.Set("X-TC-Version", h.Version)
	header.Set("X-TC-Region", h.Region)
	if h.Token != "" {
		header.Set("X-TC-Token", h.Token)
	} else {
		header.Del("X-TC-Token")
	}
}

// HeadersFromRequest extracts the authentication headers from an inbound request.
func HeadersFromRequest(req *http.Request) *Headers {
	return &Headers{
		Authorization: req.Header.Get("Authorization"),
		ContentType:   req.Header.Get("Content-Type"),
		Host:          req.Host,
		Action:        req.Header.Get("X-TC-Action"),
		Timestamp:     req.Header.Get("X-TC-Timestamp"),
		Version:       req.Header.Get("X-TC-Version"),
		Region:        req.Header.Get("X-TC-Region"),
		Token:         req.Header.Get("X-TC-Token"),
	}
}

// Equal returns true if the headers are equal.
//
// It compares the Authorization and Timestamp headers using
// hmac.Equal to prevent timing attacks.
func (h *Headers) Equal(other *Headers) bool {
	authMatches := hmac.Equal([]byte(h.Authorization), []byte(other.Authorization))
	timestampMatches := hmac.Equal([]byte(h.Timestamp), []byte(other.Timestamp))
	return authMatches && timestampMatches
}

// SigningComponents returns the components of the authorization header.
func (h *Headers) SigningComponents() (secretID, date, service string, timestamp time.Time, signature string, err error) {
	const expectedComponentCount = 3
	switch {
	case h.Authorization == "":
		err = ErrNoAuthorizationHeader
		return
	case h.Timestamp == "":
		err = ErrNoTimestampHeader
		return
	}

	// First parse the timestamp header
	unix, err := strconv.ParseInt(h.Timestamp, 10, 64)
	if err != nil {
		err = ErrNoTimestampHeader
		return
	}
	timestamp = time.Unix(unix, 0).UTC()

	scheme, parametersStr, found := strings.Cut(h.Authorization, " ")
	if !found {
		err = fmt.Errorf("%w: unable to find algorithm", ErrInvalidSignature)
		return
	} else if scheme != Algorithm {
		err = fmt.Errorf("%w: unknown algorithm", ErrInvalidSignature)
		return
	}

	// Extract the parameters parts
	parameters := strings.Split(parametersStr, ", ")
	if len(parameters) != expectedComponentCount {
		err = fmt.Errorf("%w: expected %d parameters", ErrInvalidSignature, expectedComponentCount)
		return
	}

	for _, parameter := range parameters {
		name, value, found := strings.Cut(parameter, "=")
		if !found {
			err = fmt.Errorf("%w: unable to find parameter name", ErrInvalidSignature)
			return
		}

		switch name {
		case "Credential":
			secretID, date, service, err = parseCredentialString(value)
			if err != nil {
				return
			}

			// Verify the date matches the timestamp header
			if date != timestamp.Format(dateFormat) {
				err = fmt.Errorf("%w: dates don't align", ErrInvalidSignature)
				return
			}

		case "SignedHeaders":
			if value != SignedHeaders {
				err = fmt.Errorf("%w: unsupported signed headers %q", ErrInvalidSignature, value)
				return
			}

		case "Signature":
			signature = value

		default:
			err = fmt.Errorf("%w: unknown parameter %q", ErrInvalidSignature, name)
			return
		}
	}

	if secretID == "" || signature == "" {
		err = fmt.Errorf("%w: missing credential or signature", ErrInvalidSignature)
	}
	return
}

// parseCredentialString parses the credential string from the authorization header and extracts the
// secret id, date and service.
func parseCredentialString(str string) (secretID, date, service string, err error) {
	const expectedCredentialComponentCount = 4

	parts := strings.Split(str, "/")
	if len(parts) != expectedCredentialComponentCount {
		err = fmt.Errorf("%w: invalid credential string", ErrInvalidSignature)
		return
	}
	if parts[3] != scopeTerm {
		err = fmt.Errorf("%w: invalid credential scope terminator", ErrInvalidSignature)
		return
	}

	return parts[0], parts[1], parts[2], nil
}
