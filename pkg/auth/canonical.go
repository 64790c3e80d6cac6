package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	Algorithm     = "TC3-HMAC-SHA256"
	ContentType   = "application/json; charset=utf-8"
	SignedHeaders = "content-type;host;x-tc-action"

	requestMethod = "POST"
	canonicalURI  = "/"
	scopeTerm     = "tc3_request"
)

// CanonicalRequest returns the canonical form of the request which is hashed
// into the string to sign.
//
// Only the content-type, host and x-tc-action headers are signed and they
// always appear in that order. The action is lower-cased here only; the
// X-TC-Action header sent on the wire keeps the caller's casing.
func CanonicalRequest(req *Request) string {
	var b strings.Builder
	b.WriteString(requestMethod)
	b.WriteByte('\n')
	b.WriteString(canonicalURI)
	b.WriteByte('\n')
	b.WriteByte('\n') // empty query string

	b.WriteString("content-type:" + ContentType + "\n")
	b.WriteString("host:" + req.Host + "\n")
	b.WriteString("x-tc-action:" + strings.ToLower(req.Action) + "\n")
	b.WriteByte('\n')

	b.WriteString(SignedHeaders)
	b.WriteByte('\n')
	b.WriteString(PayloadHash(req.Payload))
	return b.String()
}

// PayloadHash returns the hex encoded SHA-256 of the payload.
func PayloadHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// CredentialScope binds a signature to a single day and service.
func CredentialScope(date, service string) string {
	return date + "/" + service + "/" + scopeTerm
}
