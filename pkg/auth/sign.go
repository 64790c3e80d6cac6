package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
)

const dateFormat = "2006-01-02"

// Sign signs the request using the current time from the given clock.
func Sign(req *Request, clock clock.Clock) *Headers {
	return SignAt(req, clock.Now())
}

// SignAt signs the request as if it was sent at the given time.
//
// It is a pure function of its inputs and is safe to call concurrently.
func SignAt(req *Request, at time.Time) *Headers {
	at = at.UTC()
	timestamp := at.Unix()
	date := at.Format(dateFormat)

	stringToSign := StringToSign(CanonicalRequest(req), req.Service, date, timestamp)
	signature := DeriveSignature(req.Credential.SecretKey, req.Service, date, stringToSign)

	return &Headers{
		Authorization: Authorization(req.Credential.SecretID, req.Service, date, signature),
		ContentType:   ContentType,
		Host:          req.Host,
		Action:        req.Action,
		Timestamp:     strconv.FormatInt(timestamp, 10),
		Version:       req.Version,
		Region:        req.Region,
		Token:         req.Credential.Token,
	}
}

// StringToSign builds the string to sign from the canonical request.
func StringToSign(canonicalRequest, service, date string, timestamp int64) string {
	hashed := sha256.Sum256([]byte(canonicalRequest))

	return Algorithm + "\n" +
		strconv.FormatInt(timestamp, 10) + "\n" +
		CredentialScope(date, service) + "\n" +
		hex.EncodeToString(hashed[:])
}

// DeriveSignature runs the TC3 key derivation chain and returns the hex
// encoded signature of stringToSign:
//
//	secretDate    = HMAC-SHA256("TC3" + secretKey, date)
//	secretService = HMAC-SHA256(secretDate, service)
//	secretSigning = HMAC-SHA256(secretService, "tc3_request")
//	signature     = hex(HMAC-SHA256(secretSigning, stringToSign))
//
// Each intermediate key is hex encoded and decoded again before it keys the
// next stage, as the published algorithm does.
func DeriveSignature(secretKey, service, date, stringToSign string) string {
	secretDate := hmacHex([]byte("TC3"+secretKey), date)
	secretService := hmacHex(mustDecodeHex(secretDate), service)
	secretSigning := hmacHex(mustDecodeHex(secretService), scopeTerm)
	return hmacHex(mustDecodeHex(secretSigning), stringToSign)
}

// Authorization composes the value of the Authorization header.
func Authorization(secretID, service, date, signature string) string {
	return fmt.Sprintf(
		"%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		Algorithm, secretID, CredentialScope(date, service), SignedHeaders, signature,
	)
}

func hmacHex(key []byte, msg string) string {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// mustDecodeHex decodes a key produced by hmacHex. A failure here means the
// chain itself is broken, which is not something a caller can recover from.
func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("auth: invalid intermediate signing key: %v", err))
	}
	return b
}
