package auth

import (
	"errors"
)

var (
	ErrNoAuthorizationHeader = errors.New("no authorization header provided")
	ErrNoTimestampHeader     = errors.New("no timestamp header or invalid format provided")
	ErrAuthenticationExpired = errors.New("authentication expired")
	ErrAuthenticationFailed  = errors.New("authentication failed")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrUnknownSecretID       = errors.New("unknown secret id")
)
