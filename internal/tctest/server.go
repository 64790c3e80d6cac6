// Package tctest provides an in-process fake of a Tencent Cloud API 3.0
// endpoint which verifies TC3 signatures the way the real service does.
package tctest

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/tc-eo-ssl/sdk/internal/jsonerr"
	"github.com/tc-eo-ssl/sdk/pkg/auth"
	"github.com/tc-eo-ssl/sdk/pkg/tcapi"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler serves a verified call. It returns the operation result, which must
// encode as a JSON object, or an error. A *tcapi.APIError is written verbatim
// into the envelope.
type Handler func(req *auth.Request) (any, error)

// Raw is a result that is written as is, bypassing the envelope.
type Raw struct {
	Status int
	Body   string
}

// Call is a request received by the server.
type Call struct {
	Header  http.Header
	Body    []byte
	Request *auth.Request // nil if the signature did not verify
}

// Server is a fake API endpoint served over TLS.
type Server struct {
	*httptest.Server

	clock clock.Clock

	mu       sync.Mutex
	creds    map[string]auth.Credential
	handlers map[string]Handler
	calls    []Call
}

// NewServer starts a server accepting requests signed by creds.
// Callers must Close it.
func NewServer(clock clock.Clock, creds ...auth.Credential) *Server {
	s := &Server{
		clock:    clock,
		creds:    make(map[string]auth.Credential),
		handlers: make(map[string]Handler),
	}
	for _, cred := range creds {
		s.creds[cred.SecretID] = cred
	}

	r := chi.NewRouter()
	r.Post("/", s.serve)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonerr.Error(w, uuid.NewString(), &tcapi.APIError{Code: "InvalidParameter", Message: "unknown path " + r.URL.Path}, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonerr.Error(w, uuid.NewString(), &tcapi.APIError{Code: "UnsupportedProtocol", Message: "method " + r.Method + " not allowed"}, http.StatusMethodNotAllowed)
	})

	s.Server = httptest.NewTLSServer(r)
	return s
}

// Host returns the host (with port) requests must be signed for.
func (s *Server) Host() string {
	return strings.TrimPrefix(s.URL, "https://")
}

// Handle registers the handler for an action.
func (s *Server) Handle(action string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[action] = h
}

// Calls returns every request received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Server) lookup(secretID string) (auth.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.creds[secretID]
	return cred, ok
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonerr.Error(w, requestID, err, http.StatusBadRequest)
		return
	}

	signed, verifyErr := auth.Verify(r, body, s.lookup, s.clock)

	s.mu.Lock()
	s.calls = append(s.calls, Call{Header: r.Header.Clone(), Body: body, Request: signed})
	handler := s.handlers[r.Header.Get("X-TC-Action")]
	s.mu.Unlock()

	if verifyErr != nil {
		jsonerr.Error(w, requestID, authFailure(verifyErr), 0)
		return
	}
	if handler == nil {
		jsonerr.Error(w, requestID, &tcapi.APIError{Code: "InvalidAction", Message: "unknown action " + signed.Action}, 0)
		return
	}

	result, err := handler(signed)
	if err != nil {
		jsonerr.Error(w, requestID, err, 0)
		return
	}
	if raw, ok := result.(Raw); ok {
		w.WriteHeader(raw.Status)
		_, _ = io.WriteString(w, raw.Body)
		return
	}

	data, err := json.Marshal(&tcapi.Envelope[any]{Response: &tcapi.Response[any]{RequestID: requestID, Data: &result}})
	if err != nil {
		jsonerr.Error(w, requestID, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func authFailure(err error) *tcapi.APIError {
	code := "AuthFailure.InvalidAuthorization"
	switch {
	case errors.Is(err, auth.ErrAuthenticationExpired):
		code = "AuthFailure.SignatureExpire"
	case errors.Is(err, auth.ErrUnknownSecretID):
		code = "AuthFailure.SecretIdNotFound"
	case errors.Is(err, auth.ErrAuthenticationFailed):
		code = "AuthFailure.SignatureFailure"
	}
	return &tcapi.APIError{Code: code, Message: err.Error()}
}
