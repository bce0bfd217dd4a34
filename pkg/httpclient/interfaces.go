package httpclient

import (
	"context"
	"net/http"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Auth attaches credentials to an outgoing request.
type Auth interface {
	isAuth()
}

// BasicAuth sends a username/password pair as HTTP Basic authentication.
type BasicAuth struct {
	User string
	Pass string
}

// BearerAuth sends an opaque token in the Authorization header.
type BearerAuth struct {
	Token string
}

func (BasicAuth) isAuth()  {}
func (BearerAuth) isAuth() {}

// Request describes a single outgoing call. Body is sent as-is.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Auth    Auth
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
