package api

import (
	"fmt"
	"net/http"

	"github.com/bz888/naeyla/internal/config"
)

// Authenticator attaches the endpoint credential to an outgoing request.
type Authenticator interface {
	Authenticate(req *http.Request)
}

type NoAuth struct{}

func (NoAuth) Authenticate(*http.Request) {}

// BearerToken sends the token in the Authorization header.
type BearerToken string

func (t BearerToken) Authenticate(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+string(t))
}

// QueryToken sends the token as the "token" query parameter.
type QueryToken string

func (t QueryToken) Authenticate(req *http.Request) {
	q := req.URL.Query()
	q.Set("token", string(t))
	req.URL.RawQuery = q.Encode()
}

func NewAuthenticator(mode config.AuthMode, token string) (Authenticator, error) {
	switch mode {
	case config.AuthNone:
		return NoAuth{}, nil
	case config.AuthBearer:
		return BearerToken(token), nil
	case config.AuthQuery:
		return QueryToken(token), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
}
