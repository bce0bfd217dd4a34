package spotrm

import "github.com/awamegit/spotrm-api-go/pkg/httpclient"

// Credential authenticates a single API call. The two variants are Basic and
// Token; both are plain values and never change once built.
type Credential interface {
	// Kind names the variant for logging ("basic" or "token").
	Kind() string
	auth(scheme TokenScheme) httpclient.Auth
}

// Basic is a username/password pair sent as HTTP Basic auth on every request.
type Basic struct {
	Username string
	Password string
}

// Kind implements Credential.
func (Basic) Kind() string { return "basic" }

func (b Basic) auth(TokenScheme) httpclient.Auth {
	return httpclient.BasicAuth{User: b.Username, Pass: b.Password}
}

// Token is an opaque access token issued by the /tokens/ endpoint. It has no
// expiry on the client side and stays valid for the rest of the run.
type Token struct {
	Value string
}

// Kind implements Credential.
func (Token) Kind() string { return "token" }

func (t Token) auth(scheme TokenScheme) httpclient.Auth {
	if scheme == TokenSchemeBasic {
		return httpclient.BasicAuth{User: t.Value}
	}
	return httpclient.BearerAuth{Token: t.Value}
}

// TokenScheme selects how a Token is placed on the wire.
type TokenScheme string

const (
	// TokenSchemeBearer sends "Authorization: Bearer <token>".
	TokenSchemeBearer TokenScheme = "bearer"
	// TokenSchemeBasic sends the token as the Basic username with an empty password.
	TokenSchemeBasic TokenScheme = "basic"
)

// ParseTokenScheme maps a config value to a TokenScheme; empty means bearer.
func ParseTokenScheme(s string) (TokenScheme, bool) {
	switch TokenScheme(s) {
	case "", TokenSchemeBearer:
		return TokenSchemeBearer, true
	case TokenSchemeBasic:
		return TokenSchemeBasic, true
	default:
		return "", false
	}
}
