package spotrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/awamegit/spotrm-api-go/pkg/httpclient"
)

// DefaultBaseURL is the public SpotRM API root.
const DefaultBaseURL = "https://www.spotrm.com/api/v1"

// Exchange summarizes one completed request for observers.
type Exchange struct {
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	Credential string        `json:"credential"`
	StatusCode int           `json:"status_code"`
	Duration   time.Duration `json:"duration"`
	At         time.Time     `json:"at"`
}

// Observer is notified after every exchange that produced an HTTP response.
type Observer interface {
	ObserveExchange(ctx context.Context, ex Exchange)
}

// Options tunes a Client. The zero value is usable.
type Options struct {
	TokenScheme TokenScheme
	Observer    Observer
	Logger      Logger
}

// Client performs authenticated requests against a fixed base URL. It holds
// no per-call state; credentials are passed explicitly on every call.
type Client struct {
	baseURL     string
	http        httpclient.Client
	tokenScheme TokenScheme
	observer    Observer
	log         Logger
}

// NewClient builds a Client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, hc httpclient.Client, opts Options) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = httpclient.NewRestyClient(0)
	}
	scheme := opts.TokenScheme
	if scheme == "" {
		scheme = TokenSchemeBearer
	}
	return &Client{
		baseURL:     baseURL,
		http:        hc,
		tokenScheme: scheme,
		observer:    opts.Observer,
		log:         ensureLogger(opts.Logger),
	}
}

// BaseURL returns the API root every path is appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// Do sends a request whose successful response is JSON. A 200 with a body
// that is not valid JSON yields a decode failure. The error return is
// reserved for transport faults.
func (c *Client) Do(ctx context.Context, method, path string, body any, cred Credential) (*Result, error) {
	res, err := c.exchange(ctx, method, path, body, cred)
	if err != nil || !res.OK() {
		return res, err
	}
	if !json.Valid(res.Body) {
		return decodeFailure(res.StatusCode, res.Body, "response body is not valid JSON"), nil
	}
	return res, nil
}

// DoBinary sends a request whose successful response is returned as raw bytes.
func (c *Client) DoBinary(ctx context.Context, method, path string, body any, cred Credential) (*Result, error) {
	return c.exchange(ctx, method, path, body, cred)
}

// RequestToken exchanges a Basic credential for a Token. The Token is the
// zero value unless the result is a success.
func (c *Client) RequestToken(ctx context.Context, cred Basic) (*Result, Token, error) {
	res, err := c.Do(ctx, http.MethodPost, "/tokens/", nil, cred)
	if err != nil || !res.OK() {
		return res, Token{}, err
	}
	var payload struct {
		Token *string `json:"token"`
	}
	if err := json.Unmarshal(res.Body, &payload); err != nil || payload.Token == nil {
		return decodeFailure(res.StatusCode, res.Body, "response has no token field"), Token{}, nil
	}
	return res, Token{Value: *payload.Token}, nil
}

func (c *Client) exchange(ctx context.Context, method, path string, body any, cred Credential) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method != http.MethodGet && method != http.MethodPost {
		return nil, fmt.Errorf("unsupported method %q", method)
	}
	if cred == nil {
		return nil, errors.New("credential is required")
	}

	req := httpclient.Request{
		Method: method,
		URL:    c.url(path),
		Auth:   cred.auth(c.tokenScheme),
	}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		req.Body = raw
		req.Headers = map[string]string{"Content-Type": "application/json"}
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	elapsed := time.Since(start)

	status := resp.StatusCode()
	c.log.DebugObj("spotrm exchange completed", "spotrm_exchange", map[string]any{
		"method":     method,
		"path":       path,
		"status":     status,
		"credential": cred.Kind(),
		"elapsed_ms": elapsed.Milliseconds(),
	})
	if c.observer != nil {
		c.observer.ObserveExchange(ctx, Exchange{
			Method:     method,
			Path:       path,
			Credential: cred.Kind(),
			StatusCode: status,
			Duration:   elapsed,
			At:         start.UTC(),
		})
	}

	if status != http.StatusOK {
		res := failureResult(status, resp.Body())
		c.log.WarnObj("spotrm request failed", "spotrm_failure", map[string]any{
			"method":  method,
			"path":    path,
			"status":  status,
			"kind":    res.Failure.Kind,
			"message": res.Failure.Message,
		})
		return res, nil
	}
	return successResult(status, resp.Body()), nil
}

func (c *Client) url(path string) string {
	if path == "" {
		return c.baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
