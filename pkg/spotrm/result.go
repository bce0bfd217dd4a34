package spotrm

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultFailureMessage is used when an error response carries no message field.
const DefaultFailureMessage = "no error message provided"

// FailureKind classifies a failure by its status code.
type FailureKind string

const (
	KindAuth       FailureKind = "auth"
	KindClient     FailureKind = "client"
	KindServer     FailureKind = "server"
	KindDecode     FailureKind = "decode"
	KindUnexpected FailureKind = "unexpected"
)

// Failure is the non-success outcome of an exchange.
type Failure struct {
	StatusCode int
	Message    string
	Kind       FailureKind
}

func (f *Failure) Error() string {
	return fmt.Sprintf("spotrm: status %d: %s", f.StatusCode, f.Message)
}

// Result is the outcome of one request/response exchange. Failure is nil on
// success, in which case Body holds the full response body.
type Result struct {
	StatusCode int
	Body       []byte
	Failure    *Failure
}

// OK reports whether the exchange succeeded.
func (r *Result) OK() bool { return r != nil && r.Failure == nil }

// Err returns the failure as an error, or nil on success.
func (r *Result) Err() error {
	if r == nil {
		return &Failure{Message: "no result", Kind: KindUnexpected}
	}
	if r.Failure != nil {
		return r.Failure
	}
	return nil
}

// Bytes returns the raw payload of a successful exchange.
func (r *Result) Bytes() []byte {
	if !r.OK() {
		return nil
	}
	return r.Body
}

// Decode unmarshals a successful JSON payload into v.
func (r *Result) Decode(v any) error {
	if err := r.Err(); err != nil {
		return err
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &Failure{StatusCode: r.StatusCode, Message: "decode response: " + err.Error(), Kind: KindDecode}
	}
	return nil
}

// Value decodes a successful JSON payload into generic maps, slices and scalars.
func (r *Result) Value() (any, error) {
	var v any
	if err := r.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func successResult(status int, body []byte) *Result {
	return &Result{StatusCode: status, Body: body}
}

func failureResult(status int, body []byte) *Result {
	return &Result{
		StatusCode: status,
		Body:       body,
		Failure: &Failure{
			StatusCode: status,
			Message:    failureMessage(body),
			Kind:       kindFor(status),
		},
	}
}

func decodeFailure(status int, body []byte, msg string) *Result {
	return &Result{
		StatusCode: status,
		Body:       body,
		Failure:    &Failure{StatusCode: status, Message: msg, Kind: KindDecode},
	}
}

// failureMessage extracts the "message" field of a JSON object body.
func failureMessage(body []byte) string {
	var payload struct {
		Message *string `json:"message"`
	}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil || payload.Message == nil {
		return DefaultFailureMessage
	}
	return *payload.Message
}

func kindFor(status int) FailureKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status >= 400 && status < 500:
		return KindClient
	case status >= 500:
		return KindServer
	default:
		return KindUnexpected
	}
}
