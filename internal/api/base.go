// Package api implements one function per backend endpoint. Each function
// validates its inputs locally, performs a single HTTP round trip and maps
// the outcome onto the client's failure taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	clierr "github.com/farmlink/client-go/internal/errors"
)

// HTTPClient is the transport dependency; *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// newRequest builds a request with an optional JSON payload.
func newRequest(ctx context.Context, method, url string, payload any) (*http.Request, error) {
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(b)
	}
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, url, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// decodeResponse classifies a non-want status and decodes the body into out
// (which may be nil for endpoints whose body the caller discards).
func decodeResponse(op string, resp *http.Response, want int, out any) error {
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != want {
		return clierr.FromStatus(op, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return clierr.NewMalformed(op, err)
	}
	return nil
}
