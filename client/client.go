// Package client holds the shared HTTP plumbing of the upstream collaborators.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchError is a failed upstream call: transport error, non-2xx status or an
// undecodable body.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewHTTPClient returns the client shared by all collaborators. Requests are
// bounded by timeout as well as their context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Request describes one JSON call.
type Request struct {
	Op     string
	Method string
	URL    string
	Token  string
	Body   interface{}
}

// DoJSON performs req and decodes a 2xx JSON response into out.
func DoJSON(ctx context.Context, hc *http.Client, req Request, out interface{}) error {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return &FetchError{Op: req.Op, Err: err}
		}
		body = bytes.NewReader(b)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return &FetchError{Op: req.Op, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	res, err := hc.Do(httpReq)
	if err != nil {
		return &FetchError{Op: req.Op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return &FetchError{Op: req.Op, Status: res.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &FetchError{Op: req.Op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
