// Package captcha verifies challenge responses for captcha field blocks.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrChallengeFailed reports a response the provider rejected.
var ErrChallengeFailed = errors.New("captcha: challenge failed")

// Verifier checks a captcha response token submitted with a form.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Static is a fixed-outcome verifier for tests and local development.
type Static struct {
	// Accept lists the tokens considered valid. Empty means accept everything.
	Accept []string
}

// Verify accepts any non-empty token unless Accept narrows the set.
func (s Static) Verify(_ context.Context, token, _ string) error {
	if strings.TrimSpace(token) == "" {
		return ErrChallengeFailed
	}
	if len(s.Accept) == 0 {
		return nil
	}
	for _, accepted := range s.Accept {
		if token == accepted {
			return nil
		}
	}
	return ErrChallengeFailed
}

// HTTPVerifier posts tokens to a reCAPTCHA-style siteverify endpoint.
type HTTPVerifier struct {
	endpoint string
	secret   string
	client   *http.Client
}

// HTTPOption customises the HTTP verifier.
type HTTPOption func(*HTTPVerifier)

// WithHTTPClient overrides the HTTP client used for verification calls.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(v *HTTPVerifier) {
		if client != nil {
			v.client = client
		}
	}
}

// NewHTTPVerifier constructs a verifier for the given siteverify endpoint and
// shared secret.
func NewHTTPVerifier(endpoint, secret string, opts ...HTTPOption) (*HTTPVerifier, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("captcha: endpoint is required")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("captcha: secret is required")
	}
	v := &HTTPVerifier{
		endpoint: endpoint,
		secret:   secret,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v, nil
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token and reports whether the provider accepted it.
func (v *HTTPVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if strings.TrimSpace(token) == "" {
		return ErrChallengeFailed
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("captcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha: verify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha: provider returned status %d", resp.StatusCode)
	}

	var payload verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("captcha: decode response: %w", err)
	}
	if !payload.Success {
		if len(payload.ErrorCodes) > 0 {
			return fmt.Errorf("%w: %s", ErrChallengeFailed, strings.Join(payload.ErrorCodes, ", "))
		}
		return ErrChallengeFailed
	}
	return nil
}
