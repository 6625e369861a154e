// Package client talks to the remote summarization service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/opbop/opbop/internal/model"
	"github.com/opbop/opbop/internal/util"
	"golang.org/x/time/rate"
)

// ErrMalformedResponse means the service answered 200 but the body was not
// the expected JSON shape.
var ErrMalformedResponse = errors.New("malformed service response")

// StatusError is returned when the service answers with anything but 200.
// It is distinct from transport errors so the caller can render a
// status-specific indicator.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned %s", e.Status)
}

// Client POSTs request payloads to the service endpoint and decodes the
// response. Calls are rate limited so repeated parses cannot hammer the
// service.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
	maxBytes   int64
	limiter    *rate.Limiter
}

// New creates a service client from configuration.
func New(cfg *model.Config) *Client {
	rps := cfg.Service.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Service.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		endpoint:  cfg.Service.Endpoint,
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Parse submits one request payload and returns the decoded response.
// Any status other than 200 yields a *StatusError without attempting to
// parse the body; transport failures are returned wrapped.
func (c *Client) Parse(ctx context.Context, payload model.RequestPayload) (*model.ResponsePayload, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The service defines a response body for 200 only, so any other status
	// is an error, 2xx included.
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result model.ResponsePayload
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &result, nil
}
