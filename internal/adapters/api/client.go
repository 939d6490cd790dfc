package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/metrics"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/config"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

// Client talks to the cafeteria backend over its JSON API. All methods go
// through a shared circuit breaker so a flapping backend fails fast instead
// of hanging every command.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenSource
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.BackendMetrics
	log     *logger.Logger
}

var _ ports.Backend = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, tokens ports.TokenSource, m *metrics.BackendMetrics, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		breaker: config.NewCircuitBreaker("Backend-API"),
		metrics: m,
		log:     log,
	}
}

// call describes a single backend request. Endpoint is the low-cardinality
// metric label, not the URL path.
type call struct {
	endpoint       string
	method         string
	path           string
	body           any
	authed         bool
	idempotencyKey string
}

type response struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, req call, out any) error {
	start := time.Now()
	resp, err := c.execute(ctx, req)
	code := 0
	if resp != nil {
		code = resp.status
	}
	c.metrics.Observe(req.endpoint, code, time.Since(start))
	if err != nil {
		return err
	}
	if resp.status < 200 || resp.status >= 300 {
		return backendError(resp)
	}
	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.endpoint, err)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, req call) (*response, error) {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		httpReq, err := c.newRequest(ctx, req)
		if err != nil {
			return nil, err
		}
		httpResp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", req.endpoint, err)
		}
		defer httpResp.Body.Close()
		data, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("read %s response: %w", req.endpoint, err)
		}
		r := &response{status: httpResp.StatusCode, body: data}
		// Server-side failures count against the breaker, client errors
		// like a bad password do not.
		if httpResp.StatusCode >= 500 {
			return r, backendError(r)
		}
		return r, nil
	})
	if res == nil {
		return nil, err
	}
	return res.(*response), err
}

func (c *Client) newRequest(ctx context.Context, req call) (*http.Request, error) {
	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", req.endpoint, err)
		}
		body = bytes.NewReader(data)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return nil, err
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.idempotencyKey)
	}
	if req.authed {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("load access token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

// backendError extracts the backend's error message. Most endpoints report
// {"error": "..."} but auth failures come back as {"detail": "..."}.
func backendError(r *response) error {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	msg := "request failed"
	if err := json.Unmarshal(r.body, &payload); err == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Detail != "":
			msg = payload.Detail
		}
	}
	return &ports.BackendError{StatusCode: r.status, Message: msg}
}
