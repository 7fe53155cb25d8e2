// Package backend talks to the support backend that owns request storage and
// resolution. Every call is a plain request/response round trip; any transport
// error or non-2xx status is reported to the caller, which keeps its local
// state untouched.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/supervisor-console/internal/config"
	"github.com/spec-kit/supervisor-console/internal/domain"
)

// Client abstracts the support backend endpoints used by the console.
type Client interface {
	FetchPending(ctx context.Context) ([]domain.RequestRecord, error)
	FetchResolved(ctx context.Context) ([]domain.ResolvedRecord, error)
	SubmitAnswer(ctx context.Context, requestID, answer string) error
	Ping(ctx context.Context) error
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL  string
	client   *http.Client
	validate *validator.Validate
}

// NewHTTPClient builds a client for the configured backend.
func NewHTTPClient(cfg config.BackendConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		client:   &http.Client{Timeout: cfg.Timeout()},
		validate: validator.New(),
	}
}

// FetchPending retrieves the pending queue in backend order.
func (c *HTTPClient) FetchPending(ctx context.Context) ([]domain.RequestRecord, error) {
	var records []domain.RequestRecord
	if err := c.getJSON(ctx, "/requests/pending", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchResolved retrieves the resolved queue in backend order. Records missing
// the answer or its timestamp violate the resolved invariant and fail the
// whole fetch rather than being silently rendered.
func (c *HTTPClient) FetchResolved(ctx context.Context) ([]domain.ResolvedRecord, error) {
	var records []domain.ResolvedRecord
	if err := c.getJSON(ctx, "/requests/resolved", &records); err != nil {
		return nil, err
	}
	for i := range records {
		if err := c.validate.Struct(&records[i]); err != nil {
			return nil, fmt.Errorf("invalid resolved record %q: %w", records[i].ID, err)
		}
	}
	return records, nil
}

// SubmitAnswer posts the supervisor's answer for one request.
func (c *HTTPClient) SubmitAnswer(ctx context.Context, requestID, answer string) error {
	payload, err := json.Marshal(map[string]string{"answer": answer})
	if err != nil {
		return fmt.Errorf("failed to encode answer: %w", err)
	}

	endpoint := fmt.Sprintf("%s/requests/%s/answer", c.baseURL, url.PathEscape(requestID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

// Ping checks backend reachability for readiness probes.
func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
