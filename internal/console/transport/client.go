// Package transport is the console's HTTP client for the catalog service.
// Every failure is normalized into a single human-readable error message:
// the error body's detail field when present, else the raw body, else the
// HTTP status text.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"titulos-console/internal/domain"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CustomerWithAllocations is the allocation listing payload.
type CustomerWithAllocations struct {
	Customer    domain.Customer     `json:"customer"`
	Allocations []domain.Allocation `json:"allocations"`
}

// CreatedAllocation is the create-allocation response payload.
type CreatedAllocation struct {
	Allocation domain.Allocation `json:"allocation"`
	Security   domain.Security   `json:"security"`
	Customer   domain.Customer   `json:"customer"`
}

// HealthStatus is the health probe payload.
type HealthStatus struct {
	Status string `json:"status"`
}

func (c *Client) ListSecurities(ctx context.Context, query url.Values) ([]domain.Security, error) {
	var out []domain.Security
	return out, c.do(ctx, http.MethodGet, "/api/v1/securities", query, nil, &out)
}

func (c *Client) GetSecurity(ctx context.Context, id string) (*domain.Security, error) {
	var out domain.Security
	if err := c.do(ctx, http.MethodGet, "/api/v1/securities/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	return out, c.do(ctx, http.MethodGet, "/api/v1/customers", nil, nil, &out)
}

func (c *Client) CreateCustomer(ctx context.Context, name string) (*domain.Customer, error) {
	var out domain.Customer
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/v1/customers", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAllocations(ctx context.Context, customerID string) (*CustomerWithAllocations, error) {
	var out CustomerWithAllocations
	path := "/api/v1/customers/" + url.PathEscape(customerID) + "/allocations"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAllocation(ctx context.Context, customerID, securityID string, quantity int) (*CreatedAllocation, error) {
	var out CreatedAllocation
	path := "/api/v1/customers/" + url.PathEscape(customerID) + "/allocations"
	body := map[string]any{"securityId": securityID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New(normalizeFailure(resp, respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func normalizeFailure(resp *http.Response, body []byte) string {
	var e errorBody
	if json.Unmarshal(body, &e) == nil && e.Detail != "" {
		return e.Detail
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}
