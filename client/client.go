// Package client consumes the Pizza Deprizza backend contract.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"pizza-deprizza/errs"
	"pizza-deprizza/models"
)

// Client talks to the backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// New returns a client for baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// CheckoutRequest is the body of POST /api/orders.
type CheckoutRequest struct {
	Items     []models.CartLine `json:"items"`
	Total     float64           `json:"total"`
	Customer  string            `json:"customer"`
	Payment   string            `json:"payment"`
	Timestamp time.Time         `json:"timestamp"`
}

// CheckoutResponse is the created order as returned by the backend.
type CheckoutResponse struct {
	OrderID       int64  `json:"order_id"`
	EstimatedTime int    `json:"estimated_time"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	Customer      string `json:"customer"`
	Payment       string `json:"payment"`
}

// CreateOrder submits a checkout.
func (c *Client) CreateOrder(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error) {
	var out CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &out); err != nil {
		return CheckoutResponse{}, err
	}
	return out, nil
}

// DeliveryStatus reads the restaurant load summary.
func (c *Client) DeliveryStatus(ctx context.Context) (models.RestaurantStatus, error) {
	var out struct {
		Status          *string `json:"status"`
		AverageWaitTime *int    `json:"averageWaitTime"`
		CurrentOrders   int     `json:"currentOrders"`
		ActiveOrders    int     `json:"activeOrders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/status", nil, &out); err != nil {
		return models.RestaurantStatus{}, err
	}
	if out.Status == nil || out.AverageWaitTime == nil {
		return models.RestaurantStatus{}, fmt.Errorf("GET /api/orders/status: %w: missing status or averageWaitTime", errs.ErrMalformed)
	}
	return models.RestaurantStatus{
		Status:          *out.Status,
		AverageWaitTime: *out.AverageWaitTime,
		CurrentOrders:   out.CurrentOrders,
		ActiveOrders:    out.ActiveOrders,
	}, nil
}

// Menu reads the catalog.
func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var out struct {
		Menu []models.MenuItem `json:"menu"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, &out); err != nil {
		return nil, err
	}
	if len(out.Menu) == 0 {
		return nil, fmt.Errorf("GET /api/menu: %w: empty menu", errs.ErrMalformed)
	}
	return out.Menu, nil
}

// AdminOrders reads every recent order, normalizing loose fields. Entries
// that cannot be read are reported in OrderList.Skipped.
func (c *Client) AdminOrders(ctx context.Context) (OrderList, error) {
	var out struct {
		Orders json.RawMessage `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", nil, &out); err != nil {
		return OrderList{}, err
	}
	return DecodeOrders(out.Orders, c.now())
}

// UpdateOrderStatus asks the backend to move an order to status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	body := map[string]models.OrderStatus{"status": status}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", id), body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, errs.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%s %s: %w: read body: %v", method, path, errs.ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errs.StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, errs.ErrMalformed, err)
	}
	return nil
}
