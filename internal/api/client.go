package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when the backend reports 404 for a resource.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the conversation backend.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Body)
}

// Client talks to the conversation backend. It performs no retries; a failed
// call surfaces to the caller as-is.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a client for the given base URL (e.g. http://localhost:8000).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// GetCustomer fetches one customer profile. Unknown ids map to ErrNotFound.
func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var cust Customer
	if err := c.do(ctx, http.MethodGet, "/api/customers/"+url.PathEscape(id), nil, &cust); err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return &cust, nil
}

// ListMessages returns a customer's message history sorted by time ascending
// (oldest first), bounded to limit entries. The sort and bound are requested
// explicitly; the backend owns the ordering contract.
func (c *Client) ListMessages(ctx context.Context, customerID string, limit int) ([]Message, error) {
	q := url.Values{}
	q.Set("customer_id", customerID)
	q.Set("sort", "time")
	q.Set("limit", strconv.Itoa(limit))
	var out struct {
		Items []Message `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/messages?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("list messages for %s: %w", customerID, err)
	}
	return out.Items, nil
}

// SendMessage creates a message and returns the backend-assigned record.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, "/api/messages", req, &msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &msg, nil
}

// ListCanned returns the canned-response catalog.
func (c *Client) ListCanned(ctx context.Context) ([]CannedResponse, error) {
	var out struct {
		Items []CannedResponse `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/canned", nil, &out); err != nil {
		return nil, fmt.Errorf("list canned responses: %w", err)
	}
	return out.Items, nil
}

// CreateCanned adds a canned response to the catalog.
func (c *Client) CreateCanned(ctx context.Context, title, text string) (*CannedResponse, error) {
	req := map[string]string{"title": title, "text": text}
	var canned CannedResponse
	if err := c.do(ctx, http.MethodPost, "/api/canned", req, &canned); err != nil {
		return nil, fmt.Errorf("create canned response: %w", err)
	}
	return &canned, nil
}

// ListConversations returns conversation summaries, optionally filtered by a
// free-text query. Ranking and urgency scoring happen server-side.
func (c *Client) ListConversations(ctx context.Context, query string) ([]ConversationSummary, error) {
	path := "/api/conversations"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var out struct {
		Items []ConversationSummary `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return out.Items, nil
}

// UpsertCustomer creates a customer or returns the existing one for the email.
func (c *Client) UpsertCustomer(ctx context.Context, req UpsertCustomerRequest) (*Customer, error) {
	var cust Customer
	if err := c.do(ctx, http.MethodPost, "/api/customers", req, &cust); err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}
	return &cust, nil
}

// ImportCSV submits a raw CSV batch of inbound messages. The backend parses
// and persists rows; the client only carries the text through.
func (c *Client) ImportCSV(ctx context.Context, csvText, channel string) (*ImportResult, error) {
	req := ImportCSVRequest{CSVText: csvText, Channel: channel}
	var res ImportResult
	if err := c.do(ctx, http.MethodPost, "/api/messages/import_csv", req, &res); err != nil {
		return nil, fmt.Errorf("import csv: %w", err)
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
