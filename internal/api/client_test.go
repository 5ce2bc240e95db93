package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestListMessagesRequestsExplicitOrderAndBound(t *testing.T) {
	var gotQuery map[string]string
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"customer_id": q.Get("customer_id"),
			"sort":        q.Get("sort"),
			"limit":       q.Get("limit"),
		}
		json.NewEncoder(w).Encode(map[string]any{"items": []Message{
			{ID: "m1", CustomerID: "cust-1", Text: "hello", Channel: "web", Direction: DirectionInbound},
		}})
	}))
	defer srv.Close()

	msgs, err := c.ListMessages(context.Background(), "cust-1", 500)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "m1" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	want := map[string]string{"customer_id": "cust-1", "sort": "time", "limit": "500"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := c.GetCustomer(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendMessageBodyAndResponse(t *testing.T) {
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/messages" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Channel != ChannelAgent || req.Direction != DirectionOutbound {
			t.Errorf("unexpected request fields: %+v", req)
		}
		json.NewEncoder(w).Encode(Message{
			ID:         "m42",
			CustomerID: req.CustomerID,
			Text:       req.Text,
			Channel:    req.Channel,
			Direction:  req.Direction,
		})
	}))
	defer srv.Close()

	msg, err := c.SendMessage(context.Background(), SendMessageRequest{
		CustomerID: "cust-1",
		Text:       "Hello",
		Channel:    ChannelAgent,
		Direction:  DirectionOutbound,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.ID != "m42" || msg.Text != "Hello" {
		t.Fatalf("unexpected response message: %+v", msg)
	}
}

func TestNon2xxSurfacesAPIError(t *testing.T) {
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := c.ListCanned(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", apiErr.StatusCode)
	}
}

func TestListConversationsQuery(t *testing.T) {
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "loan" {
			t.Errorf("q = %q, want loan", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"items": []ConversationSummary{
			{CustomerID: "cust-1", LastMessage: "when is my loan approved?", MaxUrgency: 72},
		}})
	}))
	defer srv.Close()

	items, err := c.ListConversations(context.Background(), "loan")
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(items) != 1 || items[0].MaxUrgency != 72 {
		t.Fatalf("unexpected summaries: %+v", items)
	}
}

func TestImportCSVPassthrough(t *testing.T) {
	const csvText = "name,email,phone,text\nJane,jane@example.com,,hello\n"
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/messages/import_csv" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ImportCSVRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.CSVText != csvText || req.Channel != ChannelWeb {
			t.Errorf("unexpected import request: %+v", req)
		}
		json.NewEncoder(w).Encode(ImportResult{Imported: 1})
	}))
	defer srv.Close()

	res, err := c.ImportCSV(context.Background(), csvText, ChannelWeb)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 1 {
		t.Fatalf("imported = %d, want 1", res.Imported)
	}
}
