package portal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/inboxkit/inboxkit/internal/api"
)

// fakeBackend records the portal's upsert + send flow.
type fakeBackend struct {
	upserts []api.UpsertCustomerRequest
	sends   []api.SendMessageRequest
	fail    bool
}

func (b *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.fail {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		switch r.URL.Path {
		case "/api/customers":
			var req api.UpsertCustomerRequest
			json.NewDecoder(r.Body).Decode(&req)
			b.upserts = append(b.upserts, req)
			json.NewEncoder(w).Encode(api.Customer{ID: "cust-7", Name: req.Name, Email: req.Email})
		case "/api/messages":
			var req api.SendMessageRequest
			json.NewDecoder(r.Body).Decode(&req)
			b.sends = append(b.sends, req)
			json.NewEncoder(w).Encode(api.Message{ID: "m77", CustomerID: req.CustomerID, Text: req.Text})
		default:
			http.NotFound(w, r)
		}
	})
}

func portalServer(t *testing.T, backend *fakeBackend) *Server {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewServer(0, api.NewClient(srv.URL, 5*time.Second))
}

func TestSubmitFilesInboundWebMessage(t *testing.T) {
	backend := &fakeBackend{}
	engine := portalServer(t, backend).Routes()

	body := `{"name":"Jane Doe","email":"jane@example.com","text":"I have a question about my account"}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(backend.upserts) != 1 || backend.upserts[0].Email != "jane@example.com" {
		t.Fatalf("upsert not performed: %+v", backend.upserts)
	}
	if len(backend.sends) != 1 {
		t.Fatalf("expected one message send, got %d", len(backend.sends))
	}
	sent := backend.sends[0]
	if sent.CustomerID != "cust-7" || sent.Channel != api.ChannelWeb || sent.Direction != api.DirectionInbound {
		t.Fatalf("unexpected send request: %+v", sent)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["customer_id"] != "cust-7" || resp["message_id"] != "m77" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	backend := &fakeBackend{}
	engine := portalServer(t, backend).Routes()

	body := `{"name":"  ","email":"jane@example.com","text":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(backend.upserts) != 0 {
		t.Fatal("backend called despite invalid form")
	}
}

func TestSubmitBackendFailure(t *testing.T) {
	backend := &fakeBackend{fail: true}
	engine := portalServer(t, backend).Routes()

	body := `{"name":"Jane","email":"jane@example.com","text":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestIndexServesForm(t *testing.T) {
	engine := portalServer(t, &fakeBackend{}).Routes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Customer Portal") {
		t.Fatal("form page not served")
	}
}
