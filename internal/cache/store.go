// Package cache fronts the backend client with short-TTL read-through caches
// for the lookups the CLI repeats while hopping between the dashboard and
// threads: customer profiles and the canned-response catalog. Everything else
// passes straight through.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/inboxkit/inboxkit/internal/api"
)

const cannedKey = "catalog"

// Store wraps an api.Client. It satisfies the thread view model's Service
// interface, so threads opened through it share cached profiles.
type Store struct {
	client    *api.Client
	customers *expirable.LRU[string, *api.Customer]
	canned    *expirable.LRU[string, []api.CannedResponse]
}

func New(client *api.Client, customerEntries int, ttl time.Duration) *Store {
	return &Store{
		client:    client,
		customers: expirable.NewLRU[string, *api.Customer](customerEntries, nil, ttl),
		canned:    expirable.NewLRU[string, []api.CannedResponse](1, nil, ttl),
	}
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*api.Customer, error) {
	if cust, ok := s.customers.Get(id); ok {
		return cust, nil
	}
	cust, err := s.client.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	s.customers.Add(id, cust)
	return cust, nil
}

func (s *Store) ListCanned(ctx context.Context) ([]api.CannedResponse, error) {
	if items, ok := s.canned.Get(cannedKey); ok {
		return items, nil
	}
	items, err := s.client.ListCanned(ctx)
	if err != nil {
		return nil, err
	}
	s.canned.Add(cannedKey, items)
	return items, nil
}

// CreateCanned writes through and drops the cached catalog.
func (s *Store) CreateCanned(ctx context.Context, title, text string) (*api.CannedResponse, error) {
	canned, err := s.client.CreateCanned(ctx, title, text)
	if err != nil {
		return nil, err
	}
	s.canned.Remove(cannedKey)
	return canned, nil
}

// Messages are never cached: history is re-requested on every thread open and
// live pushes keep open threads current.
func (s *Store) ListMessages(ctx context.Context, customerID string, limit int) ([]api.Message, error) {
	return s.client.ListMessages(ctx, customerID, limit)
}

func (s *Store) SendMessage(ctx context.Context, req api.SendMessageRequest) (*api.Message, error) {
	return s.client.SendMessage(ctx, req)
}

func (s *Store) ListConversations(ctx context.Context, query string) ([]api.ConversationSummary, error) {
	return s.client.ListConversations(ctx, query)
}

// Invalidate clears all cached entries.
func (s *Store) Invalidate() {
	s.customers.Purge()
	s.canned.Purge()
}
