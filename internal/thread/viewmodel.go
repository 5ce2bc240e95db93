// Package thread holds the view model for a single open conversation: one
// append-only message list reconciled from the initial bulk load, outbound
// sends, and live-pushed events.
package thread

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/inboxkit/inboxkit/internal/api"
)

// HistoryLimit is the bound requested from the backend for the initial load.
// The backend returns at most this many messages, sorted by time ascending.
const HistoryLimit = 500

// Service is the slice of the conversation backend the view model consumes.
type Service interface {
	GetCustomer(ctx context.Context, id string) (*api.Customer, error)
	ListMessages(ctx context.Context, customerID string, limit int) ([]api.Message, error)
	SendMessage(ctx context.Context, req api.SendMessageRequest) (*api.Message, error)
	ListCanned(ctx context.Context) ([]api.CannedResponse, error)
}

// Subscription is an open live-update feed connection.
type Subscription interface {
	Close() error
}

// Feed opens live-update subscriptions. The feed is global at the transport
// level; filtering to the active conversation is the view model's job.
type Feed interface {
	Subscribe(ctx context.Context, handler func(api.Message)) (Subscription, error)
}

// ViewModel presents one consistent ordered view of a conversation's
// messages. Messages are never re-sorted after the initial load: the backend's
// ascending-time ordering is trusted for the bulk load, and every accepted
// message after that is appended at the end. Duplicate delivery from the feed
// is absorbed by id-based dedup; clock skew is deliberately not corrected.
type ViewModel struct {
	svc  Service
	feed Feed

	mu             sync.Mutex
	gen            uint64
	conversationID string
	customer       *api.Customer
	messages       []api.Message
	seen           map[string]struct{}
	canned         []api.CannedResponse
	composer       string
	loading        bool
	sub            Subscription

	scroll chan struct{}
}

// New builds a view model. feed may be nil, in which case no live
// subscription is opened and the thread is load-and-send only.
func New(svc Service, feed Feed) *ViewModel {
	return &ViewModel{
		svc:    svc,
		feed:   feed,
		seen:   make(map[string]struct{}),
		scroll: make(chan struct{}, 1),
	}
}

// Initialize loads the conversation: customer profile, message history
// (HistoryLimit newest, oldest first), and the canned catalog, fetched in
// parallel. All-or-nothing: any failure leaves prior state untouched. On
// success it closes any prior subscription, opens one scoped to this
// conversation, and fires a scroll signal.
//
// A second Initialize started before the first finishes supersedes it: the
// older call's results are discarded and it returns nil without touching
// state.
func (vm *ViewModel) Initialize(ctx context.Context, conversationID string) error {
	vm.mu.Lock()
	vm.gen++
	gen := vm.gen
	vm.loading = true
	vm.mu.Unlock()

	var (
		wg     sync.WaitGroup
		cust   *api.Customer
		msgs   []api.Message
		canned []api.CannedResponse

		custErr, msgsErr, cannedErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		cust, custErr = vm.svc.GetCustomer(ctx, conversationID)
	}()
	go func() {
		defer wg.Done()
		msgs, msgsErr = vm.svc.ListMessages(ctx, conversationID, HistoryLimit)
	}()
	go func() {
		defer wg.Done()
		canned, cannedErr = vm.svc.ListCanned(ctx)
	}()
	wg.Wait()

	vm.mu.Lock()
	stale := vm.gen != gen
	if !stale {
		vm.loading = false
	}
	vm.mu.Unlock()
	if stale {
		return nil
	}

	if errors.Is(custErr, api.ErrNotFound) {
		return &LoadError{ConversationID: conversationID, Err: ErrNotFound}
	}
	for _, err := range []error{custErr, msgsErr, cannedErr} {
		if err != nil {
			return &LoadError{ConversationID: conversationID, Err: err}
		}
	}

	vm.mu.Lock()
	if vm.gen != gen {
		vm.mu.Unlock()
		return nil
	}
	vm.conversationID = conversationID
	vm.customer = cust
	vm.messages = append([]api.Message(nil), msgs...)
	vm.seen = make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		vm.seen[m.ID] = struct{}{}
	}
	vm.canned = canned
	vm.closeSubscriptionLocked()
	if vm.feed != nil {
		sub, err := vm.feed.Subscribe(ctx, vm.AppendIncoming)
		if err != nil {
			// Non-fatal: the thread stays usable without live updates.
			slog.Warn("live feed unavailable", "conversation", conversationID, "error", err)
		} else {
			vm.sub = sub
		}
	}
	vm.mu.Unlock()

	vm.signalScroll()
	return nil
}

// AppendIncoming applies one live-pushed message. Messages for other
// conversations and ids already present are silently ignored; an accepted
// message is appended at the end and fires a scroll signal.
func (vm *ViewModel) AppendIncoming(msg api.Message) {
	vm.mu.Lock()
	if vm.conversationID == "" || msg.CustomerID != vm.conversationID {
		vm.mu.Unlock()
		return
	}
	if _, dup := vm.seen[msg.ID]; dup {
		vm.mu.Unlock()
		return
	}
	vm.seen[msg.ID] = struct{}{}
	vm.messages = append(vm.messages, msg)
	vm.mu.Unlock()

	vm.signalScroll()
}

// Send submits an outbound agent message. Empty (after trimming) text returns
// ErrEmptyText before any network call. On success the backend-assigned
// message is appended and the composer is cleared; on failure messages and the
// composer are left untouched so the agent can retry.
func (vm *ViewModel) Send(ctx context.Context, text string) (*api.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	vm.mu.Lock()
	conversationID := vm.conversationID
	vm.mu.Unlock()
	if conversationID == "" {
		return nil, &SendError{Err: errors.New("no conversation loaded")}
	}

	msg, err := vm.svc.SendMessage(ctx, api.SendMessageRequest{
		CustomerID: conversationID,
		Text:       text,
		Channel:    api.ChannelAgent,
		Direction:  api.DirectionOutbound,
	})
	if err != nil {
		return nil, &SendError{Err: err}
	}

	vm.mu.Lock()
	appended := false
	if vm.conversationID == conversationID {
		// The feed echoes created messages back; registering the id here
		// makes that echo a dedup no-op.
		if _, dup := vm.seen[msg.ID]; !dup {
			vm.seen[msg.ID] = struct{}{}
			vm.messages = append(vm.messages, *msg)
			appended = true
		}
		vm.composer = ""
	}
	vm.mu.Unlock()

	if appended {
		vm.signalScroll()
	}
	return msg, nil
}

// ApplyCannedTemplate replaces the composer buffer with the catalog entry's
// body. An unknown id is a no-op: the catalog may have changed since the
// selector was rendered.
func (vm *ViewModel) ApplyCannedTemplate(cannedID string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, c := range vm.canned {
		if c.ID == cannedID {
			vm.composer = c.Text
			return
		}
	}
}

// Dispose closes the live subscription. Safe to call repeatedly or when none
// is open.
func (vm *ViewModel) Dispose() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.closeSubscriptionLocked()
}

func (vm *ViewModel) closeSubscriptionLocked() {
	if vm.sub != nil {
		vm.sub.Close()
		vm.sub = nil
	}
}

// ScrollSignal notifies the rendering layer that the newest message changed
// and the viewport should move to the bottom. Edge-triggered and coalescing:
// rapid appends may collapse into a single notification.
func (vm *ViewModel) ScrollSignal() <-chan struct{} { return vm.scroll }

func (vm *ViewModel) signalScroll() {
	select {
	case vm.scroll <- struct{}{}:
	default:
	}
}

// ConversationID returns the active conversation id, or "" before the first
// successful Initialize.
func (vm *ViewModel) ConversationID() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.conversationID
}

// Customer returns the loaded profile for the thread header.
func (vm *ViewModel) Customer() *api.Customer {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.customer
}

// Messages returns a snapshot of the ordered message list.
func (vm *ViewModel) Messages() []api.Message {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]api.Message(nil), vm.messages...)
}

// Canned returns the loaded canned-response catalog.
func (vm *ViewModel) Canned() []api.CannedResponse {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]api.CannedResponse(nil), vm.canned...)
}

// Composer returns the current composer buffer.
func (vm *ViewModel) Composer() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.composer
}

// SetComposer replaces the composer buffer (the agent typing).
func (vm *ViewModel) SetComposer(text string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.composer = text
}

// Loading reports whether an Initialize is in flight.
func (vm *ViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}
