package api

import "time"

// Message directions.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Well-known channels. The backend accepts free-form labels; these are the
// two the toolkit itself emits.
const (
	ChannelAgent = "agent"
	ChannelWeb   = "web"
)

// Message is one inbound or outbound communication tied to a customer's
// conversation. IDs and timestamps are assigned by the backend.
type Message struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	Direction    string    `json:"direction"`
	Text         string    `json:"text"`
	Channel      string    `json:"channel"`
	Topic        string    `json:"topic,omitempty"`
	UrgencyScore int       `json:"urgency_score,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// Customer is the profile shown in the thread header.
type Customer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	AccountID      string `json:"account_id,omitempty"`
	Notes          string `json:"notes,omitempty"`
	IsVIP          bool   `json:"is_vip,omitempty"`
	KYCStatus      string `json:"kyc_status,omitempty"`
	LastLoanStatus string `json:"last_loan_status,omitempty"`
}

// ConversationSummary is the denormalized listing entry computed by the
// backend: one row per customer with a last-message preview and the maximum
// urgency across the conversation.
type ConversationSummary struct {
	CustomerID  string    `json:"customer_id"`
	Customer    *Customer `json:"customer,omitempty"`
	LastMessage string    `json:"last_message"`
	MaxUrgency  int       `json:"max_urgency"`
	Topics      []string  `json:"topics,omitempty"`
}

// CannedResponse is a reusable pre-authored reply template.
type CannedResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// SendMessageRequest creates a message on the backend.
type SendMessageRequest struct {
	CustomerID string `json:"customer_id"`
	Text       string `json:"text"`
	Channel    string `json:"channel"`
	Direction  string `json:"direction"`
}

// UpsertCustomerRequest creates or updates a customer by email (portal flow).
type UpsertCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ImportCSVRequest submits a raw CSV batch; parsing happens server-side.
type ImportCSVRequest struct {
	CSVText string `json:"csv_text"`
	Channel string `json:"channel"`
}

// ImportResult reports what the backend made of a CSV batch.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}
