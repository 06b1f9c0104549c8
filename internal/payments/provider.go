// Package payments provides the thin boundary between the Checkout
// Coordinator and an external payment gateway. No payment SDK appears
// anywhere in the example pack and integrating one is explicitly out of
// scope, so this package is an interface plus two small implementations
// rather than a vendor integration.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	IntentStatusPending   = "pending"
	IntentStatusSucceeded = "succeeded"

	EventTypeSucceeded = "succeeded"
	EventTypeFailed    = "failed"
)

// IntentRequest describes the charge the Checkout Coordinator wants created.
type IntentRequest struct {
	OrderID  string
	Amount   float64
	Currency string
}

// Intent is the provider's handle on an in-flight charge.
type Intent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// WebhookEvent is the provider's notification of a charge outcome,
// parsed from the raw request body POSTed to /payments/webhook (§6).
type WebhookEvent struct {
	Type       string `json:"type"`
	PaymentRef string `json:"paymentRef"`
	OrderID    string `json:"orderId"`
	Reason     string `json:"reason,omitempty"`
}

// Provider is the Checkout Coordinator's payment collaborator.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

var ErrInvalidSignature = errors.New("payments: invalid webhook signature")

// MockProvider resolves every intent synchronously on creation — the
// mock-succeed mode used whenever PAYMENT_PROVIDER_KEY is unset (§6,
// resolved Open Question on payment integration). There is no
// asynchronous leg, so its webhook verification is never exercised in
// this mode but is still implemented for interface symmetry and tests.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	return &Intent{
		ID:     fmt.Sprintf("mock_%s", uuid.New().String()),
		Status: IntentStatusSucceeded,
	}, nil
}

func (p *MockProvider) VerifyWebhook(payload []byte, _ string) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("payments: decoding mock webhook payload: %w", err)
	}
	return &event, nil
}

// HMACProvider models a signed-webhook gateway: CreateIntent starts a
// charge in pending state, and the gateway later confirms the outcome
// by POSTing a body signed with the shared webhook secret.
type HMACProvider struct {
	providerKey   string
	webhookSecret string
}

func NewHMACProvider(providerKey, webhookSecret string) *HMACProvider {
	return &HMACProvider{providerKey: providerKey, webhookSecret: webhookSecret}
}

func (p *HMACProvider) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	return &Intent{
		ID:     fmt.Sprintf("pi_%d_%s", time.Now().Unix(), uuid.New().String()[:8]),
		Status: IntentStatusPending,
	}, nil
}

// VerifyWebhook checks an HMAC-SHA256 signature over the raw body
// against the configured webhook secret before trusting the payload —
// the standard signed-webhook pattern, implemented against the standard
// library since no payment SDK in the pack supplies this (and adding
// one here would be the exact vendor integration the scope excludes).
func (p *HMACProvider) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	mac := hmac.New(sha256.New, []byte(p.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidSignature
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("payments: decoding webhook payload: %w", err)
	}
	return &event, nil
}
