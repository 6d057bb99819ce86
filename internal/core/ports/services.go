package ports

import (
	"context"
	"time"

	"dealer-payment-service/internal/core/domain"

	"github.com/google/uuid"
)

// ParamSigner signs and verifies sorted, URL-encoded parameter maps.
// This is the redirect-gateway (VNPay) canonicalization scheme; the
// shared secret is injected at construction from gateway config.
type ParamSigner interface {
	Sign(params map[string]string) string
	Verify(params domain.CallbackParams, signature string) bool
}

// PayloadVerifier verifies raw webhook payloads against a configured
// secret and API key. This is the QR-gateway (SePay) scheme where the
// signature covers the whole body rather than individual parameters.
type PayloadVerifier interface {
	VerifyAPIKey(authorization string) bool
	VerifyPayload(payload []byte, signature string) bool
	// SignatureRequired reports whether a webhook secret is configured.
	SignatureRequired() bool
}

// PaymentPurpose distinguishes deposit-intent from invoice-intent
// payment requests.
type PaymentPurpose string

const (
	PurposeDeposit PaymentPurpose = "deposit"
	PurposeInvoice PaymentPurpose = "invoice"
)

// PaymentService builds gateway payable artifacts and records the
// PENDING transaction that anchors later reconciliation.
type PaymentService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*PaymentArtifact, error)
	GetStatus(ctx context.Context, code string) (*domain.Transaction, error)
}

// CreatePaymentRequest holds validated input for payment creation.
type CreatePaymentRequest struct {
	OrderID   uuid.UUID
	Gateway   domain.Gateway
	Purpose   PaymentPurpose
	Amount    int64 // 0 with deposit purpose = derive from order policy
	OrderInfo string
	BankCode  string // Optional, VNPay only
	ClientIP  string
}

// PaymentArtifact is what the caller hands to the payer: a redirect URL
// for VNPay, or a remittance content + QR URL for SePay.
type PaymentArtifact struct {
	TransactionID     uuid.UUID
	Code              string
	Gateway           domain.Gateway
	Amount            int64
	OrderInfo         string
	PayURL            string
	QRImageURL        string
	RemittanceContent string
	ExpiresAt         *time.Time
}

// CallbackOutcome classifies the result of processing one callback.
type CallbackOutcome string

const (
	OutcomeConfirmed        CallbackOutcome = "CONFIRMED"         // Transition applied, cascade ran
	OutcomeAlreadyConfirmed CallbackOutcome = "ALREADY_CONFIRMED" // Redelivery of a settled callback
	OutcomeFailureRecorded  CallbackOutcome = "FAILURE_RECORDED"  // Gateway reported a failed payment
	OutcomeBadSignature     CallbackOutcome = "BAD_SIGNATURE"
	OutcomeNotFound         CallbackOutcome = "NOT_FOUND"
	OutcomeAmountMismatch   CallbackOutcome = "AMOUNT_MISMATCH"
	OutcomeIgnored          CallbackOutcome = "IGNORED" // Acknowledged, but not a payment notification
	OutcomePending          CallbackOutcome = "PENDING" // Return path: webhook has not landed yet
	OutcomeRetry            CallbackOutcome = "RETRY"   // Persistence fault, gateway should redeliver
)

// CallbackResult is the structured result every callback branch
// produces; the HTTP layer maps it onto the gateway's ack contract.
type CallbackResult struct {
	Outcome     CallbackOutcome
	Message     string
	Transaction *domain.Transaction // Set when resolution succeeded
}

// Applied reports whether this callback is acknowledged as settled
// (including idempotent redeliveries and recorded failures), meaning
// the gateway must stop retrying.
func (r *CallbackResult) Applied() bool {
	switch r.Outcome {
	case OutcomeConfirmed, OutcomeAlreadyConfirmed, OutcomeFailureRecorded, OutcomeIgnored:
		return true
	default:
		return false
	}
}

// ReconciliationService ingests untrusted gateway notifications and
// drives the transaction state machine plus the dependent cascade.
type ReconciliationService interface {
	HandleVNPayIPN(ctx context.Context, params domain.CallbackParams) *CallbackResult
	// HandleVNPayReturn is the browser-facing variant: it performs the
	// same trust and resolution checks but never mutates state.
	HandleVNPayReturn(ctx context.Context, params domain.CallbackParams) *CallbackResult
	// HandleSePayWebhook takes the raw JSON body so the payload
	// signature can be verified before any field is trusted.
	HandleSePayWebhook(ctx context.Context, payload []byte, authorization, signature string) *CallbackResult
}

// TokenService handles bearer tokens for the caller-facing API.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (string, error)
}

// Notifier delivers best-effort payment notifications. Failures must
// never affect the financial write.
type Notifier interface {
	PaymentSucceeded(ctx context.Context, t *domain.Transaction)
}

// CallbackAckCache is the Redis fast path answering redelivered
// callbacks without touching postgres.
type CallbackAckCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
