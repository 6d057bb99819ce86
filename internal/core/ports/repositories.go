package ports

import (
	"context"
	"time"

	"dealer-payment-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepository defines persistence operations for transactions.
// Methods accepting pgx.Tx run inside the reconciliation unit of work.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	GetByCode(ctx context.Context, code string) (*domain.Transaction, error)
	// MarkSuccess applies the terminal SUCCESS transition conditioned on
	// the row still being PENDING. Returns false when a concurrent
	// callback already moved the transaction out of PENDING.
	MarkSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, outcome TransactionOutcome) (bool, error)
	// MarkFailed applies the terminal FAILED transition, also conditioned
	// on the row still being PENDING.
	MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, responseCode string, at time.Time) (bool, error)
}

// TransactionOutcome carries the gateway-reported fields recorded on a
// successful transition.
type TransactionOutcome struct {
	GatewayRef    string
	BankCode      *string
	CardType      *string
	ResponseCode  string
	SignatureSeen *string
	TransactionAt time.Time
}

// DepositRepository defines persistence operations for deposits.
type DepositRepository interface {
	Create(ctx context.Context, tx pgx.Tx, d *domain.Deposit) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error)
	// MarkPaid flips a PENDING deposit to PAID. Returns false if the
	// deposit was already PAID.
	MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)
}

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, tx pgx.Tx, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	// GetByOrderID returns the order's invoice, or nil when none exists.
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error)
	// MarkPaid flips a DRAFT invoice to PAID. Returns false if the
	// invoice was already PAID.
	MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)
}

// OrderRepository defines the order operations the payment engine needs.
// Orders are owned elsewhere; the engine only reads them and advances
// their status forward.
type OrderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// Advance moves the order to target only when its current status
	// ranks below target. Returns false when no row changed.
	Advance(ctx context.Context, tx pgx.Tx, id uuid.UUID, target domain.OrderStatus) (bool, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
