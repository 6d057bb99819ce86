package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealer-payment-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InvoiceRepo implements ports.InvoiceRepository.
type InvoiceRepo struct {
	pool Pool
}

// NewInvoiceRepo creates a new InvoiceRepo.
func NewInvoiceRepo(pool Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

const invoiceColumns = `id, order_id, code, total_amount, status, created_at, updated_at`

// Create inserts a new invoice within a database transaction. The
// unique constraint on order_id enforces at most one invoice per order.
func (r *InvoiceRepo) Create(ctx context.Context, tx pgx.Tx, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		inv.ID, inv.OrderID, inv.Code, inv.TotalAmount, inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID fetches an invoice. Returns nil, nil when no row matches.
func (r *InvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanInvoice(r.pool.QueryRow(ctx, query, id))
}

// GetByOrderID fetches the order's invoice. Returns nil, nil when the
// order has no invoice yet.
func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1`
	return r.scanInvoice(r.pool.QueryRow(ctx, query, orderID))
}

// MarkPaid flips a DRAFT invoice to PAID within a database transaction.
// Returns false when the invoice was already PAID.
func (r *InvoiceRepo) MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	query := `UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query,
		domain.InvoiceStatusPaid, time.Now().UTC(), id, domain.InvoiceStatusDraft,
	)
	if err != nil {
		return false, fmt.Errorf("mark invoice paid: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *InvoiceRepo) scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	err := row.Scan(
		&inv.ID, &inv.OrderID, &inv.Code, &inv.TotalAmount, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return inv, nil
}
