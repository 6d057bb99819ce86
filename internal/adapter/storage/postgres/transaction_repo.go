package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealer-payment-service/internal/core/domain"
	"dealer-payment-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const txColumns = `id, code, gateway, amount, currency, status, deposit_id, invoice_id,
		gateway_ref, bank_code, card_type, response_code, signature_seen,
		order_info, client_ip, created_at, transaction_at`

// Create inserts a new PENDING transaction within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.Code, t.Gateway, t.Amount, t.Currency, t.Status,
		t.DepositID, t.InvoiceID,
		t.GatewayRef, t.BankCode, t.CardType, t.ResponseCode, t.SignatureSeen,
		t.OrderInfo, t.ClientIP, t.CreatedAt, t.TransactionAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByCode fetches a transaction by its gateway-visible idempotency
// code. Returns nil, nil when no row matches.
func (r *TransactionRepo) GetByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE code = $1`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, code))
}

// MarkSuccess applies the SUCCESS transition conditioned on the row
// still being PENDING. RowsAffected == 0 means a concurrent callback
// already settled the transaction; the caller must re-read and no-op.
func (r *TransactionRepo) MarkSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, o ports.TransactionOutcome) (bool, error) {
	query := `UPDATE transactions
		SET status = $1, gateway_ref = $2, bank_code = $3, card_type = $4,
			response_code = $5, signature_seen = $6, transaction_at = $7
		WHERE id = $8 AND status = $9`

	tag, err := tx.Exec(ctx, query,
		domain.TransactionStatusSuccess,
		o.GatewayRef, o.BankCode, o.CardType, o.ResponseCode, o.SignatureSeen, o.TransactionAt,
		id, domain.TransactionStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark transaction success: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkFailed applies the FAILED transition, also conditioned on PENDING.
func (r *TransactionRepo) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, responseCode string, at time.Time) (bool, error) {
	query := `UPDATE transactions
		SET status = $1, response_code = $2, transaction_at = $3
		WHERE id = $4 AND status = $5`

	tag, err := tx.Exec(ctx, query,
		domain.TransactionStatusFailed, responseCode, at,
		id, domain.TransactionStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark transaction failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.Code, &t.Gateway, &t.Amount, &t.Currency, &t.Status,
		&t.DepositID, &t.InvoiceID,
		&t.GatewayRef, &t.BankCode, &t.CardType, &t.ResponseCode, &t.SignatureSeen,
		&t.OrderInfo, &t.ClientIP, &t.CreatedAt, &t.TransactionAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
