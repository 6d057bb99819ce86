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

// DepositRepo implements ports.DepositRepository.
type DepositRepo struct {
	pool Pool
}

// NewDepositRepo creates a new DepositRepo.
func NewDepositRepo(pool Pool) *DepositRepo {
	return &DepositRepo{pool: pool}
}

// Create inserts a new deposit within a database transaction.
func (r *DepositRepo) Create(ctx context.Context, tx pgx.Tx, d *domain.Deposit) error {
	query := `INSERT INTO deposits (id, order_id, amount, method, status, receiver, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		d.ID, d.OrderID, d.Amount, d.Method, d.Status, d.Receiver, d.Note, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}

// GetByID fetches a deposit. Returns nil, nil when no row matches.
func (r *DepositRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	query := `SELECT id, order_id, amount, method, status, receiver, note, created_at, updated_at
		FROM deposits WHERE id = $1`

	d := &domain.Deposit{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.OrderID, &d.Amount, &d.Method, &d.Status, &d.Receiver, &d.Note, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan deposit: %w", err)
	}
	return d, nil
}

// MarkPaid flips a PENDING deposit to PAID within a database
// transaction. Returns false when the deposit was already PAID.
func (r *DepositRepo) MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	query := `UPDATE deposits SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query,
		domain.DepositStatusPaid, time.Now().UTC(), id, domain.DepositStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark deposit paid: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
