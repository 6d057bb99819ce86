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

// OrderRepo implements ports.OrderRepository. Orders are owned by the
// rest of the system; this repo only reads them and advances status.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// GetByID fetches an order. Returns nil, nil when no row matches.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT id, code, final_amount, status, created_at, updated_at FROM orders WHERE id = $1`

	o := &domain.Order{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Code, &o.FinalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}

// Advance moves the order to target only when its current status ranks
// strictly below target, so the cascade can never regress an order.
// Returns false when no row changed (already at or past target).
func (r *OrderRepo) Advance(ctx context.Context, tx pgx.Tx, id uuid.UUID, target domain.OrderStatus) (bool, error) {
	below := domain.OrderStatusesBelow(target)
	if len(below) == 0 {
		return false, nil
	}
	eligible := make([]string, len(below))
	for i, s := range below {
		eligible[i] = string(s)
	}

	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = ANY($4)`

	tag, err := tx.Exec(ctx, query, target, time.Now().UTC(), id, eligible)
	if err != nil {
		return false, fmt.Errorf("advance order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
