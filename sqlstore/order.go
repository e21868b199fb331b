package sqlstore

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// Order is one row of the Order table.
type Order struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	CustomerID  *string   `json:"customerId"`
	OrderNumber *string   `json:"orderNumber"`
	Status      string    `json:"status"`
	Total       *float64  `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateOrderStatusInput carries the arguments of UpdateOrderStatus.
type UpdateOrderStatusInput struct {
	OrderID string `validate:"required"`
	Status  string `validate:"required,oneof=pending paid fulfilled cancelled backorder refunded partially_refunded"`
}

// UpdateOrderStatus sets an order's status, stamping updatedAt, and returns
// the updated row.
func (c *Client) UpdateOrderStatus(ctx context.Context, in UpdateOrderStatusInput) (*Order, error) {
	if err := validate.Struct(in); err != nil {
		return nil, errors.Wrap(err, "invalid order status input")
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
UPDATE "Order" SET "status" = $1, "updatedAt" = now() WHERE "id" = $2
`, in.Status, in.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "updating order status")
	}
	if tag.RowsAffected() == 0 {
		return nil, errors.Newf("order %s not found", in.OrderID)
	}

	var o Order
	err = tx.QueryRow(ctx, `
SELECT "id", "type", "customerId", "orderNumber", "status", "total", "createdAt", "updatedAt"
FROM "Order" WHERE "id" = $1
`, in.OrderID).Scan(&o.ID, &o.Type, &o.CustomerID, &o.OrderNumber, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching updated order %s", in.OrderID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "committing order update")
	}
	return &o, nil
}
