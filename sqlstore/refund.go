package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Refund is one row of the Refund table.
type Refund struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	PaymentID   string     `json:"paymentId"`
	TicketID    *string    `json:"ticketId"`
	Amount      float64    `json:"amount"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	Lines       []any      `json:"lines"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt"`
}

// CreateRefundInput carries the arguments of CreateRefund. Lines, when set,
// must be a JSON array.
type CreateRefundInput struct {
	PaymentID string `validate:"required"`
	Amount    float64
	Reason    string `validate:"required,oneof=customer_remorse defective incompatible shipping_issue other"`
	Status    string `validate:"required,oneof=pending approved denied processed failed"`
	TicketID  string
	Lines     string
}

// CreateRefund inserts a refund against an existing payment and returns the
// stored row. processedAt is stamped only when the refund is created already
// processed.
func (c *Client) CreateRefund(ctx context.Context, in CreateRefundInput) (*Refund, error) {
	if in.Status == "" {
		in.Status = "pending"
	}
	if err := validate.Struct(in); err != nil {
		return nil, errors.Wrap(err, "invalid refund input")
	}

	var lines []any
	if in.Lines != "" {
		if err := json.Unmarshal([]byte(in.Lines), &lines); err != nil {
			return nil, errors.New("lines must be a valid JSON array")
		}
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var paymentID string
	if err := tx.QueryRow(ctx, `SELECT "id" FROM "Payment" WHERE "id" = $1`, in.PaymentID).Scan(&paymentID); err != nil {
		return nil, errors.Newf("payment %s not found", in.PaymentID)
	}
	var ticketID *string
	if in.TicketID != "" {
		var found string
		if err := tx.QueryRow(ctx, `SELECT "id" FROM "SupportTicket" WHERE "id" = $1`, in.TicketID).Scan(&found); err != nil {
			return nil, errors.Newf("ticket %s not found", in.TicketID)
		}
		ticketID = &found
	}

	id := fmt.Sprintf("ref-%s", uuid.NewString())
	var linesJSON any
	if lines != nil {
		linesJSON = lines
	}
	_, err = tx.Exec(ctx, `
INSERT INTO "Refund" ("id", "type", "paymentId", "ticketId", "amount", "reason", "status", "lines", "createdAt", "processedAt")
VALUES ($1, 'refund', $2, $3, $4, $5, $6, $7, now(),
    CASE WHEN $6 = 'processed' THEN now() ELSE NULL END)
`, id, in.PaymentID, ticketID, in.Amount, in.Reason, in.Status, linesJSON)
	if err != nil {
		return nil, errors.Wrap(err, "inserting refund")
	}

	var r Refund
	var linesBytes []byte
	err = tx.QueryRow(ctx, `
SELECT "id", "type", "paymentId", "ticketId", "amount", "reason", "status", "lines", "createdAt", "processedAt"
FROM "Refund" WHERE "id" = $1
`, id).Scan(&r.ID, &r.Type, &r.PaymentID, &r.TicketID, &r.Amount, &r.Reason, &r.Status, &linesBytes, &r.CreatedAt, &r.ProcessedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching created refund %s", id)
	}
	if len(linesBytes) > 0 {
		if err := json.Unmarshal(linesBytes, &r.Lines); err != nil {
			return nil, errors.Wrap(err, "unmarshaling refund lines")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "committing refund")
	}
	return &r, nil
}
