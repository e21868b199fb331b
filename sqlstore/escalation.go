package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
)

// Escalation is one row of the Escalation table.
type Escalation struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	TicketID       string     `json:"ticketId"`
	EscalationType string     `json:"escalationType"`
	Destination    string     `json:"destination"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
	ResolvedAt     *time.Time `json:"resolvedAt"`
}

// CreateEscalationInput carries the arguments of CreateEscalation.
type CreateEscalationInput struct {
	TicketID       string `validate:"required"`
	EscalationType string `validate:"required,oneof=technical policy_exception product_specialist"`
	Destination    string `validate:"required"`
	Notes          string
}

// CreateEscalation inserts an escalation for an existing ticket and returns
// the stored row.
func (c *Client) CreateEscalation(ctx context.Context, in CreateEscalationInput) (*Escalation, error) {
	if err := validate.Struct(in); err != nil {
		return nil, errors.Wrap(err, "invalid escalation input")
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ticketID string
	err = tx.QueryRow(ctx, `SELECT "id" FROM "SupportTicket" WHERE "id" = $1`, in.TicketID).Scan(&ticketID)
	if err != nil {
		return nil, errors.Newf("ticket %s not found", in.TicketID)
	}

	id := fmt.Sprintf("esc-%s", uuid.NewString())
	var notes *string
	if in.Notes != "" {
		notes = &in.Notes
	}
	_, err = tx.Exec(ctx, `
INSERT INTO "Escalation" ("id", "type", "ticketId", "escalationType", "destination", "notes", "createdAt", "resolvedAt")
VALUES ($1, 'escalation', $2, $3, $4, $5, now(), NULL)
`, id, in.TicketID, in.EscalationType, in.Destination, notes)
	if err != nil {
		return nil, errors.Wrap(err, "inserting escalation")
	}

	row, err := scanEscalation(tx.QueryRow(ctx, `
SELECT "id", "type", "ticketId", "escalationType", "destination", "notes", "createdAt", "resolvedAt"
FROM "Escalation" WHERE "id" = $1
`, id))
	if err != nil {
		return nil, errors.Wrapf(err, "fetching created escalation %s", id)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "commit", "escalation", id, "err", err.Error())
		return nil, errors.Wrap(err, "committing escalation")
	}
	return row, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEscalation(r rowScanner) (*Escalation, error) {
	var e Escalation
	err := r.Scan(&e.ID, &e.Type, &e.TicketID, &e.EscalationType, &e.Destination, &e.Notes, &e.CreatedAt, &e.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
