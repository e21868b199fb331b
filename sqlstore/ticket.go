package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// SupportTicket is one row of the SupportTicket table.
type SupportTicket struct {
	ID                 string     `json:"id"`
	Type               string     `json:"type"`
	CustomerID         *string    `json:"customerId"`
	OrderID            *string    `json:"orderId"`
	Subject            *string    `json:"subject"`
	Status             string     `json:"status"`
	Priority           *string    `json:"priority"`
	AssignedEmployeeID *string    `json:"assignedEmployeeId"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	ResolvedAt         *time.Time `json:"resolvedAt"`
}

// UpdateTicketStatusInput carries the arguments of UpdateTicketStatus. At
// least one of Status, AssignedEmployeeID or Priority must be set.
type UpdateTicketStatusInput struct {
	TicketID           string  `validate:"required"`
	Status             *string `validate:"omitempty,oneof=new open pending_customer resolved closed"`
	AssignedEmployeeID *string
	Priority           *string `validate:"omitempty,oneof=low normal high"`
}

// UpdateTicketStatus updates the provided ticket fields, stamping updatedAt,
// and returns the updated row.
func (c *Client) UpdateTicketStatus(ctx context.Context, in UpdateTicketStatusInput) (*SupportTicket, error) {
	if err := validate.Struct(in); err != nil {
		return nil, errors.Wrap(err, "invalid ticket status input")
	}

	var sets []string
	var params []any
	addSet := func(column string, value any) {
		params = append(params, value)
		sets = append(sets, fmt.Sprintf(`%q = $%d`, column, len(params)))
	}
	if in.Status != nil {
		addSet("status", *in.Status)
	}
	if in.AssignedEmployeeID != nil {
		addSet("assignedEmployeeId", *in.AssignedEmployeeID)
	}
	if in.Priority != nil {
		addSet("priority", *in.Priority)
	}
	if len(sets) == 0 {
		return nil, errors.New("no fields to update")
	}
	sets = append(sets, `"updatedAt" = now()`)
	params = append(params, in.TicketID)

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := fmt.Sprintf(
		`UPDATE "SupportTicket" SET %s WHERE "id" = $%d`,
		strings.Join(sets, ", "), len(params))
	tag, err := tx.Exec(ctx, query, params...)
	if err != nil {
		return nil, errors.Wrap(err, "updating ticket")
	}
	if tag.RowsAffected() == 0 {
		return nil, errors.Newf("ticket %s not found", in.TicketID)
	}

	var t SupportTicket
	err = tx.QueryRow(ctx, `
SELECT "id", "type", "customerId", "orderId", "subject", "status", "priority", "assignedEmployeeId", "createdAt", "updatedAt", "resolvedAt"
FROM "SupportTicket" WHERE "id" = $1
`, in.TicketID).Scan(&t.ID, &t.Type, &t.CustomerID, &t.OrderID, &t.Subject, &t.Status, &t.Priority,
		&t.AssignedEmployeeID, &t.CreatedAt, &t.UpdatedAt, &t.ResolvedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching updated ticket %s", in.TicketID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "committing ticket update")
	}
	return &t, nil
}
