// Package sqlstore provides relational variants of the escalation, refund
// and status-update operations against PostgreSQL. Every write runs in one
// transaction per call that commits only after the affected row is fetched
// back for confirmation.
package sqlstore

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var logger = xlog.NewPackageLogger("github.com/corecraft/worldkit", "sqlstore")

var validate = validator.New()

type Client struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Client, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "creating postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "pinging postgres")
	}
	return &Client{pool: pool}, nil
}

func (c *Client) Close() {
	c.pool.Close()
}

// Exec runs a statement outside the per-operation transactions, mainly for
// schema maintenance and test fixtures.
func (c *Client) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.pool.Exec(ctx, sql, args...)
}

// EnsureSchema creates the backing tables when missing. Column names match
// the camelCase JSON fields, so identifiers are quoted throughout.
func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS "Order" (
    "id"        TEXT PRIMARY KEY,
    "type"      TEXT NOT NULL DEFAULT 'order',
    "customerId" TEXT,
    "orderNumber" TEXT,
    "status"    TEXT NOT NULL,
    "total"     DOUBLE PRECISION,
    "createdAt" TIMESTAMPTZ DEFAULT now(),
    "updatedAt" TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS "SupportTicket" (
    "id"         TEXT PRIMARY KEY,
    "type"       TEXT NOT NULL DEFAULT 'support_ticket',
    "customerId" TEXT,
    "orderId"    TEXT,
    "subject"    TEXT,
    "status"     TEXT NOT NULL,
    "priority"   TEXT,
    "assignedEmployeeId" TEXT,
    "createdAt"  TIMESTAMPTZ DEFAULT now(),
    "updatedAt"  TIMESTAMPTZ DEFAULT now(),
    "resolvedAt" TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS "Payment" (
    "id"        TEXT PRIMARY KEY,
    "type"      TEXT NOT NULL DEFAULT 'payment',
    "orderId"   TEXT,
    "amount"    DOUBLE PRECISION,
    "currency"  TEXT,
    "status"    TEXT NOT NULL,
    "createdAt" TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS "Escalation" (
    "id"             TEXT PRIMARY KEY,
    "type"           TEXT NOT NULL DEFAULT 'escalation',
    "ticketId"       TEXT NOT NULL REFERENCES "SupportTicket"("id"),
    "escalationType" TEXT NOT NULL,
    "destination"    TEXT NOT NULL,
    "notes"          TEXT,
    "createdAt"      TIMESTAMPTZ DEFAULT now(),
    "resolvedAt"     TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS "Refund" (
    "id"          TEXT PRIMARY KEY,
    "type"        TEXT NOT NULL DEFAULT 'refund',
    "paymentId"   TEXT NOT NULL REFERENCES "Payment"("id"),
    "ticketId"    TEXT REFERENCES "SupportTicket"("id"),
    "amount"      DOUBLE PRECISION NOT NULL,
    "reason"      TEXT NOT NULL,
    "status"      TEXT NOT NULL,
    "lines"       JSONB,
    "createdAt"   TIMESTAMPTZ DEFAULT now(),
    "processedAt" TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS "idxEscalationTicket" ON "Escalation" ("ticketId");
CREATE INDEX IF NOT EXISTS "idxRefundPayment" ON "Refund" ("paymentId");
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return errors.Wrap(err, "ensuring schema")
	}
	return nil
}
