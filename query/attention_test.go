package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corecraft/worldkit/query"
	"github.com/corecraft/worldkit/world"
)

func attentionWorld() *world.World {
	w := world.New()

	tickets := w.EnsureTable("support_ticket")
	tickets.Set("tick_1", world.Entity{"id": "tick_1", "status": "open", "priority": "high"})
	tickets.Set("tick_2", world.Entity{"id": "tick_2", "status": "new", "priority": "low"})
	tickets.Set("tick_3", world.Entity{"id": "tick_3", "status": "resolved", "priority": "urgent"})
	tickets.Set("tick_4", world.Entity{"id": "tick_4", "status": "escalated", "priority": "high"})

	refunds := w.EnsureTable("refund")
	refunds.Set("ref_1", world.Entity{"id": "ref_1", "status": "pending"})
	refunds.Set("ref_2", world.Entity{"id": "ref_2", "status": "processed"})

	payments := w.EnsureTable("payment")
	payments.Set("pay_1", world.Entity{"id": "pay_1", "status": "failed"})
	payments.Set("pay_2", world.Entity{"id": "pay_2", "status": "completed"})

	escalations := w.EnsureTable("escalation")
	escalations.Set("esc_1", world.Entity{"id": "esc_1", "status": "pending", "resolvedAt": nil})
	escalations.Set("esc_2", world.Entity{"id": "esc_2", "resolvedAt": "2025-01-05T00:00:00Z"})

	orders := w.EnsureTable("order")
	orders.Set("order_1", world.Entity{"id": "order_1", "status": "cancelled"})
	orders.Set("order_2", world.Entity{"id": "order_2", "status": "paid"})

	return w
}

func Test_NeedingAttention(t *testing.T) {
	rep := query.NeedingAttention(attentionWorld())

	assert.Len(t, rep.Results.OpenTickets, 2)
	// Urgent requires the ticket to also be open; the resolved urgent
	// ticket and the escalated high one do not count.
	require.Len(t, rep.Results.UrgentTickets, 1)
	assert.Equal(t, "tick_1", rep.Results.UrgentTickets[0]["id"])
	// Everything that is neither resolved nor closed.
	assert.Len(t, rep.Results.UnresolvedTickets, 3)

	assert.Len(t, rep.Results.PendingRefunds, 1)
	assert.Len(t, rep.Results.FailedPayments, 1)
	assert.Len(t, rep.Results.PendingEscalations, 1)
	assert.Len(t, rep.Results.CancelledOrders, 1)

	assert.Equal(t, 2, rep.Summary["open_tickets"])
	assert.Equal(t, 1, rep.Summary["urgent_tickets"])
	assert.Equal(t, 3, rep.Summary["unresolved_tickets"])
	assert.Equal(t, 10, rep.Total)
}

func Test_NeedingAttention_UnresolvedEscalation(t *testing.T) {
	w := world.New()
	// No status at all and no resolvedAt counts as pending.
	w.EnsureTable("escalation").Set("esc_1", world.Entity{"id": "esc_1"})

	rep := query.NeedingAttention(w)
	assert.Len(t, rep.Results.PendingEscalations, 1)
}

func Test_NeedingAttention_EmptyWorld(t *testing.T) {
	rep := query.NeedingAttention(world.New())
	assert.Equal(t, 0, rep.Total)
	assert.NotNil(t, rep.Results.OpenTickets)
}

func Test_ByStatus(t *testing.T) {
	res, err := query.ByStatus(attentionWorld(), "ticket")
	require.NoError(t, err)

	assert.Equal(t, "ticket", res.EntityType)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 1, res.StatusCounts["open"])
	assert.Equal(t, 1, res.StatusCounts["resolved"])
	require.Len(t, res.ByStatus["escalated"], 1)
	assert.Equal(t, "tick_4", res.ByStatus["escalated"][0]["id"])
}

func Test_ByStatus_MissingStatus(t *testing.T) {
	w := world.New()
	orders := w.EnsureTable("order")
	orders.Set("order_1", world.Entity{"id": "order_1"})
	orders.Set("order_2", world.Entity{"id": "order_2", "status": 7})

	res, err := query.ByStatus(w, "order")
	require.NoError(t, err)
	assert.Equal(t, 1, res.StatusCounts["unknown"])
	assert.Equal(t, 1, res.StatusCounts["7"])
}

func Test_ByStatus_TypeWithoutStatus(t *testing.T) {
	_, err := query.ByStatus(attentionWorld(), "customer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity type")
}
