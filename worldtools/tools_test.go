package worldtools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/corecraft/worldkit/store"
	"github.com/corecraft/worldkit/world"
	"github.com/corecraft/worldkit/worldtools"
)

func Test_Registry(t *testing.T) {
	r, err := worldtools.NewRegistry(worldtools.Direct(world.Seed(1)))
	require.NoError(t, err)

	list := r.List()
	assert.Len(t, list, 19)
	assert.Equal(t, "query_by_criteria", list[0].Name())

	for _, name := range []string{
		"aggregate_by_field", "filter_by_date_range", "lookup_by_reference",
		"get_entity_schema", "search_by_field_value", "batch_entity_lookup",
		"get_entities_needing_attention", "list_entities_by_status",
		"get_entity_field", "verify_customer", "update_entity_field",
		"bulk_status_update", "escalate_ticket", "resolve_and_close",
		"process_customer_issue", "modify_build", "calculate_order_totals",
		"get_time_diff",
	} {
		tool, ok := r.Get(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, tool.Description(), name)
		assert.NotNil(t, tool.Parameters(), name)
	}

	desc := r.Descriptions()
	assert.Contains(t, desc, "query_by_criteria")
	assert.Contains(t, desc, "get_time_diff")
}

func Test_QueryByCriteria_Call(t *testing.T) {
	ctx := context.Background()
	r, err := worldtools.NewRegistry(worldtools.Direct(world.Seed(1)))
	require.NoError(t, err)

	out, err := r.Call(ctx, "query_by_criteria", `{"entity_type": "order", "filters": {"status": "paid"}}`)
	require.NoError(t, err)

	assert.Equal(t, int64(2), gjson.Get(out, "count").Int())
	assert.Equal(t, "order", gjson.Get(out, "entity_type").String())
	assert.Equal(t, "order_2", gjson.Get(out, "results.0.id").String())
}

func Test_QueryByCriteria_ErrorResult(t *testing.T) {
	ctx := context.Background()
	r, err := worldtools.NewRegistry(worldtools.Direct(world.Seed(1)))
	require.NoError(t, err)

	// Domain failures surface as structured error results, not Go errors.
	out, err := r.Call(ctx, "query_by_criteria", `{"entity_type": "gadget"}`)
	require.NoError(t, err)
	assert.Equal(t, "unknown entity type: 'gadget'", gjson.Get(out, "error").String())
	assert.True(t, gjson.Get(out, "valid_types").IsArray())
	assert.Equal(t, "support_ticket", gjson.Get(out, "aliases.ticket").String())
}

func Test_AggregateByField_Call(t *testing.T) {
	ctx := context.Background()
	r, err := worldtools.NewRegistry(worldtools.Direct(world.Seed(1)))
	require.NoError(t, err)

	out, err := r.Call(ctx, "aggregate_by_field", `{"entity_type": "order", "group_by_field": "status", "count_field": "total"}`)
	require.NoError(t, err)

	assert.Equal(t, int64(8), gjson.Get(out, "total_entities").Int())
	assert.Equal(t, int64(4), gjson.Get(out, "unique_groups").Int())
	assert.Equal(t, int64(2), gjson.Get(out, "aggregations.paid.count").Int())
	assert.True(t, gjson.Get(out, "aggregations.paid.sum").Exists())
}

func Test_VerifyCustomer_Call(t *testing.T) {
	ctx := context.Background()
	r, err := worldtools.NewRegistry(worldtools.Direct(world.Seed(1)))
	require.NoError(t, err)

	out, err := r.Call(ctx, "verify_customer", `{"customer_id": "cust_1", "email": "wrong@example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.Get(out, "required_count").Int())
	assert.Equal(t, int64(1), gjson.Get(out, "actual_count").Int())
}

func Test_Mutation_DirectSource(t *testing.T) {
	ctx := context.Background()
	w := world.Seed(1)
	r, err := worldtools.NewRegistry(worldtools.Direct(w))
	require.NoError(t, err)

	out, err := r.Call(ctx, "update_entity_field", `{"entity_type": "order", "entity_id": "order_1", "field_name": "status", "field_value": "fulfilled"}`)
	require.NoError(t, err)
	assert.True(t, gjson.Get(out, "success").Bool())
	assert.Equal(t, "pending", gjson.Get(out, "old_value").String())

	// Direct sources mutate the world in place.
	e, _ := w.Get("order", "order_1")
	assert.Equal(t, "fulfilled", e["status"])
	assert.Equal(t, w.NowString(), e["updatedAt"])
}

func Test_Mutation_SessionSource(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(ctx, "sess_1", world.Seed(1)))

	r, err := worldtools.NewRegistry(worldtools.Session(st, "sess_1"))
	require.NoError(t, err)

	out, err := r.Call(ctx, "escalate_ticket", `{"ticket_id": "tick_1", "escalation_type": "technical", "destination": "engineering"}`)
	require.NoError(t, err)
	assert.True(t, gjson.Get(out, "success").Bool())
	escID := gjson.Get(out, "escalation.id").String()
	require.NotEmpty(t, escID)

	// The mutation was committed back to the store.
	w, err := st.Load(ctx, "sess_1")
	require.NoError(t, err)
	esc, ok := w.Get("escalation", escID)
	require.True(t, ok)
	assert.Equal(t, "tick_1", esc["ticketId"])
}

func Test_Mutation_FailureNotCommitted(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(ctx, "sess_1", world.Seed(1)))

	r, err := worldtools.NewRegistry(worldtools.Session(st, "sess_1"))
	require.NoError(t, err)

	out, err := r.Call(ctx, "escalate_ticket", `{"ticket_id": "tick_99", "escalation_type": "technical", "destination": "engineering"}`)
	require.NoError(t, err)
	assert.Equal(t, "ticket tick_99 not found", gjson.Get(out, "error").String())

	w, err := st.Load(ctx, "sess_1")
	require.NoError(t, err)
	assert.Equal(t, 0, w.Table("escalation").Len())
}

func Test_ProcessCustomerIssue_Call(t *testing.T) {
	ctx := context.Background()
	r, err := worldtools.NewRegistry(worldtools.Direct(world.Seed(1)))
	require.NoError(t, err)

	out, err := r.Call(ctx, "process_customer_issue",
		`{"customer_id": "cust_1", "issue_type": "damaged_product", "description": "case cracked in transit", "order_id": "order_1"}`)
	require.NoError(t, err)

	assert.True(t, gjson.Get(out, "success").Bool())
	assert.Equal(t, "high", gjson.Get(out, "priority").String())
	assert.True(t, gjson.Get(out, "auto_escalated").Bool())
	assert.Equal(t, "product_specialist_team", gjson.Get(out, "escalation.destination").String())
	assert.Equal(t, "case cracked in transit", gjson.Get(out, "ticket.description").String())
}

func Test_CalculateOrderTotals_Call(t *testing.T) {
	ctx := context.Background()
	r, err := worldtools.NewRegistry(worldtools.Direct(world.Seed(1)))
	require.NoError(t, err)

	out, err := r.Call(ctx, "calculate_order_totals", `{"product_ids": ["prod_1", "prod_2"], "shipping_cost": 9.99}`)
	require.NoError(t, err)

	assert.Equal(t, int64(2), int64(gjson.Get(out, "items.#").Int()))
	assert.Equal(t, 0.08, gjson.Get(out, "tax_rate").Float())
	assert.Greater(t, gjson.Get(out, "grand_total").Float(), gjson.Get(out, "subtotal").Float())
}

func Test_GetTimeDiff_Call(t *testing.T) {
	ctx := context.Background()
	r, err := worldtools.NewRegistry(worldtools.Direct(world.New()))
	require.NoError(t, err)

	out, err := r.Call(ctx, "get_time_diff", `{"start_date": "2025-01-01T00:00:00Z", "end_date": "2025-02-24T12:00:00Z"}`)
	require.NoError(t, err)
	assert.Equal(t, 54.5, gjson.Get(out, "difference.days").Float())
	assert.Equal(t, 1.79, gjson.Get(out, "difference.months").Float())
	assert.False(t, gjson.Get(out, "is_negative").Bool())

	out, err = r.Call(ctx, "get_time_diff", `{"start_date": "2025-02-01", "end_date": "2025-01-01"}`)
	require.NoError(t, err)
	assert.Equal(t, "start_date is after end_date", gjson.Get(out, "error").String())

	out, err = r.Call(ctx, "get_time_diff", `{"start_date": "yesterday", "end_date": "2025-01-01"}`)
	require.NoError(t, err)
	assert.Contains(t, gjson.Get(out, "error").String(), "invalid date format")
}
