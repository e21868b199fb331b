package worldtools

import (
	"context"

	"github.com/corecraft/worldkit/mutate"
	"github.com/corecraft/worldkit/tools"
	"github.com/corecraft/worldkit/world"
)

// runMutation loads the world, applies fn with the world's clock and commits
// the world back on success.
func runMutation[O any](ctx context.Context, src Source, fn func(w *world.World, clock world.Clock) (*O, error)) (*O, error) {
	w, err := src.World(ctx)
	if err != nil {
		return nil, err
	}
	out, err := fn(w, w.Clock())
	if err != nil {
		return nil, err
	}
	if err := src.Commit(ctx, w); err != nil {
		return nil, err
	}
	return out, nil
}

type UpdateEntityFieldInput struct {
	EntityType string `json:"entity_type" jsonschema:"description=Type of entity."`
	EntityID   string `json:"entity_id" jsonschema:"description=ID of the entity to update."`
	FieldName  string `json:"field_name" jsonschema:"description=Name of the field to update."`
	FieldValue any    `json:"field_value" jsonschema:"description=New value for the field."`
}

func NewUpdateEntityField(src Source) (tools.ITool, error) {
	return tools.NewFunc("update_entity_field",
		"Generic field updater: update any single field on any entity type. More granular than entity-specific update tools.",
		func(ctx context.Context, in *UpdateEntityFieldInput) (*mutate.FieldUpdate, error) {
			return runMutation(ctx, src, func(w *world.World, clock world.Clock) (*mutate.FieldUpdate, error) {
				return mutate.UpdateField(w, clock, in.EntityType, in.EntityID, in.FieldName, in.FieldValue)
			})
		})
}

type BulkStatusUpdateInput struct {
	EntityType string   `json:"entity_type" jsonschema:"description=Type of entity: order or ticket or payment or shipment."`
	EntityIDs  []string `json:"entity_ids" jsonschema:"description=List of entity IDs to update."`
	Status     string   `json:"status" jsonschema:"description=New status to set for all entities."`
}

func NewBulkStatusUpdate(src Source) (tools.ITool, error) {
	return tools.NewFunc("bulk_status_update",
		"Bulk update status for multiple entities (orders, tickets, payments, shipments) at once.",
		func(ctx context.Context, in *BulkStatusUpdateInput) (*mutate.BulkReport, error) {
			return runMutation(ctx, src, func(w *world.World, clock world.Clock) (*mutate.BulkReport, error) {
				return mutate.BulkStatusUpdate(w, clock, in.EntityType, in.EntityIDs, in.Status)
			})
		})
}

type EscalateTicketInput struct {
	TicketID       string `json:"ticket_id" jsonschema:"description=ID of the existing support ticket to escalate."`
	EscalationType string `json:"escalation_type" jsonschema:"description=Type of escalation: technical or policy_exception or product_specialist."`
	Destination    string `json:"destination" jsonschema:"description=Escalation destination team or queue or person."`
	Notes          string `json:"notes,omitempty" jsonschema:"description=Notes explaining why the escalation is needed."`
}

func NewEscalateTicket(src Source) (tools.ITool, error) {
	return tools.NewFunc("escalate_ticket",
		"Escalate an existing support ticket by creating an escalation record. Use this when a ticket needs specialized attention or higher-level review. Escalation entities cannot be deleted once created.",
		func(ctx context.Context, in *EscalateTicketInput) (*mutate.EscalationResult, error) {
			return runMutation(ctx, src, func(w *world.World, clock world.Clock) (*mutate.EscalationResult, error) {
				return mutate.EscalateTicket(w, clock, in.TicketID, in.EscalationType, in.Destination, in.Notes)
			})
		})
}

type ResolveAndCloseInput struct {
	TicketID        string `json:"ticket_id" jsonschema:"description=Ticket ID to resolve and close."`
	ResolutionType  string `json:"resolution_type" jsonschema:"description=Type of resolution such as refund_issued or replacement_sent or technical_fix or policy_override or no_action_needed."`
	ResolutionNotes string `json:"resolution_notes" jsonschema:"description=Notes about how the issue was resolved."`
}

func NewResolveAndClose(src Source) (tools.ITool, error) {
	return tools.NewFunc("resolve_and_close",
		"Workflow tool: Create resolution and close ticket in one atomic operation.",
		func(ctx context.Context, in *ResolveAndCloseInput) (*mutate.ResolutionResult, error) {
			return runMutation(ctx, src, func(w *world.World, clock world.Clock) (*mutate.ResolutionResult, error) {
				return mutate.ResolveAndClose(w, clock, in.TicketID, in.ResolutionType, in.ResolutionNotes)
			})
		})
}

type ProcessCustomerIssueInput struct {
	CustomerID   string `json:"customer_id" jsonschema:"description=Customer ID reporting the issue."`
	IssueType    string `json:"issue_type" jsonschema:"description=Type of issue: damaged_product or defective_item or missing_items or wrong_item or shipping_delay or billing_question or general_inquiry."`
	Description  string `json:"description" jsonschema:"description=Description of the issue as reported by the customer."`
	OrderID      string `json:"order_id,omitempty" jsonschema:"description=Optional order ID if issue relates to an order."`
	AutoEscalate bool   `json:"auto_escalate,omitempty" jsonschema:"description=When true creates an escalation entity automatically."`
}

func NewProcessCustomerIssue(src Source) (tools.ITool, error) {
	return tools.NewFunc("process_customer_issue",
		"Workflow tool: Create support ticket with auto-determined priority based on issue type and customer tier. Optionally auto-escalates high-priority issues. When auto_escalate=True, this tool automatically creates an escalation entity. Ticket entities cannot be deleted once created.",
		func(ctx context.Context, in *ProcessCustomerIssueInput) (*mutate.IssueResult, error) {
			return runMutation(ctx, src, func(w *world.World, clock world.Clock) (*mutate.IssueResult, error) {
				return mutate.ProcessCustomerIssue(w, clock, in.CustomerID, in.IssueType, in.Description, in.OrderID, in.AutoEscalate)
			})
		})
}

type ModifyBuildInput struct {
	BuildID   string `json:"build_id" jsonschema:"description=ID of the build to modify."`
	ProductID string `json:"product_id" jsonschema:"description=Product ID to add or remove or swap."`
	Action    string `json:"action" jsonschema:"description=Action to perform: add or remove or swap,enum=add,enum=remove,enum=swap"`
}

func NewModifyBuild(src Source) (tools.ITool, error) {
	return tools.NewFunc("modify_build",
		"Modify a build by adding, removing, or swapping a component. For non-memory/storage categories, only one component per category is allowed (use 'swap' to replace). Memory and storage can have multiple instances. When swapping, if multiple identical components exist in the same category, all will be replaced.",
		func(ctx context.Context, in *ModifyBuildInput) (*mutate.BuildChange, error) {
			return runMutation(ctx, src, func(w *world.World, clock world.Clock) (*mutate.BuildChange, error) {
				return mutate.ModifyBuild(w, clock, in.BuildID, in.ProductID, in.Action)
			})
		})
}
