// Package mutate implements the write side of the entity store: generic
// field updates, bulk status changes and the composite ticket and build
// workflows. Every operation validates before it writes, so a failed call
// leaves the world untouched.
package mutate

import (
	"fmt"

	"github.com/corecraft/worldkit/catalog"
	"github.com/corecraft/worldkit/world"
)

// FieldUpdate reports a single-field mutation with before and after values.
type FieldUpdate struct {
	Success       bool         `json:"success"`
	EntityType    string       `json:"entity_type"`
	EntityID      string       `json:"entity_id"`
	FieldName     string       `json:"field_name"`
	OldValue      any          `json:"old_value"`
	NewValue      any          `json:"new_value"`
	UpdatedEntity world.Entity `json:"updated_entity"`
}

// UpdateField sets a single field on an entity, creating the field when it
// does not exist. Entity types that carry the updatedAt convention get the
// timestamp stamped as a side effect.
func UpdateField(w *world.World, clock world.Clock, entityType, entityID, fieldName string, fieldValue any) (*FieldUpdate, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	e, ok := w.Table(canonical).Get(entityID)
	if !ok {
		return nil, &world.NotFoundError{Kind: entityType, ID: entityID}
	}

	old := e[fieldName]
	e[fieldName] = fieldValue
	if catalog.HasUpdatedAt(canonical) {
		e["updatedAt"] = clock.Now()
	}

	return &FieldUpdate{
		Success:       true,
		EntityType:    entityType,
		EntityID:      entityID,
		FieldName:     fieldName,
		OldValue:      old,
		NewValue:      fieldValue,
		UpdatedEntity: e,
	}, nil
}

// StatusChange records one entity's transition within a bulk update.
type StatusChange struct {
	ID        string `json:"id"`
	OldStatus any    `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// BulkOutcome buckets the per-id results of a bulk status update.
type BulkOutcome struct {
	Updated  []StatusChange   `json:"updated"`
	NotFound []string         `json:"not_found"`
	Errors   []map[string]any `json:"errors"`
}

// BulkReport is the result of BulkStatusUpdate.
type BulkReport struct {
	Success    bool           `json:"success"`
	EntityType string         `json:"entity_type"`
	Status     string         `json:"status"`
	Results    BulkOutcome    `json:"results"`
	Summary    map[string]int `json:"summary"`
}

// bulkTypes are the entity types eligible for bulk status updates.
var bulkTypes = map[string]bool{
	"order":          true,
	"support_ticket": true,
	"payment":        true,
	"shipment":       true,
}

// BulkStatusUpdate sets the status of several entities at once, stamping
// updatedAt on each. Lifecycle timestamps follow the status: tickets moved to
// resolved or closed get resolvedAt, payments get completedAt or failedAt and
// shipments get deliveredAt, each only when not already set.
func BulkStatusUpdate(w *world.World, clock world.Clock, entityType string, entityIDs []string, status string) (*BulkReport, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	if !bulkTypes[canonical] {
		return nil, &catalog.UnknownTypeError{Name: entityType}
	}

	table := w.Table(canonical)
	out := BulkOutcome{
		Updated:  []StatusChange{},
		NotFound: []string{},
		Errors:   []map[string]any{},
	}
	now := clock.Now()

	for _, id := range entityIDs {
		e, ok := table.Get(id)
		if !ok {
			out.NotFound = append(out.NotFound, id)
			continue
		}

		old := e["status"]
		e["status"] = status
		e["updatedAt"] = now

		switch canonical {
		case "support_ticket":
			if (status == "resolved" || status == "closed") && isUnset(e["resolvedAt"]) {
				e["resolvedAt"] = now
			}
		case "payment":
			if status == "completed" && isUnset(e["completedAt"]) {
				e["completedAt"] = now
			} else if status == "failed" && isUnset(e["failedAt"]) {
				e["failedAt"] = now
			}
		case "shipment":
			if status == "delivered" && isUnset(e["deliveredAt"]) {
				e["deliveredAt"] = now
			}
		}

		out.Updated = append(out.Updated, StatusChange{ID: id, OldStatus: old, NewStatus: status})
	}

	return &BulkReport{
		Success:    len(out.Updated) > 0,
		EntityType: entityType,
		Status:     status,
		Results:    out,
		Summary: map[string]int{
			"total":     len(entityIDs),
			"updated":   len(out.Updated),
			"not_found": len(out.NotFound),
			"errors":    len(out.Errors),
		},
	}, nil
}

// EnumError reports a value outside a fixed enum.
type EnumError struct {
	Field string
	Value string
	Valid []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s '%s'", e.Field, e.Value)
}

func (e *EnumError) ErrorResult() map[string]any {
	return map[string]any{
		"error":        e.Error(),
		"field":        e.Field,
		"value":        e.Value,
		"valid_values": e.Valid,
	}
}

// isUnset treats nil and the empty string as an absent timestamp.
func isUnset(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
