package query

import (
	"fmt"
	"strings"

	"github.com/corecraft/worldkit/catalog"
	"github.com/corecraft/worldkit/world"
)

// AttentionBuckets holds the entities flagged by the attention sweep, one
// slice per category.
type AttentionBuckets struct {
	OpenTickets        []world.Entity `json:"open_tickets"`
	UrgentTickets      []world.Entity `json:"urgent_tickets"`
	PendingRefunds     []world.Entity `json:"pending_refunds"`
	FailedPayments     []world.Entity `json:"failed_payments"`
	PendingEscalations []world.Entity `json:"pending_escalations"`
	UnresolvedTickets  []world.Entity `json:"unresolved_tickets"`
	CancelledOrders    []world.Entity `json:"cancelled_orders"`
}

// AttentionReport is the result of NeedingAttention.
type AttentionReport struct {
	Results AttentionBuckets `json:"results"`
	Summary map[string]int   `json:"summary"`
	Total   int              `json:"total_items_needing_attention"`
}

// NeedingAttention sweeps the world for entities an operator should look at:
// open and urgent tickets, pending refunds, failed payments, pending
// escalations, unresolved tickets and cancelled orders. A ticket counts as
// urgent only when it is also open.
func NeedingAttention(w *world.World) *AttentionReport {
	b := AttentionBuckets{
		OpenTickets:        []world.Entity{},
		UrgentTickets:      []world.Entity{},
		PendingRefunds:     []world.Entity{},
		FailedPayments:     []world.Entity{},
		PendingEscalations: []world.Entity{},
		UnresolvedTickets:  []world.Entity{},
		CancelledOrders:    []world.Entity{},
	}

	w.Table("support_ticket").Range(func(_ string, e world.Entity) bool {
		status := lowerString(e["status"])
		switch status {
		case "new", "open", "pending_customer":
			b.OpenTickets = append(b.OpenTickets, e)
			if p := lowerString(e["priority"]); p == "high" || p == "urgent" {
				b.UrgentTickets = append(b.UrgentTickets, e)
			}
		}
		if status != "resolved" && status != "closed" {
			b.UnresolvedTickets = append(b.UnresolvedTickets, e)
		}
		return true
	})

	w.Table("refund").Range(func(_ string, e world.Entity) bool {
		if lowerString(e["status"]) == "pending" {
			b.PendingRefunds = append(b.PendingRefunds, e)
		}
		return true
	})

	w.Table("payment").Range(func(_ string, e world.Entity) bool {
		if lowerString(e["status"]) == "failed" {
			b.FailedPayments = append(b.FailedPayments, e)
		}
		return true
	})

	w.Table("escalation").Range(func(_ string, e world.Entity) bool {
		if lowerString(e["status"]) == "pending" || isEmptyValue(e["resolvedAt"]) {
			b.PendingEscalations = append(b.PendingEscalations, e)
		}
		return true
	})

	w.Table("order").Range(func(_ string, e world.Entity) bool {
		if lowerString(e["status"]) == "cancelled" {
			b.CancelledOrders = append(b.CancelledOrders, e)
		}
		return true
	})

	summary := map[string]int{
		"open_tickets":        len(b.OpenTickets),
		"urgent_tickets":      len(b.UrgentTickets),
		"pending_refunds":     len(b.PendingRefunds),
		"failed_payments":     len(b.FailedPayments),
		"pending_escalations": len(b.PendingEscalations),
		"unresolved_tickets":  len(b.UnresolvedTickets),
		"cancelled_orders":    len(b.CancelledOrders),
	}
	total := 0
	for _, n := range summary {
		total += n
	}
	return &AttentionReport{Results: b, Summary: summary, Total: total}
}

// StatusGroups is the result of ByStatus.
type StatusGroups struct {
	EntityType   string                    `json:"entity_type"`
	ByStatus     map[string][]world.Entity `json:"by_status"`
	StatusCounts map[string]int            `json:"status_counts"`
	Total        int                       `json:"total"`
}

// statusTypes are the entity types that carry a status lifecycle.
var statusTypes = map[string]bool{
	"order":          true,
	"support_ticket": true,
	"payment":        true,
	"shipment":       true,
	"refund":         true,
	"escalation":     true,
}

// ByStatus groups all entities of a status-bearing type by their status
// field. Entities without a status land under "unknown".
func ByStatus(w *world.World, entityType string) (*StatusGroups, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	if !statusTypes[canonical] {
		return nil, &catalog.UnknownTypeError{Name: entityType}
	}
	res := &StatusGroups{
		EntityType:   entityType,
		ByStatus:     map[string][]world.Entity{},
		StatusCounts: map[string]int{},
	}
	w.Table(canonical).Range(func(_ string, e world.Entity) bool {
		status := "unknown"
		switch v := e["status"].(type) {
		case string:
			status = v
		case nil:
		default:
			status = fmt.Sprint(v)
		}
		res.ByStatus[status] = append(res.ByStatus[status], e)
		return true
	})
	for status, entities := range res.ByStatus {
		res.StatusCounts[status] = len(entities)
		res.Total += len(entities)
	}
	return res, nil
}

// lowerString lowercases a string value, returning "" for anything else.
func lowerString(v any) string {
	s, _ := v.(string)
	return strings.ToLower(s)
}

// isEmptyValue mirrors falsy checks on optional fields: nil, empty string,
// false and zero all count as empty.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	default:
		return false
	}
}
