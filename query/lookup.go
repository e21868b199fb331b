package query

import (
	"fmt"
	"strings"

	"github.com/corecraft/worldkit/catalog"
	"github.com/corecraft/worldkit/world"
)

// ReferenceMatches buckets cross-entity lookup hits by entity kind.
type ReferenceMatches struct {
	Customers []world.Entity `json:"customers"`
	Orders    []world.Entity `json:"orders"`
	Tickets   []world.Entity `json:"tickets"`
	Employees []world.Entity `json:"employees"`
}

// ReferenceResult is the outcome of a free-text reference lookup.
type ReferenceResult struct {
	Results    ReferenceMatches `json:"results"`
	TotalCount int              `json:"total_count"`
	Query      string           `json:"query"`
}

// ByReference searches customers, orders, tickets and employees for a
// reference identifier: email, phone, name, order number, subject or id.
// Matching is case-insensitive substring, except ids on customers and
// employees which match exactly. An empty query matches everything; that
// quirk is part of the observable contract and intentionally preserved.
func ByReference(w *world.World, reference string) *ReferenceResult {
	ref := strings.ToLower(reference)
	res := &ReferenceResult{
		Query: reference,
		Results: ReferenceMatches{
			Customers: []world.Entity{},
			Orders:    []world.Entity{},
			Tickets:   []world.Entity{},
			Employees: []world.Entity{},
		},
	}

	w.Table("customer").Range(func(id string, e world.Entity) bool {
		if contains(e, "email", ref) || contains(e, "phone", ref) || contains(e, "name", ref) ||
			entityID(id, e) == reference {
			res.Results.Customers = append(res.Results.Customers, e)
		}
		return true
	})
	w.Table("order").Range(func(id string, e world.Entity) bool {
		if strings.Contains(strings.ToLower(entityID(id, e)), ref) ||
			strings.Contains(strings.ToLower(fmt.Sprint(e["orderNumber"])), ref) {
			res.Results.Orders = append(res.Results.Orders, e)
		}
		return true
	})
	w.Table("support_ticket").Range(func(id string, e world.Entity) bool {
		if strings.Contains(strings.ToLower(entityID(id, e)), ref) || contains(e, "subject", ref) {
			res.Results.Tickets = append(res.Results.Tickets, e)
		}
		return true
	})
	w.Table("employee").Range(func(id string, e world.Entity) bool {
		if contains(e, "email", ref) || contains(e, "name", ref) || entityID(id, e) == reference {
			res.Results.Employees = append(res.Results.Employees, e)
		}
		return true
	})

	res.TotalCount = len(res.Results.Customers) + len(res.Results.Orders) +
		len(res.Results.Tickets) + len(res.Results.Employees)
	return res
}

func contains(e world.Entity, field, lowerRef string) bool {
	s, ok := e[field].(string)
	return ok && strings.Contains(strings.ToLower(s), lowerRef)
}

// entityID prefers the entity's own id field, falling back to its table key.
func entityID(key string, e world.Entity) string {
	if s, ok := e["id"].(string); ok && s != "" {
		return s
	}
	return key
}

// BatchResult reports which of the requested ids resolved.
type BatchResult struct {
	EntityType string         `json:"entity_type"`
	Found      []world.Entity `json:"found"`
	NotFound   []string       `json:"not_found"`
	Count      int            `json:"count"`
}

// BatchLookup resolves a list of ids against one table, preserving the
// input order in both buckets. Count reports the number found.
func BatchLookup(w *world.World, entityType string, ids []string) (*BatchResult, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	res := &BatchResult{
		EntityType: entityType,
		Found:      []world.Entity{},
		NotFound:   []string{},
	}
	table := w.Table(canonical)
	for _, id := range ids {
		if e, ok := table.Get(id); ok {
			res.Found = append(res.Found, e)
		} else {
			res.NotFound = append(res.NotFound, id)
		}
	}
	res.Count = len(res.Found)
	return res, nil
}

// FieldProjection is a partial (or full) view of one entity.
type FieldProjection struct {
	EntityID   string         `json:"entity_id"`
	EntityType string         `json:"entity_type"`
	Fields     map[string]any `json:"fields"`
}

// EntityField projects selected fields from one entity; with no field names
// the whole entity is returned. Requested fields the entity lacks come back
// as null.
func EntityField(w *world.World, entityType, entityID string, fields []string) (*FieldProjection, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	e, ok := w.Get(canonical, entityID)
	if !ok {
		return nil, &world.NotFoundError{Kind: entityType, ID: entityID}
	}
	proj := &FieldProjection{EntityID: entityID, EntityType: entityType}
	if len(fields) == 0 {
		proj.Fields = e
		return proj, nil
	}
	proj.Fields = make(map[string]any, len(fields))
	for _, f := range fields {
		proj.Fields[f] = e[f]
	}
	return proj, nil
}
