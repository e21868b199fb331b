// Package catalog maps logical entity-type names (including aliases such as
// "ticket") to canonical table names, and answers schema questions about a
// type: which fields its records carry and what kind of value a field holds.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corecraft/worldkit/world"
)

// canonicalNames are the entity tables a world may carry.
var canonicalNames = map[string]struct{}{
	"customer":               {},
	"order":                  {},
	"support_ticket":         {},
	"payment":                {},
	"shipment":               {},
	"product":                {},
	"build":                  {},
	"employee":               {},
	"refund":                 {},
	"escalation":             {},
	"resolution":             {},
	"knowledge_base_article": {},
	"slack_channel":          {},
	"slack_message":          {},
}

// aliases resolve convenience spellings to canonical names.
var aliases = map[string]string{
	"ticket":         "support_ticket",
	"knowledge_base": "knowledge_base_article",
}

// updatedAtTypes are the entity types whose records carry the updatedAt
// convention: generic field updates stamp updatedAt on these and only these.
var updatedAtTypes = map[string]bool{
	"order":          true,
	"support_ticket": true,
}

// UnknownTypeError reports an entity-type name outside the catalog. The
// message always names the offending value.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown entity type: '%s'", e.Name)
}

// ErrorResult shapes the error for the agent-facing boundary, listing the
// valid canonical names and aliases so the caller can self-correct.
func (e *UnknownTypeError) ErrorResult() map[string]any {
	return map[string]any{
		"error":         e.Error(),
		"provided_type": e.Name,
		"valid_types":   Names(),
		"aliases":       aliasMap(),
	}
}

// Resolve lowercases the given name, applies aliases and returns the
// canonical table name. Resolution is idempotent over its own output.
func Resolve(name string) (string, error) {
	lower := strings.ToLower(name)
	if canonical, ok := aliases[lower]; ok {
		return canonical, nil
	}
	if _, ok := canonicalNames[lower]; ok {
		return lower, nil
	}
	return "", &UnknownTypeError{Name: name}
}

// Names returns all canonical entity-type names, sorted.
func Names() []string {
	names := make([]string, 0, len(canonicalNames))
	for n := range canonicalNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func aliasMap() map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

// HasUpdatedAt reports whether the canonical type carries the updatedAt
// stamping convention.
func HasUpdatedAt(canonical string) bool {
	return updatedAtTypes[canonical]
}

// KnownFields scans all records of the canonical type and returns the union
// of observed field names, sorted. A nil slice means the table is empty or
// missing, in which case no field validation can be performed.
func KnownFields(w *world.World, canonical string) []string {
	table := w.Table(canonical)
	if table.Len() == 0 {
		return nil
	}
	seen := map[string]struct{}{}
	table.Range(func(_ string, e world.Entity) bool {
		for k := range e {
			seen[k] = struct{}{}
		}
		return true
	})
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// FieldKind classifies a JSON-decoded value. JSON does not preserve the
// integer/float distinction, so the convention here is: a number with an
// integral value reports "integer", anything else numeric reports "number".
func FieldKind(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int, int32, int64:
		return "integer"
	case float64:
		if t == float64(int64(t)) {
			return "integer"
		}
		return "number"
	case float32:
		return FieldKind(float64(t))
	case []any:
		return "array"
	case map[string]any, world.Entity:
		return "object"
	default:
		return "unknown"
	}
}
