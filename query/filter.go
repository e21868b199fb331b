// Package query implements the read side of the entity store: the filter
// predicate language, criteria queries, grouped aggregation, date-range
// filtering, cross-entity reference lookup and schema introspection.
package query

import (
	"reflect"
	"strings"

	"github.com/corecraft/worldkit/world"
)

// Matches evaluates a filter specification against an entity. Each field
// constraint is independent and all must hold. A field value may be:
//   - a literal: equality (case-insensitive for strings),
//   - a list: shorthand for $in,
//   - an operator map: $gt, $gte, $lt, $lte (numeric ordering), $ne, $in,
//     $contains (case-insensitive substring over string fields).
//
// A field missing from the entity behaves as null: it fails every operator
// except an equality filter that targets null itself.
func Matches(e world.Entity, filters map[string]any) bool {
	for field, cond := range filters {
		val := e[field]
		switch c := cond.(type) {
		case map[string]any:
			if !matchOperators(val, c) {
				return false
			}
		case []any:
			if !containsValue(c, val) {
				return false
			}
		default:
			if !equalValues(val, cond) {
				return false
			}
		}
	}
	return true
}

func matchOperators(val any, ops map[string]any) bool {
	for op, arg := range ops {
		switch op {
		case "$gt", "$gte", "$lt", "$lte":
			left, lok := asNumber(val)
			right, rok := asNumber(arg)
			if !lok || !rok {
				return false
			}
			switch op {
			case "$gt":
				if !(left > right) {
					return false
				}
			case "$gte":
				if !(left >= right) {
					return false
				}
			case "$lt":
				if !(left < right) {
					return false
				}
			case "$lte":
				if !(left <= right) {
					return false
				}
			}
		case "$ne":
			if equalValues(val, arg) {
				return false
			}
		case "$in":
			list, ok := arg.([]any)
			if !ok || !containsValue(list, val) {
				return false
			}
		case "$contains":
			s, sok := val.(string)
			sub, aok := arg.(string)
			if !sok || !aok || !strings.Contains(strings.ToLower(s), strings.ToLower(sub)) {
				return false
			}
		}
		// Unknown operators are ignored rather than failing the match.
	}
	return true
}

func containsValue(list []any, val any) bool {
	for _, item := range list {
		if equalValues(val, item) {
			return true
		}
	}
	return false
}

// equalValues compares JSON-decoded values: strings fold case, numbers
// compare by value across numeric representations, everything else compares
// structurally. A numeric field never equals a string literal.
func equalValues(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && strings.EqualFold(as, bs)
	}
	if an, ok := asNumber(a); ok {
		bn, bok := asNumber(b)
		return bok && an == bn
	}
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	return reflect.DeepEqual(a, b)
}

// asNumber accepts the numeric shapes JSON decoding can produce. Strings
// never count as numbers here; see coerceFloat for the lenient aggregation
// variant.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
