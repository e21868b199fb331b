// Package world holds the mutable state of a simulated business dataset:
// insertion-ordered tables of schema-flexible entities, keyed by entity type
// and entity id. The package never persists anything on its own; callers own
// the World and pass it to the query/mutate operations.
package world

import (
	"sort"

	"github.com/effective-security/x/values"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entity is a schema-flexible record: a mapping from field name to a
// JSON-compatible value. Any field may be added ad hoc; by convention every
// entity carries an `id` and usually a `type` discriminator.
type Entity = values.MapAny

// Table is an insertion-ordered mapping from entity id to Entity.
// Query results iterate tables in insertion order of the backing data.
type Table struct {
	rows *orderedmap.OrderedMap[string, Entity]
}

func NewTable() *Table {
	return &Table{rows: orderedmap.New[string, Entity]()}
}

func (t *Table) Get(id string) (Entity, bool) {
	if t == nil {
		return nil, false
	}
	return t.rows.Get(id)
}

// Set inserts or replaces an entity. New ids append at the end.
func (t *Table) Set(id string, e Entity) {
	t.rows.Set(id, e)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.rows.Len()
}

// Range calls fn for each entity in insertion order until fn returns false.
func (t *Table) Range(fn func(id string, e Entity) bool) {
	if t == nil {
		return
	}
	for pair := t.rows.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Entities returns all entities in insertion order.
func (t *Table) Entities() []Entity {
	if t == nil {
		return nil
	}
	list := make([]Entity, 0, t.rows.Len())
	t.Range(func(_ string, e Entity) bool {
		list = append(list, e)
		return true
	})
	return list
}

// World is the backing table-of-tables plus any reserved top-level values
// (such as the current-time keys). It is not safe for concurrent use; the
// calling harness guarantees one in-flight operation per world, and the
// store package provides session-level synchronization where needed.
type World struct {
	tables *orderedmap.OrderedMap[string, *Table]
	extra  Entity
}

func New() *World {
	return &World{
		tables: orderedmap.New[string, *Table](),
		extra:  Entity{},
	}
}

// Table returns the named table, or nil when the world has no such table.
func (w *World) Table(name string) *Table {
	t, _ := w.tables.Get(name)
	return t
}

// EnsureTable returns the named table, creating it when absent.
func (w *World) EnsureTable(name string) *Table {
	if t, ok := w.tables.Get(name); ok {
		return t
	}
	t := NewTable()
	w.tables.Set(name, t)
	return t
}

// TableNames returns table names in insertion order.
func (w *World) TableNames() []string {
	names := make([]string, 0, w.tables.Len())
	for pair := w.tables.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Get looks up a single entity.
func (w *World) Get(table, id string) (Entity, bool) {
	return w.Table(table).Get(id)
}

// Value returns a reserved top-level value that is not an entity table.
func (w *World) Value(key string) (any, bool) {
	v, ok := w.extra[key]
	return v, ok
}

// SetValue sets a reserved top-level value.
func (w *World) SetValue(key string, v any) {
	w.extra[key] = v
}

// ValueKeys returns the reserved top-level keys, sorted.
func (w *World) ValueKeys() []string {
	keys := make([]string, 0, len(w.extra))
	for k := range w.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
