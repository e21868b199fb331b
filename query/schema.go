package query

import (
	"fmt"
	"strings"

	"github.com/corecraft/worldkit/catalog"
	"github.com/corecraft/worldkit/world"
)

// FieldGroups categorizes field names heuristically: id/type are system
// fields, names ending in "At" are timestamps, names ending in "Id" are
// references, the rest is data.
type FieldGroups struct {
	All        []string `json:"all"`
	System     []string `json:"system"`
	Timestamps []string `json:"timestamps"`
	References []string `json:"references"`
	Data       []string `json:"data"`
}

// EntitySchema is the inferred schema of one entity type.
type EntitySchema struct {
	EntityType    string            `json:"entity_type"`
	DataKey       string            `json:"data_key"`
	TotalEntities int               `json:"total_entities"`
	Fields        FieldGroups       `json:"fields"`
	FieldTypes    map[string]string `json:"field_types"`
	FieldCount    int               `json:"field_count"`
}

// Schema infers the schema of an entity type from its records: the sorted
// union of observed field names, categorized, plus each field's type as seen
// on the first record that carries it.
func Schema(w *world.World, entityType string) (*EntitySchema, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	all := catalog.KnownFields(w, canonical)
	sc := &EntitySchema{
		EntityType:    entityType,
		DataKey:       canonical,
		TotalEntities: w.Table(canonical).Len(),
		Fields: FieldGroups{
			All:        all,
			System:     []string{},
			Timestamps: []string{},
			References: []string{},
			Data:       []string{},
		},
		FieldTypes: map[string]string{},
		FieldCount: len(all),
	}
	for _, f := range all {
		switch {
		case f == "id" || f == "type":
			sc.Fields.System = append(sc.Fields.System, f)
		case strings.HasSuffix(f, "At"):
			sc.Fields.Timestamps = append(sc.Fields.Timestamps, f)
		case strings.HasSuffix(f, "Id") && f != "id":
			sc.Fields.References = append(sc.Fields.References, f)
		default:
			sc.Fields.Data = append(sc.Fields.Data, f)
		}
		sc.FieldTypes[f] = firstFieldKind(w.Table(canonical), f)
	}
	return sc, nil
}

// firstFieldKind reports the type of the field's value on the first record
// that has it, or "null" when no record does.
func firstFieldKind(t *world.Table, field string) string {
	kind := "null"
	t.Range(func(_ string, e world.Entity) bool {
		if v, ok := e[field]; ok {
			kind = catalog.FieldKind(v)
			return false
		}
		return true
	})
	return kind
}

// FieldNameError reports a field outside the entity type's known field set.
type FieldNameError struct {
	Field       string
	EntityType  string
	ValidFields []string
}

func (e *FieldNameError) Error() string {
	return fmt.Sprintf("invalid field name '%s' for entity type '%s'", e.Field, e.EntityType)
}

func (e *FieldNameError) ErrorResult() map[string]any {
	return map[string]any{
		"error":        e.Error(),
		"field_name":   e.Field,
		"entity_type":  e.EntityType,
		"valid_fields": e.ValidFields,
		"suggestion": fmt.Sprintf(
			"Use the get_entity_schema tool with entity_type='%s' to see all valid fields and their types.",
			e.EntityType),
	}
}

// FieldValueResult echoes the search terms alongside the matches.
type FieldValueResult struct {
	EntityType string         `json:"entity_type"`
	FieldName  string         `json:"field_name"`
	FieldValue any            `json:"field_value"`
	Results    []world.Entity `json:"results"`
	Count      int            `json:"count"`
}

// ByFieldValue finds all entities where the named field equals the given
// value (case-insensitive for strings). Unlike ByCriteria the field name is
// validated against the type's known field set; field validation is skipped
// when the table is empty, since there is nothing to infer the set from.
func ByFieldValue(w *world.World, entityType, fieldName string, fieldValue any) (*FieldValueResult, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	if valid := catalog.KnownFields(w, canonical); valid != nil && !containsString(valid, fieldName) {
		return nil, &FieldNameError{Field: fieldName, EntityType: entityType, ValidFields: valid}
	}
	res := &FieldValueResult{
		EntityType: entityType,
		FieldName:  fieldName,
		FieldValue: fieldValue,
		Results:    []world.Entity{},
	}
	w.Table(canonical).Range(func(_ string, e world.Entity) bool {
		if equalValues(e[fieldName], fieldValue) {
			res.Results = append(res.Results, e)
		}
		return true
	})
	res.Count = len(res.Results)
	return res, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
