package worldtools

import (
	"context"

	"github.com/corecraft/worldkit/query"
	"github.com/corecraft/worldkit/tools"
)

type QueryByCriteriaInput struct {
	EntityType string         `json:"entity_type" jsonschema:"description=Type of entity to query."`
	Filters    map[string]any `json:"filters,omitempty" jsonschema:"description=Filter criteria as field-value pairs; supports operator objects and lists."`
	Limit      int            `json:"limit,omitempty" jsonschema:"description=Maximum number of results to return."`
}

func NewQueryByCriteria(src Source) (tools.ITool, error) {
	return tools.NewFunc("query_by_criteria",
		"Flexible query tool to search any entity type with complex filters. Supports exact match, ranges ($gte, $lte, $gt, $lt), inequality ($ne), inclusion ($in), and text search ($contains).",
		func(ctx context.Context, in *QueryByCriteriaInput) (*query.Results, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.ByCriteria(w, in.EntityType, in.Filters, in.Limit)
		})
}

type AggregateByFieldInput struct {
	EntityType   string `json:"entity_type" jsonschema:"description=Type of entity."`
	GroupByField string `json:"group_by_field" jsonschema:"description=Field name to group by."`
	CountField   string `json:"count_field,omitempty" jsonschema:"description=Optional numeric field to sum and average."`
}

func NewAggregateByField(src Source) (tools.ITool, error) {
	return tools.NewFunc("aggregate_by_field",
		"Group entities by a field value and count them. Optionally sum/average/min/max another numeric field.",
		func(ctx context.Context, in *AggregateByFieldInput) (*query.Aggregation, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.Aggregate(w, in.EntityType, in.GroupByField, in.CountField)
		})
}

type FilterByDateRangeInput struct {
	EntityType string `json:"entity_type" jsonschema:"description=Type of entity."`
	DateField  string `json:"date_field" jsonschema:"description=Date field to filter on such as createdAt or resolvedAt."`
	StartDate  string `json:"start_date,omitempty" jsonschema:"description=Start date in ISO 8601 format; inclusive."`
	EndDate    string `json:"end_date,omitempty" jsonschema:"description=End date in ISO 8601 format; inclusive."`
}

func NewFilterByDateRange(src Source) (tools.ITool, error) {
	return tools.NewFunc("filter_by_date_range",
		"Filter entities by date range on any date field (createdAt, updatedAt, resolvedAt, etc.).",
		func(ctx context.Context, in *FilterByDateRangeInput) (*query.DateRangeResults, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.ByDateRange(w, in.EntityType, in.DateField, in.StartDate, in.EndDate)
		})
}

type LookupByReferenceInput struct {
	Reference string `json:"reference" jsonschema:"description=Reference identifier to search for such as an email or phone number or order number or name or ID."`
}

func NewLookupByReference(src Source) (tools.ITool, error) {
	return tools.NewFunc("lookup_by_reference",
		"Search across multiple entity types using a reference identifier (email, phone, order number, name, ID, etc.).",
		func(ctx context.Context, in *LookupByReferenceInput) (*query.ReferenceResult, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.ByReference(w, in.Reference), nil
		})
}

type GetEntitySchemaInput struct {
	EntityType string `json:"entity_type" jsonschema:"description=Type of entity to inspect."`
}

func NewGetEntitySchema(src Source) (tools.ITool, error) {
	return tools.NewFunc("get_entity_schema",
		"Get the schema (all field names and types) for a given entity type by examining existing entities. Returns all fields that exist across entities of that type, categorized as system fields (id, type), timestamps (*At), references (*Id), and data fields. Use this tool before update_entity_field to discover valid field names. Field names are in camelCase format.",
		func(ctx context.Context, in *GetEntitySchemaInput) (*query.EntitySchema, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.Schema(w, in.EntityType)
		})
}

type SearchByFieldValueInput struct {
	EntityType string `json:"entity_type" jsonschema:"description=Type of entity."`
	FieldName  string `json:"field_name" jsonschema:"description=Name of the field to search; camelCase."`
	FieldValue any    `json:"field_value" jsonschema:"description=Value to match."`
}

func NewSearchByFieldValue(src Source) (tools.ITool, error) {
	return tools.NewFunc("search_by_field_value",
		"Generic search: find all entities of a type where a specific field equals a value. Case-insensitive for strings. Use camelCase for field names (e.g., 'customerId' not 'customer_id'). Use get_entity_schema to discover valid field names.",
		func(ctx context.Context, in *SearchByFieldValueInput) (*query.FieldValueResult, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.ByFieldValue(w, in.EntityType, in.FieldName, in.FieldValue)
		})
}

type BatchEntityLookupInput struct {
	EntityType string   `json:"entity_type" jsonschema:"description=Type of entity."`
	EntityIDs  []string `json:"entity_ids" jsonschema:"description=List of entity IDs to look up."`
}

func NewBatchEntityLookup(src Source) (tools.ITool, error) {
	return tools.NewFunc("batch_entity_lookup",
		"Look up multiple entities of the same type in one call. More efficient than individual lookups.",
		func(ctx context.Context, in *BatchEntityLookupInput) (*query.BatchResult, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.BatchLookup(w, in.EntityType, in.EntityIDs)
		})
}

type NeedingAttentionInput struct{}

func NewGetEntitiesNeedingAttention(src Source) (tools.ITool, error) {
	return tools.NewFunc("get_entities_needing_attention",
		"Get all entities requiring attention: open/urgent tickets, pending refunds, failed payments, pending escalations, cancelled orders.",
		func(ctx context.Context, _ *NeedingAttentionInput) (*query.AttentionReport, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.NeedingAttention(w), nil
		})
}

type ListEntitiesByStatusInput struct {
	EntityType string `json:"entity_type" jsonschema:"description=Type of entity: order or ticket or payment or shipment or refund or escalation."`
}

func NewListEntitiesByStatus(src Source) (tools.ITool, error) {
	return tools.NewFunc("list_entities_by_status",
		"Get all entities of a type (order, ticket, payment, shipment, refund, escalation) grouped by their status field.",
		func(ctx context.Context, in *ListEntitiesByStatusInput) (*query.StatusGroups, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.ByStatus(w, in.EntityType)
		})
}

type GetEntityFieldInput struct {
	EntityType string   `json:"entity_type" jsonschema:"description=Type of entity."`
	EntityID   string   `json:"entity_id" jsonschema:"description=ID of the entity."`
	Fields     []string `json:"fields,omitempty" jsonschema:"description=List of field names to retrieve; omit for all fields."`
}

func NewGetEntityField(src Source) (tools.ITool, error) {
	return tools.NewFunc("get_entity_field",
		"Get specific field(s) from any entity type. Returns just the requested field values. If no fields specified, returns entire entity.",
		func(ctx context.Context, in *GetEntityFieldInput) (*query.FieldProjection, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.EntityField(w, in.EntityType, in.EntityID, in.Fields)
		})
}

type VerifyCustomerInput struct {
	CustomerID string  `json:"customer_id" jsonschema:"description=The customer ID to verify."`
	Email      *string `json:"email,omitempty" jsonschema:"description=Customer's email address."`
	Phone      *string `json:"phone,omitempty" jsonschema:"description=Customer's phone number in any common format."`
	ZipCode    *string `json:"zip_code,omitempty" jsonschema:"description=Customer's zip or postal code."`
}

func NewVerifyCustomer(src Source) (tools.ITool, error) {
	return tools.NewFunc("verify_customer",
		"Verify customer identity by checking provided information against customer records. Requires at least 2 of: email, phone, zip_code. Returns validated=True if at least 2 identifiers match. Returns validated=False if ANY provided information is incorrect. Zip codes are checked against all customer addresses.",
		func(ctx context.Context, in *VerifyCustomerInput) (*query.Verification, error) {
			w, err := src.World(ctx)
			if err != nil {
				return nil, err
			}
			return query.VerifyCustomer(w, in.CustomerID, in.Email, in.Phone, in.ZipCode)
		})
}
