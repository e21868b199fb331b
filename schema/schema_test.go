package schema_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corecraft/worldkit/jsonutil"
	"github.com/corecraft/worldkit/schema"
)

type ticketQuery struct {
	TicketID string `json:"ticket_id" jsonschema:"title=Ticket ID,description=The ticket identifier"`
	Limit    int    `json:"limit,omitempty" jsonschema:"title=Limit,description=Maximum results to return"`
}

type buildRequest struct {
	BuildID    string      `json:"build_id" jsonschema:"description=The build to change"`
	Components []component `json:"components,omitempty" jsonschema:"description=Components to install"`
}

type component struct {
	ProductID string `json:"product_id" jsonschema:"description=Catalog id of the component"`
	Category  string `json:"category" jsonschema:"description=Component category,enum=cpu,enum=gpu,enum=memory"`
}

func TestSchema(t *testing.T) {
	t.Parallel()

	t.Run("Flat", func(t *testing.T) {
		t.Parallel()
		s, err := schema.New(reflect.TypeOf(ticketQuery{}))
		require.NoError(t, err)

		exp := `{
	"properties": {
		"ticket_id": {
			"type": "string",
			"title": "Ticket ID",
			"description": "The ticket identifier"
		},
		"limit": {
			"type": "integer",
			"title": "Limit",
			"description": "Maximum results to return"
		}
	},
	"type": "object",
	"required": [
		"ticket_id"
	]
}`
		assert.Equal(t, exp, s.String())
		assert.Equal(t, exp, jsonutil.ToJSONIndent(s.Parameters))
	})

	t.Run("Nested", func(t *testing.T) {
		t.Parallel()
		s, err := schema.New(reflect.TypeOf(buildRequest{}))
		require.NoError(t, err)

		js := s.String()
		assert.Contains(t, js, `"product_id"`)
		assert.Contains(t, js, `"enum": [`)
		assert.NotContains(t, js, "$ref")
		assert.NotContains(t, js, "$defs")
	})

	t.Run("Cached", func(t *testing.T) {
		t.Parallel()
		a, err := schema.New(reflect.TypeOf(ticketQuery{}))
		require.NoError(t, err)
		b, err := schema.New(reflect.TypeOf(ticketQuery{}))
		require.NoError(t, err)
		assert.Same(t, a, b)
	})
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	js, err := schema.FromAny(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"entity_type": map[string]any{"type": "string"},
		},
		"required": []string{"entity_type"},
	})
	require.NoError(t, err)
	assert.Equal(t, "object", js.Type)
	require.NotNil(t, js.Properties)
	_, ok := js.Properties.Get("entity_type")
	assert.True(t, ok)
}
