package worldtools

import (
	"github.com/cockroachdb/errors"

	"github.com/corecraft/worldkit/tools"
)

// NewRegistry builds a registry with every world tool bound to the given
// source, in a stable order suitable for prompt assembly.
func NewRegistry(src Source) (*tools.Registry, error) {
	constructors := []func(Source) (tools.ITool, error){
		NewQueryByCriteria,
		NewAggregateByField,
		NewFilterByDateRange,
		NewLookupByReference,
		NewGetEntitySchema,
		NewSearchByFieldValue,
		NewBatchEntityLookup,
		NewGetEntitiesNeedingAttention,
		NewListEntitiesByStatus,
		NewGetEntityField,
		NewVerifyCustomer,
		NewUpdateEntityField,
		NewBulkStatusUpdate,
		NewEscalateTicket,
		NewResolveAndClose,
		NewProcessCustomerIssue,
		NewModifyBuild,
		NewCalculateOrderTotals,
	}

	r := tools.NewRegistry()
	for _, build := range constructors {
		t, err := build(src)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build tool")
		}
		r.Register(t)
	}

	timeDiff, err := NewGetTimeDiff()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build tool")
	}
	r.Register(timeDiff)

	return r, nil
}
