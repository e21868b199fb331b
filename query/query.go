package query

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/corecraft/worldkit/catalog"
	"github.com/corecraft/worldkit/timeutil"
	"github.com/corecraft/worldkit/world"
)

// Results is the common shape of list-returning queries.
type Results struct {
	EntityType string         `json:"entity_type,omitempty"`
	Results    []world.Entity `json:"results"`
	Count      int            `json:"count"`
}

// ByCriteria filters a table through the predicate engine. Results keep the
// insertion order of the backing table; limit 0 means unlimited.
func ByCriteria(w *world.World, entityType string, filters map[string]any, limit int) (*Results, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	res := &Results{EntityType: entityType, Results: []world.Entity{}}
	w.Table(canonical).Range(func(_ string, e world.Entity) bool {
		if !Matches(e, filters) {
			return true
		}
		res.Results = append(res.Results, e)
		return limit <= 0 || len(res.Results) < limit
	})
	res.Count = len(res.Results)
	return res, nil
}

// GroupStats holds per-group aggregates. The numeric figures are present
// only when the group had at least one numeric-coercible value of the
// requested count field; non-numeric values still count toward Count.
type GroupStats struct {
	Count   int      `json:"count"`
	Sum     *float64 `json:"sum,omitempty"`
	Average *float64 `json:"average,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// Aggregation is the result of a group-by query.
type Aggregation struct {
	EntityType    string                 `json:"entity_type"`
	GroupedBy     string                 `json:"grouped_by"`
	Aggregations  map[string]*GroupStats `json:"aggregations"`
	TotalEntities int                    `json:"total_entities"`
	UniqueGroups  int                    `json:"unique_groups"`
}

// Aggregate groups a table by the string form of groupBy's value, using the
// literal "null" for entities without the field. When countField is given,
// sum/average/min/max are computed over its numeric-coercible values.
func Aggregate(w *world.World, entityType, groupBy, countField string) (*Aggregation, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	agg := &Aggregation{
		EntityType:   entityType,
		GroupedBy:    groupBy,
		Aggregations: map[string]*GroupStats{},
	}
	type bucket struct {
		count  int
		values []float64
	}
	buckets := map[string]*bucket{}
	w.Table(canonical).Range(func(_ string, e world.Entity) bool {
		key := groupKey(e[groupBy])
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.count++
		if countField != "" {
			if v, ok := coerceFloat(e[countField]); ok {
				b.values = append(b.values, v)
			}
		}
		return true
	})
	for key, b := range buckets {
		stats := &GroupStats{Count: b.count}
		if len(b.values) > 0 {
			sum, min, max := 0.0, b.values[0], b.values[0]
			for _, v := range b.values {
				sum += v
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			avg := sum / float64(len(b.values))
			stats.Sum, stats.Average, stats.Min, stats.Max = &sum, &avg, &min, &max
		}
		agg.Aggregations[key] = stats
		agg.TotalEntities += b.count
	}
	agg.UniqueGroups = len(agg.Aggregations)
	return agg, nil
}

func groupKey(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	default:
		if n, ok := asNumber(v); ok {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		return "null"
	}
}

// coerceFloat is the lenient numeric conversion used by aggregation: it also
// accepts numeric strings, matching how sums were historically computed.
func coerceFloat(v any) (float64, bool) {
	if n, ok := asNumber(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// DateRangeResults echoes the requested range alongside the matches.
type DateRangeResults struct {
	EntityType string         `json:"entity_type"`
	DateField  string         `json:"date_field"`
	StartDate  string         `json:"start_date,omitempty"`
	EndDate    string         `json:"end_date,omitempty"`
	Results    []world.Entity `json:"results"`
	Count      int            `json:"count"`
}

// ByDateRange filters a table on a named timestamp field. Bounds are
// inclusive and both optional; entities with missing, non-string or
// unparseable values are silently excluded.
func ByDateRange(w *world.World, entityType, dateField, startDate, endDate string) (*DateRangeResults, error) {
	canonical, err := catalog.Resolve(entityType)
	if err != nil {
		return nil, err
	}
	var start, end time.Time
	hasStart, hasEnd := startDate != "", endDate != ""
	if hasStart {
		if start, err = timeutil.Parse(startDate); err != nil {
			return nil, errors.Errorf("invalid start_date format: %s", startDate)
		}
	}
	if hasEnd {
		if end, err = timeutil.Parse(endDate); err != nil {
			return nil, errors.Errorf("invalid end_date format: %s", endDate)
		}
	}
	res := &DateRangeResults{
		EntityType: entityType,
		DateField:  dateField,
		StartDate:  startDate,
		EndDate:    endDate,
		Results:    []world.Entity{},
	}
	w.Table(canonical).Range(func(_ string, e world.Entity) bool {
		s, ok := e[dateField].(string)
		if !ok || s == "" {
			return true
		}
		ts, perr := timeutil.Parse(s)
		if perr != nil {
			return true
		}
		if hasStart && ts.Before(start) {
			return true
		}
		if hasEnd && ts.After(end) {
			return true
		}
		res.Results = append(res.Results, e)
		return true
	})
	res.Count = len(res.Results)
	return res, nil
}
