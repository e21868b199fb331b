package worldtools

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/corecraft/worldkit/timeutil"
	"github.com/corecraft/worldkit/tools"
)

type GetTimeDiffInput struct {
	StartDate string `json:"start_date" jsonschema:"description=Start date in ISO 8601 format."`
	EndDate   string `json:"end_date" jsonschema:"description=End date in ISO 8601 format."`
}

type TimeDiffResult struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Difference struct {
		Days   float64 `json:"days"`
		Months float64 `json:"months"`
	} `json:"difference"`
	IsNegative bool `json:"is_negative"`
}

func NewGetTimeDiff() (tools.ITool, error) {
	return tools.NewFunc("get_time_diff",
		"Calculate the time difference between two dates, returning the result in both days and months as decimal values. For example, a difference might be 54.5 days or 1.79 months. Supports ISO 8601 date formats.",
		func(_ context.Context, in *GetTimeDiffInput) (*TimeDiffResult, error) {
			start, err := timeutil.Parse(in.StartDate)
			if err != nil {
				return nil, errors.Wrap(err, "invalid date format, expected ISO format (e.g. '2025-01-15T12:00:00Z')")
			}
			end, err := timeutil.Parse(in.EndDate)
			if err != nil {
				return nil, errors.Wrap(err, "invalid date format, expected ISO format (e.g. '2025-01-15T12:00:00Z')")
			}
			diff := timeutil.Between(start, end)
			if diff.IsNegative {
				return nil, errors.New("start_date is after end_date")
			}
			res := &TimeDiffResult{
				StartDate:  in.StartDate,
				EndDate:    in.EndDate,
				IsNegative: diff.IsNegative,
			}
			res.Difference.Days = diff.Days
			res.Difference.Months = diff.Months
			return res, nil
		})
}
