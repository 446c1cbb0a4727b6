package analysis

import (
	"slices"
	"time"

	"hermannm.dev/coviddash/dataset"
)

// Daily values of some fields over a view, for plotting as lines.
type Trend struct {
	Fields []dataset.Field `json:"fields"`
	Points []TrendPoint    `json:"points"`
}

type TrendPoint struct {
	Date time.Time `json:"date"`
	// In the same order as Trend.Fields. Missing values are kept as unavailable, leaving gaps in
	// the plotted line.
	Values []dataset.Nullable[float64] `json:"values"`
}

// Observations without a date are skipped. Points are sorted by date, keeping view order for equal
// dates.
func NewTrend(view []dataset.Observation, fields ...dataset.Field) Trend {
	trend := Trend{
		Fields: slices.Clone(fields),
		Points: make([]TrendPoint, 0, len(view)),
	}

	for _, observation := range view {
		if !observation.HasDate {
			continue
		}

		point := TrendPoint{
			Date:   observation.Date,
			Values: make([]dataset.Nullable[float64], len(fields)),
		}
		for i, field := range fields {
			point.Values[i], _ = observation.Value(field)
		}

		trend.Points = append(trend.Points, point)
	}

	slices.SortStableFunc(trend.Points, func(point1 TrendPoint, point2 TrendPoint) int {
		return point1.Date.Compare(point2.Date)
	})

	return trend
}
