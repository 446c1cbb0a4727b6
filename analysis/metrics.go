package analysis

import (
	"errors"
	"time"

	"hermannm.dev/coviddash/dataset"
)

// Returned when asking for metrics of a filtered view with no observations.
var ErrEmptyView = errors.New("no data for selection")

// Headline figures from the most recent observation in a view. Missing values stay unavailable
// rather than defaulting to zero.
type Metrics struct {
	Date              time.Time               `json:"date"`
	Population        dataset.Nullable[int64] `json:"population"`
	TotalCases        dataset.Nullable[int64] `json:"totalCases"`
	TotalDeaths       dataset.Nullable[int64] `json:"totalDeaths"`
	TotalVaccinations dataset.Nullable[int64] `json:"totalVaccinations"`
}

// Extracts metrics from the observation with the latest date in the view. If several observations
// share the latest date, the first one in view order is used.
func LatestMetrics(view []dataset.Observation) (Metrics, error) {
	latestIndex := -1
	for i, observation := range view {
		if !observation.HasDate {
			continue
		}
		if latestIndex == -1 || observation.Date.After(view[latestIndex].Date) {
			latestIndex = i
		}
	}

	if latestIndex == -1 {
		return Metrics{}, ErrEmptyView
	}

	latest := view[latestIndex]
	return Metrics{
		Date:              latest.Date,
		Population:        latest.Population,
		TotalCases:        latest.TotalCases,
		TotalDeaths:       latest.TotalDeaths,
		TotalVaccinations: latest.TotalVaccinations,
	}, nil
}

// Metric values as display strings, with unavailable values as dataset.Unavailable.
type FormattedMetrics struct {
	Date              string `json:"date"`
	Population        string `json:"population"`
	TotalCases        string `json:"totalCases"`
	TotalDeaths       string `json:"totalDeaths"`
	TotalVaccinations string `json:"totalVaccinations"`
}

func (metrics Metrics) Format() FormattedMetrics {
	return FormattedMetrics{
		Date:              metrics.Date.Format(dataset.DateLayout),
		Population:        metrics.Population.String(),
		TotalCases:        metrics.TotalCases.String(),
		TotalDeaths:       metrics.TotalDeaths.String(),
		TotalVaccinations: metrics.TotalVaccinations.String(),
	}
}
