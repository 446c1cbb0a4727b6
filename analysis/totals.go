package analysis

import (
	"fmt"
	"slices"
	"time"

	"hermannm.dev/coviddash/dataset"
)

// Sum of a field over the observations in one calendar period.
type PeriodTotal struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	Total float64   `json:"total"`
}

// Sums the given field per calendar month, ordered chronologically, with labels like "2021-03".
// Unavailable values count as zero here, unlike in LatestMetrics. An empty view gives an empty
// result.
func MonthlyTotals(view []dataset.Observation, field dataset.Field) ([]PeriodTotal, error) {
	return PeriodTotals(view, field, DateIntervalMonth)
}

func PeriodTotals(
	view []dataset.Observation,
	field dataset.Field,
	interval DateInterval,
) ([]PeriodTotal, error) {
	if !field.IsValid() {
		return nil, fmt.Errorf("invalid field %d", field)
	}
	if !interval.IsValid() {
		return nil, fmt.Errorf("invalid date interval %d", interval)
	}

	totals := make([]PeriodTotal, 0)
	indexByStart := make(map[time.Time]int)

	for _, observation := range view {
		if !observation.HasDate {
			continue
		}

		value, _ := observation.Value(field)
		start, label := interval.bucket(observation.Date)

		if index, ok := indexByStart[start]; ok {
			totals[index].Total += value.OrZero()
		} else {
			indexByStart[start] = len(totals)
			totals = append(totals, PeriodTotal{Label: label, Start: start, Total: value.OrZero()})
		}
	}

	slices.SortFunc(totals, func(total1 PeriodTotal, total2 PeriodTotal) int {
		return total1.Start.Compare(total2.Start)
	})

	return totals, nil
}
