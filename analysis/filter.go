package analysis

import (
	"time"

	"hermannm.dev/coviddash/dataset"
)

// Returns the observations for the given country (case-sensitive) whose date is within the closed
// interval [start, end], compared by calendar date. An inverted interval gives an empty result.
// Observations without a date never match.
//
// The result is a newly allocated slice, so it never shares its backing array with the input.
func Filter(
	observations []dataset.Observation,
	country string,
	start time.Time,
	end time.Time,
) []dataset.Observation {
	start, end = truncateToDate(start), truncateToDate(end)

	view := make([]dataset.Observation, 0)
	if end.Before(start) {
		return view
	}

	for _, observation := range observations {
		if observation.Location != country || !observation.HasDate {
			continue
		}

		date := truncateToDate(observation.Date)
		if date.Before(start) || date.After(end) {
			continue
		}

		view = append(view, observation)
	}

	return view
}

func truncateToDate(timestamp time.Time) time.Time {
	year, month, day := timestamp.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
