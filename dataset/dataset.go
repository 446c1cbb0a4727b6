package dataset

import (
	"slices"
	"strings"
	"time"
)

// Layout of the date column in the source dataset.
const DateLayout = "2006-01-02"

// One (location, date) row of the dataset.
type Observation struct {
	Location string
	// Only meaningful if HasDate is true. Rows with a blank date are kept, but never match a date
	// range.
	Date    time.Time
	HasDate bool

	Population        Nullable[int64]
	TotalCases        Nullable[int64]
	TotalDeaths       Nullable[int64]
	TotalVaccinations Nullable[int64]
	NewCases          Nullable[float64]
	NewDeaths         Nullable[float64]
	NewVaccinations   Nullable[float64]

	// All fields of the row as they appeared in the source, in the order of Dataset.Columns.
	// Must not be modified.
	Record []string
}

func (observation Observation) Value(field Field) (value Nullable[float64], ok bool) {
	switch field {
	case FieldPopulation:
		return observation.Population.Float(), true
	case FieldTotalCases:
		return observation.TotalCases.Float(), true
	case FieldTotalDeaths:
		return observation.TotalDeaths.Float(), true
	case FieldTotalVaccinations:
		return observation.TotalVaccinations.Float(), true
	case FieldNewCases:
		return observation.NewCases, true
	case FieldNewDeaths:
		return observation.NewDeaths, true
	case FieldNewVaccinations:
		return observation.NewVaccinations, true
	default:
		return Nullable[float64]{}, false
	}
}

// Immutable after loading.
type Dataset struct {
	Source       string
	Columns      []string
	Observations []Observation
	LoadedAt     time.Time

	countries []string
	minDate   time.Time
	maxDate   time.Time
}

func newDataset(source string, columns []string, observations []Observation) *Dataset {
	dataset := &Dataset{
		Source:       source,
		Columns:      columns,
		Observations: observations,
		LoadedAt:     time.Now(),
	}

	seen := make(map[string]struct{})
	for _, observation := range observations {
		if strings.TrimSpace(observation.Location) != "" {
			if _, alreadySeen := seen[observation.Location]; !alreadySeen {
				seen[observation.Location] = struct{}{}
				dataset.countries = append(dataset.countries, observation.Location)
			}
		}

		if observation.HasDate {
			if dataset.minDate.IsZero() || observation.Date.Before(dataset.minDate) {
				dataset.minDate = observation.Date
			}
			if dataset.maxDate.IsZero() || observation.Date.After(dataset.maxDate) {
				dataset.maxDate = observation.Date
			}
		}
	}
	slices.Sort(dataset.countries)

	return dataset
}

// Sorted distinct non-blank locations.
func (dataset *Dataset) Countries() []string {
	return slices.Clone(dataset.countries)
}

func (dataset *Dataset) HasCountry(country string) bool {
	_, found := slices.BinarySearch(dataset.countries, country)
	return found
}

// Earliest and latest defined dates in the dataset. ok is false if no row has a date.
func (dataset *Dataset) DateRange() (minDate time.Time, maxDate time.Time, ok bool) {
	if dataset.minDate.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return dataset.minDate, dataset.maxDate, true
}

func (dataset *Dataset) Len() int {
	return len(dataset.Observations)
}
