package analysis

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"hermannm.dev/coviddash/dataset"
	"hermannm.dev/devlog"
)

// Sets up logger before running tests.
func TestMain(m *testing.M) {
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))

	os.Exit(m.Run())
}

// Roughly the shape of the full dataset: a few hundred locations with daily rows over some years.
func newBenchmarkObservations(countries int, days int) []dataset.Observation {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	observations := make([]dataset.Observation, 0, countries*days)

	for country := 0; country < countries; country++ {
		location := fmt.Sprintf("Country %03d", country)
		for day := 0; day < days; day++ {
			observations = append(observations, dataset.Observation{
				Location:   location,
				Date:       start.AddDate(0, 0, day),
				HasDate:    true,
				TotalCases: dataset.Present(int64(day * 10)),
				NewCases:   dataset.Present(float64(day % 100)),
			})
		}
	}

	return observations
}

func BenchmarkFilter(b *testing.B) {
	observations := newBenchmarkObservations(250, 1200)
	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view := Filter(observations, "Country 125", start, end)
		if len(view) == 0 {
			b.Fatal("expected non-empty view")
		}
	}
}

func BenchmarkMonthlyTotals(b *testing.B) {
	view := newBenchmarkObservations(1, 1200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := MonthlyTotals(view, dataset.FieldNewCases); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLatestMetrics(b *testing.B) {
	view := newBenchmarkObservations(1, 1200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LatestMetrics(view); err != nil {
			b.Fatal(err)
		}
	}
}
