package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Placeholder shown in place of a value that is missing from the dataset.
const Unavailable = "N/A"

// A value from the dataset that may be missing. A missing value is distinct from zero.
type Nullable[T int64 | float64] struct {
	Value   T
	Present bool
}

func Present[T int64 | float64](value T) Nullable[T] {
	return Nullable[T]{Value: value, Present: true}
}

// For summing: a missing value counts as zero.
func (nullable Nullable[T]) OrZero() T {
	if !nullable.Present {
		return 0
	}
	return nullable.Value
}

func (nullable Nullable[T]) Float() Nullable[float64] {
	return Nullable[float64]{Value: float64(nullable.Value), Present: nullable.Present}
}

// Formats present values with thousands separators (e.g. "1,234,567"), and missing values as
// [Unavailable].
func (nullable Nullable[T]) String() string {
	if !nullable.Present {
		return Unavailable
	}

	switch value := any(nullable.Value).(type) {
	case int64:
		return humanize.Comma(value)
	case float64:
		return humanize.Commaf(value)
	default:
		return Unavailable
	}
}

// Missing values are encoded as null.
func (nullable Nullable[T]) MarshalJSON() ([]byte, error) {
	if !nullable.Present {
		return []byte("null"), nil
	}
	return json.Marshal(nullable.Value)
}

func parseNullableInt(field string) (Nullable[int64], error) {
	float, err := parseNullableFloat(field)
	if err != nil || !float.Present {
		return Nullable[int64]{}, err
	}
	// Integer columns are encoded as floats in the source dataset (e.g. "5342.0").
	value := math.Trunc(float.Value)
	// float64(math.MaxInt64) rounds up to 2^63, which is itself out of range.
	if value < math.MinInt64 || value >= math.MaxInt64 {
		return Nullable[int64]{}, fmt.Errorf("value %s is out of range for an integer column", field)
	}
	return Present(int64(value)), nil
}

func parseNullableFloat(field string) (Nullable[float64], error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return Nullable[float64]{}, nil
	}

	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return Nullable[float64]{}, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Nullable[float64]{}, nil
	}

	return Present(value), nil
}
