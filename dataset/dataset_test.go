package dataset

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestData(t *testing.T) *Dataset {
	t.Helper()

	file, err := os.Open("testdata/sample.csv")
	require.NoError(t, err)
	defer file.Close()

	dataset, err := Parse("testdata/sample.csv", file)
	require.NoError(t, err)
	return dataset
}

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(DateLayout, value)
	require.NoError(t, err)
	return parsed
}

func TestParse(t *testing.T) {
	dataset := parseTestData(t)

	require.Equal(t, 6, dataset.Len())
	assert.Equal(t, "testdata/sample.csv", dataset.Source)
	assert.Equal(t, "iso_code", dataset.Columns[0])
	assert.Len(t, dataset.Columns, 11)

	first := dataset.Observations[0]
	assert.Equal(t, "Norway", first.Location)
	assert.True(t, first.HasDate)
	assert.Equal(t, date(t, "2021-01-30"), first.Date)
	assert.Equal(t, Present[int64](61000), first.TotalCases)
	assert.Equal(t, Present[int64](5403021), first.Population)
	assert.Equal(t, Present(250.0), first.NewCases)
	assert.False(t, first.TotalVaccinations.Present)
	assert.Len(t, first.Record, 11)
	assert.Equal(t, "61000.0", first.Record[4])
}

func TestParseTreatsNaNAsUnavailable(t *testing.T) {
	dataset := parseTestData(t)

	sweden := dataset.Observations[3]
	assert.Equal(t, "Sweden", sweden.Location)
	assert.False(t, sweden.NewDeaths.Present)
	assert.Equal(t, Present(0.0), sweden.NewCases, "zero must stay a present value")
}

func TestParseKeepsRowsWithoutDate(t *testing.T) {
	dataset := parseTestData(t)

	world := dataset.Observations[5]
	assert.Equal(t, "World", world.Location)
	assert.False(t, world.HasDate)
	assert.True(t, world.Date.IsZero())
}

func TestParseRejectsMissingRequiredColumns(t *testing.T) {
	_, err := Parse("inline", strings.NewReader("iso_code,total_cases\nNOR,1.0\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "column 'location' missing")
	assert.ErrorContains(t, err, "column 'date' missing")
}

func TestParseRejectsInvalidDate(t *testing.T) {
	_, err := Parse("inline", strings.NewReader("location,date\nNorway,31.01.2021\n"))
	assert.ErrorContains(t, err, "row 2")
}

func TestParseRejectsInvalidNumber(t *testing.T) {
	_, err := Parse("inline", strings.NewReader("location,date,new_cases\nNorway,2021-01-31,many\n"))
	assert.ErrorContains(t, err, "new_cases")
}

func TestParseRejectsIntegerOutOfRange(t *testing.T) {
	for _, value := range []string{"1e30", "-1e30", "9223372036854775808"} {
		_, err := Parse(
			"inline",
			strings.NewReader("location,date,total_cases\nNorway,2021-01-01,"+value+"\n"),
		)
		assert.ErrorContains(t, err, "total_cases", value)
		assert.ErrorContains(t, err, "out of range", value)
	}
}

func TestParseRejectsShortRow(t *testing.T) {
	_, err := Parse(
		"inline",
		strings.NewReader("location,date,new_cases\nNorway,2021-01-01,5\nNorway,2021-01-02\n"),
	)
	assert.ErrorContains(t, err, "row 3 has 2 fields, expected 3")
}

func TestParseLargeIntegerWithinRange(t *testing.T) {
	dataset, err := Parse(
		"inline",
		strings.NewReader("location,date,population\nWorld,2021-01-01,7874965732.0\n"),
	)
	require.NoError(t, err)

	population := dataset.Observations[0].Population
	require.True(t, population.Present)
	assert.Equal(t, int64(7874965732), population.Value)
	assert.Equal(t, "7,874,965,732", population.String())
}

func TestParseKeepsLocationAsWritten(t *testing.T) {
	dataset, err := Parse(
		"inline",
		strings.NewReader("location,date\n Norway ,2021-01-01\nNorway,2021-01-02\n   ,2021-01-03\n"),
	)
	require.NoError(t, err)

	assert.Equal(t, " Norway ", dataset.Observations[0].Location)
	assert.Equal(t, dataset.Observations[0].Record[0], dataset.Observations[0].Location)
	assert.Equal(t, []string{" Norway ", "Norway"}, dataset.Countries())
	assert.True(t, dataset.HasCountry(" Norway "))
	assert.True(t, dataset.HasCountry("Norway"))
}

func TestParseWithoutNumericColumns(t *testing.T) {
	dataset, err := Parse("inline", strings.NewReader("date,location\n2021-01-31,Norway\n"))
	require.NoError(t, err)

	require.Equal(t, 1, dataset.Len())
	assert.False(t, dataset.Observations[0].TotalCases.Present)
}

func TestCountries(t *testing.T) {
	dataset := parseTestData(t)

	assert.Equal(t, []string{"Norway", "Sweden", "World"}, dataset.Countries())
	assert.True(t, dataset.HasCountry("Sweden"))
	assert.False(t, dataset.HasCountry("sweden"))
	assert.False(t, dataset.HasCountry(""))
}

func TestCountriesReturnsCopy(t *testing.T) {
	dataset := parseTestData(t)

	countries := dataset.Countries()
	countries[0] = "Changed"

	assert.Equal(t, "Norway", dataset.Countries()[0])
}

func TestDateRange(t *testing.T) {
	dataset := parseTestData(t)

	min, max, ok := dataset.DateRange()
	require.True(t, ok)
	assert.Equal(t, date(t, "2021-01-30"), min)
	assert.Equal(t, date(t, "2021-02-01"), max)
}

func TestDateRangeWithoutDates(t *testing.T) {
	dataset, err := Parse("inline", strings.NewReader("location,date\nWorld,\n"))
	require.NoError(t, err)

	_, _, ok := dataset.DateRange()
	assert.False(t, ok)
}

func TestNullableString(t *testing.T) {
	assert.Equal(t, "5,403,021", Present[int64](5403021).String())
	assert.Equal(t, "0", Present[int64](0).String())
	assert.Equal(t, Unavailable, Nullable[int64]{}.String())
	assert.Equal(t, Unavailable, Nullable[float64]{}.String())
}

func TestNullableOrZero(t *testing.T) {
	assert.Equal(t, 0.0, Nullable[float64]{}.OrZero())
	assert.Equal(t, 7.5, Present(7.5).OrZero())
}

func TestParseField(t *testing.T) {
	field, err := ParseField("new_cases")
	require.NoError(t, err)
	assert.Equal(t, FieldNewCases, field)
	assert.Equal(t, "new_cases", field.String())

	_, err = ParseField("iso_code")
	assert.Error(t, err)
}

func TestObservationValue(t *testing.T) {
	observation := Observation{TotalDeaths: Present[int64](12), NewCases: Present(3.0)}

	for _, testCase := range []struct {
		field    Field
		expected Nullable[float64]
	}{
		{FieldTotalDeaths, Present(12.0)},
		{FieldNewCases, Present(3.0)},
		{FieldPopulation, Nullable[float64]{}},
	} {
		value, ok := observation.Value(testCase.field)
		assert.True(t, ok, testCase.field.String())
		assert.Equal(t, testCase.expected, value, testCase.field.String())
	}

	_, ok := observation.Value(Field(0))
	assert.False(t, ok)
}
