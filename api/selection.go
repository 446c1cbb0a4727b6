package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hermannm.dev/coviddash/analysis"
	"hermannm.dev/coviddash/dataset"
	"hermannm.dev/wrap"
)

type selectionParams struct {
	Country string `validate:"required"`
	Start   string `validate:"omitempty,datetime=2006-01-02"`
	End     string `validate:"omitempty,datetime=2006-01-02"`
}

// A country and date range chosen by the user, along with the matching observations.
type countrySelection struct {
	Country string
	Start   time.Time
	End     time.Time

	dataset *dataset.Dataset
	view    []dataset.Observation
}

// Expects:
//   - query parameter 'country': a location in the dataset
//   - query parameters 'start'/'end' (optional): dates on the form YYYY-MM-DD, defaulting to the
//     earliest/latest date in the dataset
func (api DashboardAPI) getSelection(req *http.Request, data *dataset.Dataset) (countrySelection, error) {
	query := req.URL.Query()
	params := selectionParams{
		Country: query.Get("country"),
		Start:   query.Get("start"),
		End:     query.Get("end"),
	}

	if err := api.validate.Struct(params); err != nil {
		return countrySelection{}, wrap.Error(err, "invalid selection parameters")
	}

	if !data.HasCountry(params.Country) {
		return countrySelection{}, fmt.Errorf("unknown country '%s'", params.Country)
	}

	minDate, maxDate, ok := data.DateRange()
	if !ok {
		return countrySelection{}, errors.New("dataset has no dated observations")
	}

	start, err := parseDateOrDefault(params.Start, minDate)
	if err != nil {
		return countrySelection{}, wrap.Error(err, "invalid 'start' date")
	}
	end, err := parseDateOrDefault(params.End, maxDate)
	if err != nil {
		return countrySelection{}, wrap.Error(err, "invalid 'end' date")
	}

	return countrySelection{
		Country: params.Country,
		Start:   start,
		End:     end,
		dataset: data,
		view:    analysis.Filter(data.Observations, params.Country, start, end),
	}, nil
}

func (selection countrySelection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Country string `json:"country"`
		Start   string `json:"start"`
		End     string `json:"end"`
	}{
		Country: selection.Country,
		Start:   selection.Start.Format(dataset.DateLayout),
		End:     selection.End.Format(dataset.DateLayout),
	})
}

func parseDateOrDefault(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return time.Parse(dataset.DateLayout, value)
}
