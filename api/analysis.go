package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hermannm.dev/coviddash/analysis"
	"hermannm.dev/coviddash/dataset"
	"hermannm.dev/wrap"
)

type metricsResponse struct {
	Selection countrySelection          `json:"selection"`
	Metrics   analysis.Metrics          `json:"metrics"`
	Formatted analysis.FormattedMetrics `json:"formatted"`
}

// Expects:
//   - query parameters 'country', 'start', 'end' (see getSelection)
//
// Returns:
//   - JSON-encoded metricsResponse for the latest observation in the selection
//   - 404 if the selection has no observations
func (api DashboardAPI) GetLatestMetrics(res http.ResponseWriter, req *http.Request) {
	selection, ok := api.selectionFromRequest(res, req)
	if !ok {
		return
	}

	metrics, err := analysis.LatestMetrics(selection.view)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyView) {
			sendError(res, http.StatusNotFound, nil, err.Error())
		} else {
			sendServerError(res, err, "failed to extract metrics")
		}
		return
	}

	sendJSON(res, metricsResponse{
		Selection: selection,
		Metrics:   metrics,
		Formatted: metrics.Format(),
	})
}

var defaultTrendFields = []dataset.Field{
	dataset.FieldNewCases,
	dataset.FieldNewDeaths,
	dataset.FieldNewVaccinations,
}

type trendResponse struct {
	Selection countrySelection `json:"selection"`
	Trend     analysis.Trend   `json:"trend"`
}

// Expects:
//   - query parameters 'country', 'start', 'end' (see getSelection)
//   - query parameter 'fields' (optional): comma-separated field names, defaulting to new cases,
//     deaths and vaccinations
//
// Returns:
//   - JSON-encoded trendResponse
func (api DashboardAPI) GetTrend(res http.ResponseWriter, req *http.Request) {
	fields := defaultTrendFields
	if fieldsParam := req.URL.Query().Get("fields"); fieldsParam != "" {
		fields = nil
		for _, name := range strings.Split(fieldsParam, ",") {
			field, err := dataset.ParseField(strings.TrimSpace(name))
			if err != nil {
				sendClientError(res, err, "invalid 'fields' parameter")
				return
			}
			fields = append(fields, field)
		}
	}

	selection, ok := api.selectionFromRequest(res, req)
	if !ok {
		return
	}

	sendJSON(res, trendResponse{
		Selection: selection,
		Trend:     analysis.NewTrend(selection.view, fields...),
	})
}

type totalsResponse struct {
	Selection countrySelection       `json:"selection"`
	Field     dataset.Field          `json:"field"`
	Interval  analysis.DateInterval  `json:"interval"`
	Totals    []analysis.PeriodTotal `json:"totals"`
}

// Expects:
//   - query parameters 'country', 'start', 'end' (see getSelection)
//   - query parameter 'field' (optional): field to sum, defaulting to new_cases
//   - query parameter 'interval' (optional): YEAR/QUARTER/MONTH/WEEK/DAY, defaulting to MONTH
//
// Returns:
//   - JSON-encoded totalsResponse, with totals in chronological order
func (api DashboardAPI) GetPeriodTotals(res http.ResponseWriter, req *http.Request) {
	field := dataset.FieldNewCases
	if fieldParam := req.URL.Query().Get("field"); fieldParam != "" {
		var err error
		if field, err = dataset.ParseField(fieldParam); err != nil {
			sendClientError(res, err, "invalid 'field' parameter")
			return
		}
	}

	interval := analysis.DateIntervalMonth
	if intervalParam := req.URL.Query().Get("interval"); intervalParam != "" {
		if err := json.Unmarshal([]byte(strconv.Quote(intervalParam)), &interval); err != nil {
			err := fmt.Errorf("unrecognized date interval '%s'", intervalParam)
			sendClientError(res, err, "invalid 'interval' parameter")
			return
		}
	}

	selection, ok := api.selectionFromRequest(res, req)
	if !ok {
		return
	}

	totals, err := analysis.PeriodTotals(selection.view, field, interval)
	if err != nil {
		sendServerError(res, err, "failed to calculate totals")
		return
	}

	sendJSON(res, totalsResponse{
		Selection: selection,
		Field:     field,
		Interval:  interval,
		Totals:    totals,
	})
}

// Sends an error response and returns false if the dataset is unavailable or the selection
// parameters are invalid.
func (api DashboardAPI) selectionFromRequest(
	res http.ResponseWriter,
	req *http.Request,
) (countrySelection, bool) {
	data, ok := api.getDataset(res, req)
	if !ok {
		return countrySelection{}, false
	}

	selection, err := api.getSelection(req, data)
	if err != nil {
		sendClientError(res, wrap.Error(err, "invalid selection"), "")
		return selection, false
	}

	return selection, true
}
