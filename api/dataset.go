package api

import (
	"net/http"
	"time"

	"hermannm.dev/coviddash/dataset"
)

// Sends an error response and returns false if the dataset failed to load.
func (api DashboardAPI) getDataset(res http.ResponseWriter, req *http.Request) (*dataset.Dataset, bool) {
	data, err := api.datasets.Get(req.Context(), api.datasetURL)
	if err != nil {
		sendError(res, http.StatusServiceUnavailable, err, "dataset unavailable")
		return nil, false
	}
	return data, true
}

type healthResponse struct {
	Source       string    `json:"source"`
	Observations int       `json:"observations"`
	LoadedAt     time.Time `json:"loadedAt"`
}

// Returns:
//   - 200 with JSON-encoded healthResponse if the dataset is loaded
//   - 503 if the dataset is still loading or failed to load
func (api DashboardAPI) Health(res http.ResponseWriter, req *http.Request) {
	data, loaded, err := api.datasets.Peek(api.datasetURL)
	if !loaded {
		http.Error(res, "dataset not loaded yet", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		sendError(res, http.StatusServiceUnavailable, err, "dataset failed to load")
		return
	}

	sendJSON(res, healthResponse{
		Source:       data.Source,
		Observations: data.Len(),
		LoadedAt:     data.LoadedAt,
	})
}

// Returns:
//   - JSON-encoded list of the distinct locations in the dataset, sorted
func (api DashboardAPI) GetCountries(res http.ResponseWriter, req *http.Request) {
	data, ok := api.getDataset(res, req)
	if !ok {
		return
	}

	sendJSON(res, data.Countries())
}

type dateRangeResponse struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Returns:
//   - JSON-encoded dateRangeResponse with the earliest and latest dates in the dataset
func (api DashboardAPI) GetDateRange(res http.ResponseWriter, req *http.Request) {
	data, ok := api.getDataset(res, req)
	if !ok {
		return
	}

	minDate, maxDate, ok := data.DateRange()
	if !ok {
		sendError(res, http.StatusNotFound, nil, "dataset has no dated observations")
		return
	}

	sendJSON(res, dateRangeResponse{
		Min: minDate.Format(dataset.DateLayout),
		Max: maxDate.Format(dataset.DateLayout),
	})
}
