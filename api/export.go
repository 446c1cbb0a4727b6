package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"hermannm.dev/coviddash/export"
	"hermannm.dev/devlog/log"
)

// Expects:
//   - query parameters 'country', 'start', 'end' (see getSelection)
//
// Returns:
//   - the selected observations as a CSV attachment, with the dataset's original columns
func (api DashboardAPI) ExportCSV(res http.ResponseWriter, req *http.Request) {
	selection, ok := api.selectionFromRequest(res, req)
	if !ok {
		return
	}

	var body bytes.Buffer
	if err := export.WriteCSV(&body, selection.dataset.Columns, selection.view); err != nil {
		sendServerError(res, err, "failed to export selection as CSV")
		return
	}

	sendAttachment(res, &body, export.CSVFileName, export.CSVContentType)
}

// Same as ExportCSV, but as an Excel workbook.
func (api DashboardAPI) ExportXLSX(res http.ResponseWriter, req *http.Request) {
	selection, ok := api.selectionFromRequest(res, req)
	if !ok {
		return
	}

	var body bytes.Buffer
	if err := export.WriteXLSX(&body, selection.dataset.Columns, selection.view); err != nil {
		sendServerError(res, err, "failed to export selection as XLSX")
		return
	}

	sendAttachment(res, &body, export.XLSXFileName, export.XLSXContentType)
}

// Export bodies are buffered, so that a failed export can still get an error status.
func sendAttachment(
	res http.ResponseWriter,
	body *bytes.Buffer,
	fileName string,
	contentType string,
) {
	res.Header().Set("Content-Type", contentType)
	res.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	res.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	res.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(res); err != nil {
		log.WarnErrorCause(err, "failed to write export attachment", slog.String("file", fileName))
	}
}
