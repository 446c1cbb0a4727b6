package api

import (
	"encoding/json"
	"net/http"

	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

func sendJSON(res http.ResponseWriter, value any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(res).Encode(value); err != nil {
		log.ErrorCause(err, "failed to serialize response")
	}
}

func sendClientError(res http.ResponseWriter, err error, message string) {
	sendError(res, http.StatusBadRequest, err, message)
}

func sendServerError(res http.ResponseWriter, err error, message string) {
	sendError(res, http.StatusInternalServerError, err, message)
}

func sendError(res http.ResponseWriter, statusCode int, err error, message string) {
	responseMessage := message
	if err != nil {
		if message == "" {
			responseMessage = err.Error()
		} else {
			responseMessage = wrap.Error(err, message).Error()
		}
	}

	if statusCode >= http.StatusInternalServerError {
		switch {
		case err == nil:
			log.ErrorMessage(message)
		case message == "":
			log.Error(err)
		default:
			log.ErrorCause(err, message)
		}
	} else {
		log.Debug(responseMessage)
	}

	http.Error(res, responseMessage, statusCode)
}
