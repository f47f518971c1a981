package api

import (
	"github.com/bitmark-inc/immunity-api/store"
	"github.com/bitmark-inc/immunity-api/validity"
)

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1000: "invalid api token",

		1010: "invalid parameters",
		1012: "invalid person id",
		1013: "invalid date",

		1100: store.ErrPersonNotFound.Error(),
		1101: store.ErrSnapshotNotFound.Error(),

		1200: validity.ErrInputUnavailable.Error(),
		1201: "fail to trigger validity refresh",
	}

	errorInternalServer  = errorJSON(999)
	errorInvalidAPIToken = errorJSON(1000)

	errorInvalidParameters = errorJSON(1010)
	errorInvalidPersonID   = errorJSON(1012)
	errorInvalidDate       = errorJSON(1013)

	errorPersonNotFound   = errorJSON(1100)
	errorSnapshotNotFound = errorJSON(1101)

	errorValidityInputUnavailable = errorJSON(1200)
	errorValidityRefresh          = errorJSON(1201)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
