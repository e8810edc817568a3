package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"sentinel-refactor/apperrors"
	"sentinel-refactor/models"
)

// writeJSON encodes data as the response body with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError translates the error taxonomy (spec §7) into a status code and
// a models.ErrorResponse body. devMode controls whether err's message is
// also echoed into the stack field, matching the server's development flag.
func writeError(w http.ResponseWriter, err error, devMode bool) {
	status, label := classifyError(err)

	resp := models.ErrorResponse{
		Error:   label,
		Message: err.Error(),
	}
	if devMode {
		resp.Stack = err.Error()
	}

	var parseFailure *apperrors.ParseFailure
	if errors.As(err, &parseFailure) {
		for _, detail := range parseFailure.Errors {
			resp.Errors = append(resp.Errors, detail.Message)
		}
	}

	writeJSON(w, status, resp)
}

func classifyError(err error) (int, string) {
	var unsupported *apperrors.UnsupportedLanguageError
	if errors.As(err, &unsupported) {
		return http.StatusBadRequest, "Unsupported Language"
	}

	var parseFailure *apperrors.ParseFailure
	if errors.As(err, &parseFailure) {
		return http.StatusBadRequest, "Parse Error"
	}

	var bounds *apperrors.TransformBoundsError
	if errors.As(err, &bounds) {
		return http.StatusBadRequest, "Transform Bounds Error"
	}

	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, "Not Found"
	}

	var badRequest *apperrors.BadRequestError
	if errors.As(err, &badRequest) {
		return http.StatusBadRequest, "Bad Request"
	}

	return http.StatusInternalServerError, "Internal Server Error"
}
