package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/digitalaadhti/digital-aadhti-official/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus marshals data before touching the response so a marshal failure can still become a 500.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Message: "An unexpected error occurred",
			Status:  "error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().
			Int("status", apiErr.StatusCode).
			Str("errorKind", errorKind(apiErr)).
			Msg(apiErr.GetFullError())
	} else {
		r.logger.Debug().
			Int("status", apiErr.StatusCode).
			Str("errorKind", errorKind(apiErr)).
			Msg(apiErr.Error())
	}

	response := ErrorResponse{
		Message: apiErr.Message(),
		Status:  "error",
		Errors:  apiErr.Errors,
	}

	// Internal details stay in the logs
	if apiErr.StatusCode < http.StatusInternalServerError {
		response.Field = apiErr.Field
		response.Details = apiErr.Details
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// errorKind names the sentinel behind err for logs.
func errorKind(err error) string {
	switch {
	case errs.IsValidationError(err):
		return "validation"
	case errs.IsMalformedPayloadError(err):
		return "malformed_payload"
	case errs.IsMaxBodySizeExceededError(err):
		return "body_too_large"
	case errs.IsUploadRejectedError(err):
		return "upload_rejected"
	case errs.IsBadRequest(err):
		return "bad_request"
	case errs.IsNotFound(err):
		return "not_found"
	case errors.Is(err, errs.ErrCORSBlocked):
		return "cors_blocked"
	case errs.IsDatabaseTimeoutError(err):
		return "database_timeout"
	case errs.IsDatabaseLockError(err):
		return "database_lock"
	case errs.IsSchemaMismatchError(err):
		return "schema_mismatch"
	case errors.Is(err, errs.ErrDatabaseConnection):
		return "database_connection"
	case errors.Is(err, errs.ErrDatabaseQuery):
		return "database_query"
	case errs.IsStorageWriteError(err):
		return "storage_write"
	case errs.IsInternal(err):
		return "internal"
	default:
		return "unknown"
	}
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
