package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrDatabaseTimeout = errors.New("database timeout")
	ErrDatabaseLock    = errors.New("database lock timeout")
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrStorageWrite    = errors.New("storage write failed")
)

// NewDatabaseError creates a new database error with details about the operation.
// Every store failure is unclassified from the client's point of view and maps to a 500;
// the sentinel only narrows down what went wrong for logs and errors.Is checks.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	sentinel := ErrDatabaseQuery
	if cause != nil {
		errStr := strings.ToLower(cause.Error())
		switch {
		case errors.Is(cause, context.DeadlineExceeded), errors.Is(cause, context.Canceled):
			sentinel = ErrDatabaseTimeout
		case strings.Contains(errStr, "database is locked"):
			sentinel = ErrDatabaseLock
		case strings.Contains(errStr, "no such table"), strings.Contains(errStr, "no such column"):
			sentinel = ErrSchemaMismatch
		case strings.Contains(errStr, "connection"):
			sentinel = ErrDatabaseConnection
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        tagged(details, sentinel),
		Cause:      cause,
	}
}

// NewStorageWriteError wraps a failure to persist uploaded bytes.
func NewStorageWriteError(sink string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        tagged(fmt.Sprintf("Failed to store upload in %s sink", sink), ErrStorageWrite),
		Cause:      cause,
	}
}

func IsDatabaseTimeoutError(err error) bool {
	return errors.Is(err, ErrDatabaseTimeout)
}

func IsDatabaseLockError(err error) bool {
	return errors.Is(err, ErrDatabaseLock)
}

func IsSchemaMismatchError(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

func IsStorageWriteError(err error) bool {
	return errors.Is(err, ErrStorageWrite)
}
