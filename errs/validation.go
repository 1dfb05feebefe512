package errs

import (
	"errors"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError converts the result of a Validate() call into a 400 ApiErr carrying
// one FieldError per failing field, sorted by field name. Rule misconfiguration
// (validation.InternalError) is reported as a 500 instead.
func NewValidationError(message string, err error) *ApiErr {
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return NewInternalErrorWithCause("validation rules failed", internal.InternalError())
	}

	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        tagged(message, ErrValidation),
		Cause:      err,
		Errors:     FieldErrors(err),
	}
}

// FieldErrors flattens validation errors into a stable list.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	var out []FieldError
	flatten("", verrs, &out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func flatten(prefix string, verrs validation.Errors, out *[]FieldError) {
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(ferr, &nested) {
			flatten(name, nested, out)
			continue
		}
		*out = append(*out, FieldError{Field: name, Message: ferr.Error()})
	}
}
