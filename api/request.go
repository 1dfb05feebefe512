package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/digitalaadhti/digital-aadhti-official/errs"
)

const maxJSONBodySize = 1 << 20

// decodeJSON reads a single JSON value from the request body into dst. Unknown fields are ignored.
// A body without a Content-Type is still read as JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, payloadType string, dst any) error {
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || (mediaType != "application/json" && !strings.HasSuffix(mediaType, "+json")) {
			return errs.NewBadRequestError("Content-Type must be application/json")
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		return errs.NewMalformedPayloadError(payloadType, err)
	}

	if decoder.More() {
		return errs.NewMalformedPayloadError(payloadType, errors.New("unexpected data after JSON value"))
	}
	return nil
}
