package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/digitalaadhti/digital-aadhti-official/errs"
	"github.com/digitalaadhti/digital-aadhti-official/services"
)

const (
	uploadFieldName = "image"
	maxUploadSize   = 2 << 20
	// room for the multipart framing and any small text fields around the file
	maxUploadBodySize = maxUploadSize + 1<<20

	defaultPlaceholderURL = "https://images.unsplash.com/photo-1499750310107-5fef28a66643?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"
)

type uploadHandler struct {
	responder      Responder
	logger         zerolog.Logger
	sink           services.UploadSink
	placeholderURL string
}

func newUploadHandler(sink services.UploadSink, placeholderURL string) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Str("sink", sink.Name()).Logger()

	return uploadHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		sink:           sink,
		placeholderURL: placeholderURL,
	}
}

// uploadImage accepts a single image in the multipart field "image", hands the bytes to the
// configured sink and answers with the placeholder URL.
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodySize)
		if err := r.ParseMultipartForm(maxUploadBodySize); err != nil {
			if isBodyTooLarge(err) {
				h.responder.WriteError(w, errs.NewUploadRejectedError("File too large"))
				return
			}
			h.logger.Debug().Err(err).Msg("unreadable multipart body")
			h.responder.WriteError(w, errs.NewUploadRejectedError("No image file provided"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		fileHeader, apiErr := singleImage(r.MultipartForm)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if fileHeader.Size > maxUploadSize {
			h.responder.WriteError(w, errs.NewUploadRejectedError("File too large"))
			return
		}

		data, err := readFile(fileHeader)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Failed to read upload", err))
			return
		}

		contentType := detectContentType(fileHeader, data)
		if !strings.HasPrefix(contentType, "image/") {
			h.responder.WriteError(w, errs.NewUploadRejectedError("Only image files are allowed"))
			return
		}

		filename := services.GenerateFilename(fileHeader.Filename)
		if err := h.sink.Save(r.Context(), filename, contentType, data); err != nil {
			h.responder.WriteError(w, errs.NewStorageWriteError(h.sink.Name(), err))
			return
		}

		h.logger.Info().
			Str("filename", filename).
			Str("contentType", contentType).
			Int("size", len(data)).
			Msg("image uploaded")

		h.responder.WriteJSON(w, UploadResponse{
			URL:          h.placeholderURL,
			Filename:     filename,
			OriginalName: fileHeader.Filename,
		})
	}
}

func singleImage(form *multipart.Form) (*multipart.FileHeader, *errs.ApiErr) {
	for field := range form.File {
		if field != uploadFieldName {
			return nil, errs.NewUploadRejectedError(fmt.Sprintf("Unexpected file field %q", field))
		}
	}

	files := form.File[uploadFieldName]
	switch len(files) {
	case 0:
		return nil, errs.NewUploadRejectedError("No image file provided")
	case 1:
		return files[0], nil
	default:
		return nil, errs.NewUploadRejectedError("Only one image file is allowed")
	}
}

func readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxUploadSize+1))
}

// detectContentType trusts the part's declared type and sniffs the bytes only when none was sent.
func detectContentType(fileHeader *multipart.FileHeader, data []byte) string {
	if declared := fileHeader.Header.Get("Content-Type"); declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			return strings.ToLower(mediaType)
		}
		return ""
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mediaType
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return errors.Is(err, multipart.ErrMessageTooLarge) || strings.Contains(err.Error(), "request body too large")
}
