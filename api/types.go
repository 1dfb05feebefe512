package api

import (
	"github.com/digitalaadhti/digital-aadhti-official/errs"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler    postHandler
	commentHandler commentHandler
	uploadHandler  uploadHandler
	userHandler    userHandler
	healthHandler  healthHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Field   string            `json:"field,omitempty"`
	Details string            `json:"details,omitempty"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// UploadResponse describes an accepted image upload.
type UploadResponse struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
