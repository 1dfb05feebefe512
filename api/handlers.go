package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/digitalaadhti/digital-aadhti-official/database"
	"github.com/digitalaadhti/digital-aadhti-official/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, uploadSink services.UploadSink, placeholderURL string, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		postHandler:    newPostHandler(database.PostRepo()),
		commentHandler: newCommentHandler(database.CommentRepo()),
		uploadHandler:  newUploadHandler(uploadSink, placeholderURL),
		userHandler:    newUserHandler(database.UserRepo()),
		healthHandler:  healthHandler{startupTime: startupTime},
	}
}

type healthHandler struct {
	startupTime time.Time
}

func (h healthHandler) getHealth() http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthHandler").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, HealthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
