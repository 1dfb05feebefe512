package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/digitalaadhti/digital-aadhti-official/database"
	"github.com/digitalaadhti/digital-aadhti-official/errs"
	"github.com/digitalaadhti/digital-aadhti-official/models"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo database.CommentRepo
}

func newCommentHandler(commentRepo database.CommentRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
	}
}

// getCommentsByPost lists a post's comments, oldest first. An unknown post simply has none.
func (h commentHandler) getCommentsByPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")

		comments, err := h.commentRepo.FindByPostID(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "comments", err))
			return
		}
		if comments == nil {
			comments = []*models.Comment{}
		}

		h.responder.WriteJSON(w, comments)
	}
}

// createComment stores a comment on the post named in the path, overriding any postId in the body.
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.CommentInput
		if err := decodeJSON(w, r, "comment", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input.PostID = chi.URLParam(r, "postID")
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("Invalid comment data", err))
			return
		}

		comment := input.ToComment()
		if err := h.commentRepo.Add(r.Context(), comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		h.logger.Info().Str("commentID", comment.ID).Str("postID", comment.PostID).Msg("comment created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, comment)
	}
}
