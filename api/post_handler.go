package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/digitalaadhti/digital-aadhti-official/database"
	"github.com/digitalaadhti/digital-aadhti-official/errs"
	"github.com/digitalaadhti/digital-aadhti-official/models"
	"github.com/digitalaadhti/digital-aadhti-official/services"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	postRepo  database.PostRepo
}

func newPostHandler(postRepo database.PostRepo) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		postRepo:  postRepo,
	}
}

// getAllPosts returns every post, newest first.
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.postRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "posts", err))
			return
		}
		if posts == nil {
			posts = []*models.Post{}
		}

		h.responder.WriteJSON(w, posts)
	}
}

func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")

		post, err := h.postRepo.FindByID(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// createPost validates the body and stores a new post. A missing excerpt is derived from the
// content, falling back to the title when the content has no text at all.
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.PostInput
		if err := decodeJSON(w, r, "post", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input.Normalize()
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("Invalid post data", err))
			return
		}

		if input.Excerpt == "" {
			input.Excerpt = services.Excerpt(input.Content)
			if input.Excerpt == "" {
				input.Excerpt = input.Title
			}
		}

		post := input.ToPost()
		if err := h.postRepo.Add(r.Context(), post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "post", err))
			return
		}

		h.logger.Info().Str("postID", post.ID).Msg("post created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// updatePost applies a partial update. Fields sent as null are treated as absent.
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")

		var patch models.PostPatch
		if err := decodeJSON(w, r, "post", &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := patch.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("Invalid post data", err))
			return
		}

		post, err := h.postRepo.Update(r.Context(), postID, patch)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")

		deleted, err := h.postRepo.Delete(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "post", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		h.logger.Info().Str("postID", postID).Msg("post deleted")
		h.responder.WriteNoContent(w)
	}
}
