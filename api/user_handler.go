package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/digitalaadhti/digital-aadhti-official/database"
	"github.com/digitalaadhti/digital-aadhti-official/errs"
	"github.com/digitalaadhti/digital-aadhti-official/models"
)

type userHandler struct {
	responder  Responder
	logger     zerolog.Logger
	userRepo   database.UserRepo
	bcryptCost int
}

func newUserHandler(userRepo database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// createUser registers an account. Usernames are not unique.
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.UserInput
		if err := decodeJSON(w, r, "user", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("Invalid user data", err))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), h.bcryptCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Failed to create user", err))
			return
		}

		user := &models.User{Username: input.Username, Password: string(hash)}
		if err := h.userRepo.Add(r.Context(), user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		h.logger.Info().Str("userID", user.ID).Msg("user created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, user)
	}
}

func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.userRepo.FindByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

func (h userHandler) getUserByUsername() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.userRepo.FindByUsername(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("fetch", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}
