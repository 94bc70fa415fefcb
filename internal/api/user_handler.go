package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// UserHandler handles user profile API requests.
type UserHandler struct {
	userStore store.UserStore
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore) *UserHandler {
	return &UserHandler{
		userStore: userStore,
		validator: validator.New(),
	}
}

// Me handles GET /users/me, returning the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		// A valid token for a deleted account yields a 404, not a 500.
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to get user profile", "error", redact.Error(err), "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to get user profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateMe handles PUT /users/me, applying a partial update to the
// authenticated user's profile. A new password is hashed by the store.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to get user for update", "error", redact.Error(err), "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update user profile")
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		user.Password = *req.Password
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, domain.ErrValidation) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to update user", "error", redact.Error(err), "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update user profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// DeleteMe handles DELETE /users/me. The user's tasks go with the account.
// Outstanding access tokens keep working until they expire; refresh fails
// once the row is gone.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	if err := h.userStore.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to delete user", "error", redact.Error(err), "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to delete user account")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
