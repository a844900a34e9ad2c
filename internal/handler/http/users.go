package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/utils"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.UserService.Create(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("error creating user")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getAllUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	users, err := h.services.UserService.GetAll(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getAllUsers").Msg("error listing users")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid user id in url")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUser").Int64("id", userID).Msg("error getting user")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid user id in url")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.UserService.Update(r.Context(), userID, req.Name)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Int64("id", userID).Msg("error updating user")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid user id in url")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.Delete(r.Context(), userID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteUser").Int64("id", userID).Msg("error deleting user")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userIDFromURL extracts and parses the {userID} URL parameter.
func userIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}
