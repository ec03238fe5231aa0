package adaptor

import (
	"encoding/json"
	"net/http"

	"storage-marketplace/internal/dto/request"
	"storage-marketplace/internal/usecase"
	"storage-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/user/profile (protected)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID.String())
	if err != nil {
		respondError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// GetUserByID handles GET /api/admin/users/{id} (admin only)
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// GetUserByUsername handles GET /api/admin/users/username/{username} (admin only)
func (h *UserHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		utils.ResponseBadRequest(w, "Username is required", nil)
		return
	}

	user, err := h.service.GetUserByUsername(r.Context(), username)
	if err != nil {
		respondError(w, h.log, err, "get user by username")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// GetUserByEmail handles GET /api/admin/users/email/{email} (admin only)
func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		utils.ResponseBadRequest(w, "Email is required", nil)
		return
	}

	user, err := h.service.GetUserByEmail(r.Context(), email)
	if err != nil {
		respondError(w, h.log, err, "get user by email")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// UpdatePassword handles PUT /api/user/password (protected)
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdatePassword(r.Context(), userID.String(), &req); err != nil {
		respondError(w, h.log, err, "update password")
		return
	}

	utils.ResponseSuccess(w, "Password updated successfully", nil)
}

// UpdateVerification handles PUT /api/admin/users/verification (admin only)
func (h *UserHandler) UpdateVerification(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateVerificationStatus(r.Context(), &req); err != nil {
		respondError(w, h.log, err, "update verification")
		return
	}

	utils.ResponseSuccess(w, "Verification status updated successfully", nil)
}

// UpdateDetails handles PUT /api/user/details (protected)
func (h *UserHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateUserDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.UpdateUserDetails(r.Context(), userID.String(), &req)
	if err != nil {
		respondError(w, h.log, err, "update details")
		return
	}

	utils.ResponseSuccess(w, "Details updated successfully", user)
}

// UpdateProfilePicture handles PUT /api/user/picture (protected)
func (h *UserHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProfilePictureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateProfilePicture(r.Context(), userID.String(), &req); err != nil {
		respondError(w, h.log, err, "update profile picture")
		return
	}

	utils.ResponseSuccess(w, "Profile picture updated successfully", nil)
}
