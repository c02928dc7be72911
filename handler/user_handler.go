package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"echotrace-api/common"
	"echotrace-api/model"
	"echotrace-api/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile godoc
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.UserProfileResponse
// @Failure      401  {object}  common.AppError
// @Router       /api/users/me [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := CurrentUsername(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", nil)
	}

	profile, err := h.userService.GetProfile(username)
	if err != nil {
		return userServiceError(err)
	}

	writeJSON(w, http.StatusOK, profile)
	return nil
}

// UpdateProfile godoc
// @Summary      Update the authenticated user's profile
// @Description  Blank fields are left unchanged; the reminders flag is always applied
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.ProfileUpdateRequest true "Profile fields"
// @Success      200  {object}  model.UserProfileResponse
// @Failure      401  {object}  common.AppError
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := CurrentUsername(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", nil)
	}

	var req model.ProfileUpdateRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	profile, err := h.userService.UpdateProfile(username, &req)
	if err != nil {
		return userServiceError(err)
	}

	writeJSON(w, http.StatusOK, profile)
	return nil
}

// UpdatePassword godoc
// @Summary      Change the authenticated user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.PasswordUpdateRequest true "Password change payload"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  common.AppError
// @Router       /api/users/me/password [put]
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := CurrentUsername(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", nil)
	}

	var req model.PasswordUpdateRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.userService.UpdatePassword(username, &req); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, "Current password is incorrect", nil)
		}
		return userServiceError(err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
	return nil
}

func userServiceError(err error) *common.AppError {
	if errors.Is(err, service.ErrUserNotFound) {
		return common.NewAppError(http.StatusUnauthorized, "User not found", nil)
	}
	return common.NewAppError(http.StatusInternalServerError, "Something went wrong", err)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
