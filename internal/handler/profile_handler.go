package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

type profileService interface {
	Get(user models.User) (*dto.Profile, error)
	Update(ctx context.Context, store service.SessionUserWriter, user models.User, req dto.ProfileRequest) (*dto.Profile, error)
	ChangePassword(userID string, req dto.PasswordChangeRequest) error
}

// ProfileHandler serves the student profile page.
type ProfileHandler struct {
	service profileService
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(svc profileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Get godoc
// @Summary My profile
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.service.Get(sessionUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Update godoc
// @Summary Edit my profile
// @Tags Student
// @Accept json
// @Produce json
// @Param payload body dto.ProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileRequest
	if !bindJSON(c, &req, "profile") {
		return
	}
	profile, err := h.service.Update(c.Request.Context(), middleware.StoreFrom(c), sessionUser(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, profile, response.Success("Profile updated successfully!"))
}

// ChangePassword godoc
// @Summary Change my password
// @Tags Student
// @Accept json
// @Produce json
// @Param payload body dto.PasswordChangeRequest true "Password payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /student/profile/password [post]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req dto.PasswordChangeRequest
	if !bindJSON(c, &req, "password") {
		return
	}
	if err := h.service.ChangePassword(actorID(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, nil, response.Success("Password changed successfully!"))
}
