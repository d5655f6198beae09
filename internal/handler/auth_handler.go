package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/guard"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/session"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, store service.SessionWriter, rawRole string) (*models.LoginResult, error)
	Logout(ctx context.Context, store service.SessionWriter) error
	VerifyToken(token string) (*models.User, error)
}

// AuthHandler serves the role selection login and the session probe.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// LoginPage godoc
// @Summary Login page
// @Description Lists the mock accounts. Signed in clients are redirected to their dashboard.
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Success 302 {string} string "redirect"
// @Failure 503 {object} response.Envelope
// @Router /auth/login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess.State != session.Unauthenticated {
		middleware.Apply(c, guard.Landing(sess))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"roles": []models.Role{models.RoleAdmin, models.RoleStudent}}, nil)
}

// Login godoc
// @Summary Sign in as a mock account
// @Description Form posts are answered with 303 to the role dashboard, JSON posts with the session.
// @Tags Authentication
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Success 303 {string} string "redirect"
// @Failure 400 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), middleware.StoreFrom(c), req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, res.Role.Home())
		return
	}
	user := res.User
	response.JSON(c, http.StatusOK, dto.SessionResponse{Authenticated: true, User: &user, Role: res.Role, Token: res.Token}, nil)
}

// Logout godoc
// @Summary Sign out
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Success 303 {string} string "redirect"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.StoreFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, guard.LoginPath)
		return
	}
	response.JSON(c, http.StatusOK, dto.SessionResponse{}, nil)
}

// Session godoc
// @Summary Describe the current session
// @Description A bearer mock token, when sent, is verified instead of the cookie session.
// @Tags Authentication
// @Produce json
// @Param Authorization header string false "Bearer mock token"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	if token, ok := bearerToken(c); ok {
		user, err := h.service.VerifyToken(token)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, dto.SessionResponse{Authenticated: true, User: user, Role: user.Role}, nil)
		return
	}

	sess := middleware.CurrentSession(c)
	if sess.State == session.Loading {
		middleware.Apply(c, guard.Decision{Outcome: guard.Wait})
		return
	}
	response.JSON(c, http.StatusOK, dto.SessionResponse{Authenticated: sess.Authenticated(), User: sess.User, Role: sess.Role}, nil)
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// wantsJSON is true for API clients. Browser form posts get redirects.
func wantsJSON(c *gin.Context) bool {
	if c.ContentType() == gin.MIMEJSON {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}
