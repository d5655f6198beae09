package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/guard"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

// RetryAfterSeconds is advertised while a session is still loading.
const RetryAfterSeconds = "1"

// RequireRole admits clients signed in with role. Loading clients get a 503 placeholder and
// everyone else is redirected to the login page or their own home.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Apply(c, guard.Decide(CurrentSession(c), role)) {
			c.Abort()
			return
		}
		c.Next()
	}
}

// Apply writes a non-allow decision to the response and reports whether the request may proceed.
func Apply(c *gin.Context, d guard.Decision) bool {
	switch d.Outcome {
	case guard.Allow:
		return true
	case guard.Wait:
		c.Header("Retry-After", RetryAfterSeconds)
		response.Error(c, appErrors.ErrSessionLoading)
	default:
		c.Redirect(http.StatusFound, d.Location)
	}
	return false
}
