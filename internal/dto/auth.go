package dto

import "github.com/noah-isme/campus-portal-api/internal/models"

// LoginRequest selects the mock account to sign in as.
type LoginRequest struct {
	Role string `json:"role" form:"role"`
}

// SessionResponse describes the session of the calling client.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
	Role          models.Role  `json:"role,omitempty"`
	Token         string       `json:"token,omitempty"`
}
