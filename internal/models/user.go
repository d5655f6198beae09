package models

// Role identifies which portal a user may enter.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStudent:
		return RoleStudent, true
	}
	return "", false
}

// Home returns the landing path of the role's portal.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleStudent:
		return "/student/dashboard"
	}
	return "/auth/login"
}

// User is the identity stored in a session. Student specific fields are empty for administrators.
type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	StudentID   string   `json:"studentId,omitempty"`
	Program     string   `json:"program,omitempty"`
	Year        int      `json:"year,omitempty"`
}

// LoginResult is returned by the mock login call.
type LoginResult struct {
	User  User   `json:"user"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}
