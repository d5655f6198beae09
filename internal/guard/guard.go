// Package guard decides whether a client may enter a role scoped route subtree.
package guard

import (
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/session"
)

// LoginPath is where unauthenticated clients are sent.
const LoginPath = "/auth/login"

// Outcome is the kind of decision taken.
type Outcome int

const (
	Allow Outcome = iota
	Wait
	Redirect
)

// Decision is the result of Decide. Location is set for redirects only.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Decide gates a subtree requiring role on the session state.
func Decide(sess session.Session, role models.Role) Decision {
	switch sess.State {
	case session.Loading:
		return Decision{Outcome: Wait}
	case session.Unauthenticated:
		return Decision{Outcome: Redirect, Location: LoginPath}
	case session.Authenticated:
		if sess.Role != role {
			return Decision{Outcome: Redirect, Location: sess.Role.Home()}
		}
		return Decision{Outcome: Allow}
	}
	return Decision{Outcome: Redirect, Location: LoginPath}
}

// Landing is the destination of the root path, the login page and unknown paths.
// Authenticated clients go home, everyone else to the login page.
func Landing(sess session.Session) Decision {
	switch sess.State {
	case session.Loading:
		return Decision{Outcome: Wait}
	case session.Authenticated:
		return Decision{Outcome: Redirect, Location: sess.Role.Home()}
	}
	return Decision{Outcome: Redirect, Location: LoginPath}
}
