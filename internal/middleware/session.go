package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/session"
	"github.com/noah-isme/campus-portal-api/pkg/logger"
)

// ContextStoreKey is the gin context key holding the client's *session.Store.
const ContextStoreKey = "sessionStore"

// SessionOptions configures the client cookie.
type SessionOptions struct {
	CookieName string
	Secure     bool
}

// Session identifies the client by its signed cookie, issuing a new client id when the cookie
// is missing or invalid, and restores the client's store before the handler runs.
func Session(manager *session.Manager, signer *session.CookieSigner, metrics *service.MetricsService, opts SessionOptions, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.CookieName == "" {
		opts.CookieName = "portal_client"
	}
	maxAge := int(signer.TTL().Seconds())

	return func(c *gin.Context) {
		clientID := ""
		if raw, err := c.Cookie(opts.CookieName); err == nil && raw != "" {
			if id, parseErr := signer.Parse(raw); parseErr == nil {
				clientID = id
			} else {
				log.Debug("rejecting client cookie", zap.Error(parseErr))
			}
		}
		if clientID == "" {
			clientID = uuid.NewString()
			value, err := signer.Issue(clientID)
			if err != nil {
				log.Error("failed to issue client cookie", zap.Error(err))
			} else {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(opts.CookieName, value, maxAge, "/", "", opts.Secure, true)
			}
		}

		store := manager.Store(clientID)
		if store.Current().State == session.Loading {
			sess := store.Restore(c.Request.Context())
			metrics.RecordSessionRestore(sess.State.String())
		}

		c.Set(ContextStoreKey, store)
		c.Set(logger.ClientIDKey, clientID)
		if sess := store.Current(); sess.Authenticated() {
			c.Set(logger.RoleKey, string(sess.Role))
		}
		c.Next()
		manager.Release(clientID)
	}
}

// StoreFrom returns the store attached by Session.
func StoreFrom(c *gin.Context) *session.Store {
	value, ok := c.Get(ContextStoreKey)
	if !ok {
		return nil
	}
	store, _ := value.(*session.Store)
	return store
}

// CurrentSession returns the live session of the request's client. Without a store the client is
// treated as still loading.
func CurrentSession(c *gin.Context) session.Session {
	store := StoreFrom(c)
	if store == nil {
		return session.Session{State: session.Loading}
	}
	return store.Current()
}
