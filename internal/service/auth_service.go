package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

const tokenPrefix = "mock_token_"

type userDirectory interface {
	UserForRole(role models.Role) (models.User, bool)
}

// SessionWriter is the slice of a client session store the auth flow mutates.
type SessionWriter interface {
	Login(ctx context.Context, user models.User) error
	Logout(ctx context.Context) error
}

// AuthService implements the role selection login stub.
type AuthService struct {
	users    userDirectory
	activity activityRecorder
	metrics  *MetricsService
	latency  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService constructs the auth service. latency simulates the login round trip.
func NewAuthService(users userDirectory, activity activityRecorder, metrics *MetricsService, latency time.Duration, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:    users,
		activity: recorderOrNop(activity),
		metrics:  metrics,
		latency:  latency,
		logger:   logger,
		now:      time.Now,
	}
}

// Login signs the client in as the mock account of role and persists the session.
func (s *AuthService) Login(ctx context.Context, store SessionWriter, rawRole string) (*models.LoginResult, error) {
	role, ok := models.ParseRole(strings.TrimSpace(rawRole))
	if !ok {
		return nil, appErrors.ErrInvalidRole
	}
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}
	user, ok := s.users.UserForRole(role)
	if !ok {
		return nil, appErrors.ErrInvalidRole
	}
	if err := store.Login(ctx, user); err != nil {
		s.logger.Error("failed to persist session", zap.String("role", string(role)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unable to save session")
	}

	s.metrics.RecordLogin(role)
	s.activity.Record(models.ActivitySession, fmt.Sprintf("%s signed in", user.Name), user.ID, user.ID)
	return &models.LoginResult{
		User:  user,
		Role:  role,
		Token: fmt.Sprintf("%s%s_%d", tokenPrefix, role, s.now().UnixMilli()),
	}, nil
}

// Logout clears the client session. Signing out twice is harmless.
func (s *AuthService) Logout(ctx context.Context, store SessionWriter) error {
	if err := store.Logout(ctx); err != nil {
		s.logger.Error("failed to clear session", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unable to clear session")
	}
	return nil
}

// VerifyToken resolves a mock token to its account. Tokens mentioning admin belong to the administrator.
func (s *AuthService) VerifyToken(token string) (*models.User, error) {
	if !strings.HasPrefix(token, tokenPrefix) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid token")
	}
	role := models.RoleStudent
	if strings.Contains(token, string(models.RoleAdmin)) {
		role = models.RoleAdmin
	}
	user, ok := s.users.UserForRole(role)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid token")
	}
	return &user, nil
}
