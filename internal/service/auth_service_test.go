package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

func newAuthService() *AuthService {
	svc := NewAuthService(repository.NewUserDirectory(), nil, nil, 0, nil)
	svc.now = func() time.Time { return time.UnixMilli(1736000000000) }
	return svc
}

func TestLoginIssuesMockToken(t *testing.T) {
	svc := newAuthService()
	store := &fakeSession{}

	result, err := svc.Login(context.Background(), store, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.Role)
	assert.Equal(t, "mock_token_admin_1736000000000", result.Token)
	assert.Equal(t, "admin_001", result.User.ID)
	require.NotNil(t, store.user)
	assert.Equal(t, models.RoleAdmin, store.user.Role)
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	svc := newAuthService()
	store := &fakeSession{}

	_, err := svc.Login(context.Background(), store, "teacher")
	assert.ErrorIs(t, err, appErrors.ErrInvalidRole)
	assert.Nil(t, store.user)
}

func TestLoginSurfacesStorageFailure(t *testing.T) {
	svc := newAuthService()
	store := &fakeSession{loginErr: errors.New("redis down")}

	_, err := svc.Login(context.Background(), store, "student")
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestLoginCancelledDuringLatency(t *testing.T) {
	svc := NewAuthService(repository.NewUserDirectory(), nil, nil, time.Hour, nil)
	store := &fakeSession{}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Login(ctx, store, "student")
	require.Error(t, err)
	assert.Nil(t, store.user)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc := newAuthService()
	store := &fakeSession{}

	require.NoError(t, svc.Logout(context.Background(), store))
	require.NoError(t, svc.Logout(context.Background(), store))
	assert.Equal(t, 2, store.logouts)
}

func TestVerifyToken(t *testing.T) {
	svc := newAuthService()

	user, err := svc.VerifyToken("mock_token_admin_1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	user, err = svc.VerifyToken("mock_token_student_1")
	require.NoError(t, err)
	assert.Equal(t, "STU2024001", user.StudentID)

	_, err = svc.VerifyToken("Bearer abc")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
