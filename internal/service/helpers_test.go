package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

func fixtureCatalog(t *testing.T) *repository.CatalogRepository {
	t.Helper()
	snap, err := repository.LoadSnapshot(context.Background(), repository.NewFixtureRepository())
	require.NoError(t, err)
	return repository.NewCatalogRepository(snap)
}

type recordedActivity struct {
	Kind    models.ActivityKind
	Message string
	Subject string
	Actor   string
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []recordedActivity
}

func (f *fakeRecorder) Record(kind models.ActivityKind, message, subject, actor string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, recordedActivity{Kind: kind, Message: message, Subject: subject, Actor: actor})
}

func (f *fakeRecorder) ForSubject(subject string, limit int) []models.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Activity
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].Subject == subject {
			out = append(out, models.Activity{Kind: f.entries[i].Kind, Message: f.entries[i].Message, Subject: subject})
		}
	}
	return out
}

func (f *fakeRecorder) last() recordedActivity {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) == 0 {
		return recordedActivity{}
	}
	return f.entries[len(f.entries)-1]
}

type fakeSession struct {
	user      *models.User
	loginErr  error
	updateErr error
	logouts   int
}

func (f *fakeSession) Login(_ context.Context, user models.User) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.user = &user
	return nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.logouts++
	f.user = nil
	return nil
}

func (f *fakeSession) UpdateUser(_ context.Context, user models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.user = &user
	return nil
}

func mustCourse(t *testing.T, repo *repository.CatalogRepository, id string) models.Course {
	t.Helper()
	c, ok := repo.FindCourse(id)
	require.True(t, ok, "course %s", id)
	return c
}

func mustStudent(t *testing.T, repo *repository.CatalogRepository, key string) models.Student {
	t.Helper()
	s, ok := repo.FindStudent(key)
	require.True(t, ok, "student %s", key)
	return s
}
