package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

func TestStudentListAndStats(t *testing.T) {
	svc := NewStudentService(fixtureCatalog(t), nil, nil)

	list := svc.List(models.StudentFilter{Program: "Computer Science", Status: "active"})
	assert.Len(t, list.Students, 2)
	assert.Equal(t, 6, list.Stats.Total)
	assert.Equal(t, 4, list.Stats.Active)
	assert.Equal(t, 2, list.Stats.Graduating)
	assert.Equal(t, []int{1, 2, 3, 4}, list.Years)

	list = svc.List(models.StudentFilter{Search: "stu2024003"})
	require.Len(t, list.Students, 1)
	assert.Equal(t, "Carol Martinez", list.Students[0].Name)
}

func TestStudentDetail(t *testing.T) {
	rec := &fakeRecorder{}
	rec.Record(models.ActivityGrade, "graded", "STU001", "admin_001")
	svc := NewStudentService(fixtureCatalog(t), rec, nil)

	detail, err := svc.Detail("STU2024001")
	require.NoError(t, err)
	assert.Equal(t, "STU001", detail.Student.ID)
	assert.Equal(t, models.ToneGreen, detail.GPATone)
	require.Len(t, detail.CurrentCourses, 2)
	assert.Equal(t, "CS201", detail.CurrentCourses[0].ID)
	require.Len(t, detail.GradeHistory, 2)
	assert.Equal(t, "CS101", detail.GradeHistory[0].CourseID)
	assert.Equal(t, "Introduction to Programming", detail.GradeHistory[0].CourseTitle)
	assert.Equal(t, 3, detail.GradeHistory[0].Credits)
	assert.Len(t, detail.Activity, 1)

	_, err = svc.Detail("nobody")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestStudentSuspendActivateDelete(t *testing.T) {
	repo := fixtureCatalog(t)
	rec := &fakeRecorder{}
	svc := NewStudentService(repo, rec, nil)

	st, err := svc.SetStatus(context.Background(), "STU002", models.StudentSuspended, "admin_001")
	require.NoError(t, err)
	assert.Equal(t, models.StudentSuspended, st.Status)
	assert.Equal(t, models.StudentSuspended, mustStudent(t, repo, "STU002").Status)
	assert.Equal(t, "STU002", rec.last().Subject)

	_, err = svc.SetStatus(context.Background(), "STU004", models.StudentActive, "admin_001")
	require.NoError(t, err)
	assert.Equal(t, models.StudentActive, mustStudent(t, repo, "STU004").Status)

	removed, err := svc.Delete(context.Background(), "STU2024006", "admin_001")
	require.NoError(t, err)
	assert.Equal(t, "Frank Garcia", removed.Name)
	_, found := repo.FindStudent("STU006")
	assert.False(t, found)

	_, err = svc.SetStatus(context.Background(), "STU006", models.StudentActive, "admin_001")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
