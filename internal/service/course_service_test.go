package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

func validCourseRequest() dto.CourseRequest {
	return dto.CourseRequest{
		ID:            "CS350",
		Title:         "Operating Systems",
		Description:   "Processes, memory management, file systems and concurrency.",
		Instructor:    "Dr. Sarah Smith",
		Credits:       3,
		Capacity:      40,
		Department:    "Computer Science",
		Prerequisites: []string{"CS201"},
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected app error, got %v", err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	return appErr.Fields
}

func TestCourseCreateValidationMessages(t *testing.T) {
	repo := fixtureCatalog(t)
	svc := NewCourseService(repo, nil, nil, 0, nil)

	_, err := svc.Create(context.Background(), dto.CourseRequest{}, "admin_001")
	fields := fieldsOf(t, err)
	assert.Equal(t, "Course title is required", fields["title"])
	assert.Equal(t, "Course code is required", fields["id"])
	assert.Equal(t, "Description is required", fields["description"])
	assert.Equal(t, "Department is required", fields["department"])
	assert.Equal(t, "Credits are required", fields["credits"])
	assert.Equal(t, "Capacity is required", fields["capacity"])
	assert.Equal(t, "Instructor is required", fields["instructor"])

	req := validCourseRequest()
	req.ID = "cs-350"
	req.Title = "OS"
	req.Description = "too short"
	req.Credits = 7
	req.Capacity = 3
	_, err = svc.Create(context.Background(), req, "admin_001")
	fields = fieldsOf(t, err)
	assert.Equal(t, "Invalid format (e.g., CS101, MATH202)", fields["id"])
	assert.Equal(t, "Title must be at least 3 characters", fields["title"])
	assert.Equal(t, "Description must be at least 20 characters", fields["description"])
	assert.Equal(t, "Maximum 6 credits", fields["credits"])
	assert.Equal(t, "Minimum 5 students", fields["capacity"])

	assert.Len(t, repo.ListCourses(), 9)
}

func TestCourseCreateAppendsWithDefaults(t *testing.T) {
	repo := fixtureCatalog(t)
	rec := &fakeRecorder{}
	svc := NewCourseService(repo, nil, rec, 0, nil)

	course, err := svc.Create(context.Background(), validCourseRequest(), "admin_001")
	require.NoError(t, err)
	assert.Equal(t, models.CourseActive, course.Status)
	assert.Equal(t, models.LevelUndergraduate, course.Level)
	assert.Equal(t, "INS001", course.InstructorID)
	assert.Zero(t, course.Enrolled)

	stored := mustCourse(t, repo, "CS350")
	assert.Equal(t, "Operating Systems", stored.Title)
	assert.Equal(t, models.ActivityCourse, rec.last().Kind)

	_, err = svc.Create(context.Background(), validCourseRequest(), "admin_001")
	assert.Equal(t, "A course with this code already exists", fieldsOf(t, err)["id"])
}

func TestCourseCreateRejectsUnknownPrerequisite(t *testing.T) {
	svc := NewCourseService(fixtureCatalog(t), nil, nil, 0, nil)
	req := validCourseRequest()
	req.Prerequisites = []string{"ZZ999"}

	_, err := svc.Create(context.Background(), req, "admin_001")
	assert.Contains(t, fieldsOf(t, err)["prerequisites"], "ZZ999")
}

func TestCourseCreateCancelledBeforeSave(t *testing.T) {
	repo := fixtureCatalog(t)
	svc := NewCourseService(repo, nil, nil, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Create(ctx, validCourseRequest(), "admin_001")
	require.Error(t, err)
	_, found := repo.FindCourse("CS350")
	assert.False(t, found)
}

func TestCourseUpdateKeepsCodeAndEnrollment(t *testing.T) {
	repo := fixtureCatalog(t)
	svc := NewCourseService(repo, nil, nil, 0, nil)

	form, err := svc.Form("CS201")
	require.NoError(t, err)
	assert.True(t, form.IDLocked)
	req := form.Values
	req.ID = "XX100"
	req.Title = "Data Structures"
	req.Capacity = 30

	updated, err := svc.Update(context.Background(), "CS201", req, "admin_001")
	require.NoError(t, err)
	assert.Equal(t, "CS201", updated.ID)
	assert.Equal(t, 20, updated.Enrolled)
	assert.Equal(t, 30, updated.Capacity)

	reg, ok := repo.FindRegistration("REG001")
	require.True(t, ok)
	assert.Equal(t, "Data Structures", reg.CourseTitle)

	req.Capacity = 10
	_, err = svc.Update(context.Background(), "CS201", req, "admin_001")
	assert.Contains(t, fieldsOf(t, err)["capacity"], "(20)")
	assert.Equal(t, 30, mustCourse(t, repo, "CS201").Capacity)
}

func TestCourseUpdateUnknownCourse(t *testing.T) {
	svc := NewCourseService(fixtureCatalog(t), nil, nil, 0, nil)
	req := validCourseRequest()

	_, err := svc.Update(context.Background(), "ZZ999", req, "admin_001")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCourseFormDefaults(t *testing.T) {
	svc := NewCourseService(fixtureCatalog(t), nil, nil, 0, nil)

	form, err := svc.Form("")
	require.NoError(t, err)
	assert.Equal(t, "create", form.Mode)
	assert.Equal(t, 3, form.Values.Credits)
	assert.Equal(t, 30, form.Values.Capacity)
	assert.Equal(t, "16 weeks", form.Values.Duration)
	assert.Contains(t, form.Departments, "Physics")
	assert.NotEmpty(t, form.Instructors)

	_, err = svc.Form("ZZ999")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCourseDelete(t *testing.T) {
	repo := fixtureCatalog(t)
	svc := NewCourseService(repo, nil, nil, 0, nil)

	removed, err := svc.Delete(context.Background(), "HIS210", "admin_001")
	require.NoError(t, err)
	assert.Equal(t, "HIS210", removed.ID)
	_, found := repo.FindCourse("HIS210")
	assert.False(t, found)

	_, err = svc.Delete(context.Background(), "HIS210", "admin_001")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCourseListFiltersAndStats(t *testing.T) {
	svc := NewCourseService(fixtureCatalog(t), nil, nil, 0, nil)

	list := svc.List(models.CourseFilter{Search: "cs1"})
	require.Len(t, list.Courses, 1)
	assert.Equal(t, "CS101", list.Courses[0].ID)
	assert.Equal(t, models.EnrollmentCritical, list.Courses[0].EnrollmentLevel)
	assert.Equal(t, 9, list.Stats.Total)

	list = svc.List(models.CourseFilter{Status: "all", Department: "Mathematics"})
	assert.Len(t, list.Courses, 2)
}

func TestCourseBrowse(t *testing.T) {
	svc := NewCourseService(fixtureCatalog(t), nil, nil, 0, nil)

	page, err := svc.Browse("STU2024001", models.CourseBrowseFilter{SortBy: "credits", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, page.Courses, 9)
	assert.Equal(t, 4, page.Courses[0].Credits)
	assert.Equal(t, 2, page.Registered)

	byID := map[string]dto.BrowseCourse{}
	for _, c := range page.Courses {
		byID[c.ID] = c
	}
	assert.Equal(t, models.Full, byID["EN110"].Availability)
	assert.False(t, byID["EN110"].CanRegister)
	assert.True(t, byID["CS201"].Registered)
	assert.False(t, byID["CS201"].CanRegister)
	assert.Equal(t, models.AlmostFull, byID["CS501"].Availability)
	assert.True(t, byID["PH101"].CanRegister)

	page, err = svc.Browse("STU001", models.CourseBrowseFilter{Credits: "5"})
	require.NoError(t, err)
	assert.Empty(t, page.Courses)

	_, err = svc.Browse("nobody", models.CourseBrowseFilter{})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
