package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

func newSeedMock(t *testing.T) (*SeedRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSeedRepository(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func TestSeedRepositoryCourses(t *testing.T) {
	repo, mock, cleanup := newSeedMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "title", "description", "instructor", "instructor_id", "credits", "capacity", "enrolled", "schedule", "duration", "room", "start_date", "end_date", "department", "level", "status", "prerequisites"}).
		AddRow("CS201", "Data Structures", "Trees and graphs", "Dr. Chen", "INS002", 4, 25, 20, "Tue", "16 weeks", "204", "2025-01-15", "2025-05-15", "Computer Science", "Undergraduate", "active", "{CS101,MA101}")
	mock.ExpectQuery("SELECT id, title, description .* FROM courses ORDER BY id").WillReturnRows(rows)

	courses, err := repo.Courses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, []string{"CS101", "MA101"}, courses[0].Prerequisites)
	assert.Equal(t, models.CourseActive, courses[0].Status)
	assert.Equal(t, models.LevelUndergraduate, courses[0].Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRepositoryStudentsAttachesGrades(t *testing.T) {
	repo, mock, cleanup := newSeedMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "student_id", "name", "email", "phone", "address", "program", "year", "gpa", "status", "enrollment_date", "expected_graduation", "registered_courses", "completed_courses"}).
		AddRow("STU001", "STU2024001", "Alice Johnson", "alice@uni.edu", "555", "Street", "Computer Science", 2, 3.6, "active", "2023-09-01", "2027-05-15", "{CS201}", "{CS101}").
		AddRow("STU002", "STU2024002", "Bob Williams", "bob@uni.edu", "555", "Street", "Mathematics", 3, 0.0, "suspended", "2022-09-01", "2026-05-15", "{}", "{}")
	mock.ExpectQuery("SELECT id, student_id, name .* FROM students ORDER BY id").WillReturnRows(rows)
	mock.ExpectQuery("SELECT student_id, course_id, grade, points, semester FROM student_grades").
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "course_id", "grade", "points", "semester"}).
			AddRow("STU001", "CS101", "A", 4.0, "Fall 2024"))

	students, err := repo.Students(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, models.Grade{Grade: "A", Points: 4.0, Semester: "Fall 2024"}, students[0].Results["CS101"])
	assert.Equal(t, []string{"CS201"}, students[0].RegisteredCourses)
	assert.NotNil(t, students[1].Results)
	assert.Empty(t, students[1].RegisteredCourses)
	assert.Equal(t, models.StudentSuspended, students[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRepositoryRegistrationsError(t *testing.T) {
	repo, mock, cleanup := newSeedMock(t)
	defer cleanup()

	mock.ExpectQuery("FROM registrations").WillReturnError(errors.New("connection reset"))

	_, err := repo.Registrations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select registrations")
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingSource struct {
	FixtureRepository
}

func (failingSource) Students(context.Context) ([]models.Student, error) {
	return nil, errors.New("unavailable")
}

func TestLoadSnapshotPropagatesFirstError(t *testing.T) {
	_, err := LoadSnapshot(context.Background(), failingSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load students")

	snap, err := LoadSnapshot(context.Background(), NewFixtureRepository())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Courses)
	assert.NotEmpty(t, snap.Students)
	assert.NotEmpty(t, snap.Registrations)
}
