package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/filter"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

var errStudentNotFound = appErrors.Clone(appErrors.ErrNotFound, "Student not found")

// studentActivityLimit caps the activity log on the student detail page.
const studentActivityLimit = 10

type activityLog interface {
	activityRecorder
	ForSubject(subject string, limit int) []models.Activity
}

// StudentService serves the admin student pages.
type StudentService struct {
	catalog  catalog
	activity activityLog
	logger   *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(c catalog, activity activityLog, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{catalog: c, activity: activity, logger: logger}
}

// List filters the student collection. Stats and facet options cover every student.
func (s *StudentService) List(f models.StudentFilter) dto.StudentList {
	all := s.catalog.ListStudents()
	return dto.StudentList{
		Students: filter.Apply(all, filter.Students(f)...),
		Stats:    filter.StudentStatsOf(all),
		Programs: filter.Programs(all),
		Years:    filter.Years(all),
	}
}

// Detail resolves a student by record id or student number.
func (s *StudentService) Detail(key string) (*dto.StudentDetail, error) {
	snap := s.catalog.Snapshot()
	student, ok := findStudent(snap.Students, key)
	if !ok {
		return nil, errStudentNotFound
	}

	courses := make(map[string]models.Course, len(snap.Courses))
	for _, c := range snap.Courses {
		courses[c.ID] = c
	}

	detail := &dto.StudentDetail{
		Student:        student,
		StatusTone:     student.Status.Tone(),
		GPATone:        models.GPATone(student.GPA),
		CurrentCourses: make([]models.Course, 0, len(student.RegisteredCourses)),
		GradeHistory:   gradeHistory(student, courses),
		Activity:       []models.Activity{},
	}
	for _, id := range student.RegisteredCourses {
		if c, ok := courses[id]; ok {
			detail.CurrentCourses = append(detail.CurrentCourses, c)
		}
	}
	if s.activity != nil {
		detail.Activity = s.activity.ForSubject(student.ID, studentActivityLimit)
	}
	return detail, nil
}

// SetStatus suspends or re-activates a student.
func (s *StudentService) SetStatus(_ context.Context, key string, status models.StudentStatus, actor string) (*models.Student, error) {
	var updated models.Student
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		student, ok := tx.Student(key)
		if !ok {
			return errStudentNotFound
		}
		student.Status = status
		tx.PutStudent(student)
		updated = student
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("student status changed", zap.String("student_id", updated.ID), zap.String("status", string(status)))
	s.record(fmt.Sprintf("%s is now %s", updated.Name, status), updated.ID, actor)
	return &updated, nil
}

// Delete removes a student record and returns it.
func (s *StudentService) Delete(_ context.Context, key, actor string) (*models.Student, error) {
	var removed models.Student
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		student, ok := tx.Student(key)
		if !ok {
			return errStudentNotFound
		}
		removed = student
		tx.DeleteStudent(student.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("student deleted", zap.String("student_id", removed.ID))
	s.record(fmt.Sprintf("Student record removed: %s", removed.Name), removed.ID, actor)
	return &removed, nil
}

func (s *StudentService) record(message, subject, actor string) {
	if s.activity != nil {
		s.activity.Record(models.ActivityStudent, message, subject, actor)
	}
}

func findStudent(students []models.Student, key string) (models.Student, bool) {
	for _, st := range students {
		if st.ID == key || st.StudentID == key {
			return st, true
		}
	}
	return models.Student{}, false
}

// gradeHistory lists recorded grades ordered by course id. Unknown courses keep their id as title.
func gradeHistory(student models.Student, courses map[string]models.Course) []dto.GradeEntry {
	out := make([]dto.GradeEntry, 0, len(student.Results))
	for courseID, grade := range student.Results {
		entry := dto.GradeEntry{
			CourseID:    courseID,
			CourseTitle: courseID,
			Grade:       grade.Grade,
			Points:      grade.Points,
			Semester:    grade.Semester,
		}
		if c, ok := courses[courseID]; ok {
			entry.CourseTitle = c.Title
			entry.Instructor = c.Instructor
			entry.Credits = c.Credits
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out
}
