package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/filter"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

var (
	errRegistrationNotFound = appErrors.Clone(appErrors.ErrNotFound, "Registration not found")
	errApproveFull          = appErrors.Clone(appErrors.ErrCapacityExceeded, "Cannot approve: Course is at full capacity")
	errNotRegistered        = appErrors.Clone(appErrors.ErrNotFound, "You are not registered for this course")
)

// Registration actions offered on the admin detail view.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionCancel  = "cancel"
)

// RegistrationService runs the registration lifecycle for both portals.
type RegistrationService struct {
	catalog  catalog
	activity activityRecorder
	metrics  *MetricsService
	semester string
	logger   *zap.Logger
	now      func() time.Time
}

// NewRegistrationService constructs the registration service. semester labels new registrations.
func NewRegistrationService(c catalog, activity activityRecorder, metrics *MetricsService, semester string, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if semester == "" {
		semester = defaultSemester
	}
	return &RegistrationService{
		catalog:  c,
		activity: recorderOrNop(activity),
		metrics:  metrics,
		semester: semester,
		logger:   logger,
		now:      time.Now,
	}
}

// List filters registrations for the admin page. Stats and facets cover every registration.
func (s *RegistrationService) List(f models.RegistrationFilter) dto.RegistrationList {
	all := s.catalog.ListRegistrations()
	return dto.RegistrationList{
		Registrations: filter.Apply(all, filter.Registrations(f)...),
		Stats:         filter.RegistrationStatsOf(all),
		Courses:       filter.RegistrationCourses(all),
		Statuses:      filter.RegistrationStatuses(all),
	}
}

// Get returns a registration with its live course and the actions its status allows.
func (s *RegistrationService) Get(id string) (*dto.RegistrationDetail, error) {
	reg, ok := s.catalog.FindRegistration(id)
	if !ok {
		return nil, errRegistrationNotFound
	}
	detail := &dto.RegistrationDetail{
		Registration: reg,
		StatusTone:   reg.Status.Tone(),
		StatusIcon:   reg.Status.Icon(),
		Actions:      actionsFor(reg.Status),
	}
	if course, ok := s.catalog.FindCourse(reg.CourseID); ok {
		detail.Course = &course
	}
	return detail, nil
}

func actionsFor(status models.RegistrationStatus) []string {
	switch status {
	case models.RegistrationPending, models.RegistrationWaitlisted:
		return []string{ActionApprove, ActionReject}
	case models.RegistrationConfirmed:
		return []string{ActionCancel}
	}
	return []string{}
}

// Approve confirms a pending or waitlisted registration. The live course must have a free seat.
func (s *RegistrationService) Approve(_ context.Context, id, actor string) (*models.Registration, error) {
	var approved models.Registration
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		reg, ok := tx.Registration(id)
		if !ok {
			return errRegistrationNotFound
		}
		if !reg.Status.CanTransition(models.RegistrationConfirmed) {
			return transitionError(reg.Status, models.RegistrationConfirmed)
		}
		course, ok := tx.Course(reg.CourseID)
		if !ok {
			return errCourseNotFound
		}
		if course.Enrolled >= course.Capacity {
			return errApproveFull
		}
		course.Enrolled++
		tx.PutCourse(course)
		if student, ok := tx.Student(reg.StudentID); ok && !student.IsRegistered(course.ID) {
			student.RegisteredCourses = append(student.RegisteredCourses, course.ID)
			tx.PutStudent(student)
		}
		reg.Status = models.RegistrationConfirmed
		tx.PutRegistration(reg)
		approved = reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.transitioned(approved, fmt.Sprintf("Registration approved: %s in %s", approved.StudentName, approved.CourseID), actor)
	return &approved, nil
}

// Reject declines a pending or waitlisted registration.
func (s *RegistrationService) Reject(_ context.Context, id, actor string) (*models.Registration, error) {
	reg, err := s.release(id, func(status models.RegistrationStatus) bool {
		return status == models.RegistrationPending || status == models.RegistrationWaitlisted
	})
	if err != nil {
		return nil, err
	}
	s.transitioned(*reg, fmt.Sprintf("Registration rejected: %s in %s", reg.StudentName, reg.CourseID), actor)
	return reg, nil
}

// Cancel withdraws a confirmed registration and frees its seat.
func (s *RegistrationService) Cancel(_ context.Context, id, actor string) (*models.Registration, error) {
	reg, err := s.release(id, func(status models.RegistrationStatus) bool {
		return status == models.RegistrationConfirmed
	})
	if err != nil {
		return nil, err
	}
	s.transitioned(*reg, fmt.Sprintf("Registration cancelled: %s in %s", reg.StudentName, reg.CourseID), actor)
	return reg, nil
}

// release moves a registration to rejected when allowed accepts its current status.
func (s *RegistrationService) release(id string, allowed func(models.RegistrationStatus) bool) (*models.Registration, error) {
	var out models.Registration
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		reg, ok := tx.Registration(id)
		if !ok {
			return errRegistrationNotFound
		}
		if !allowed(reg.Status) || !reg.Status.CanTransition(models.RegistrationRejected) {
			return transitionError(reg.Status, models.RegistrationRejected)
		}
		rejectRegistration(tx, reg)
		reg.Status = models.RegistrationRejected
		out = reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// rejectRegistration marks reg rejected. A confirmed seat is given back and the course leaves the student's registered set.
func rejectRegistration(tx *repository.CatalogTx, reg models.Registration) {
	if reg.Status == models.RegistrationConfirmed {
		if course, ok := tx.Course(reg.CourseID); ok {
			course.Enrolled--
			if course.Enrolled < 0 {
				course.Enrolled = 0
			}
			tx.PutCourse(course)
		}
		if student, ok := tx.Student(reg.StudentID); ok {
			student.RegisteredCourses = without(student.RegisteredCourses, reg.CourseID)
			tx.PutStudent(student)
		}
	}
	reg.Status = models.RegistrationRejected
	tx.PutRegistration(reg)
}

// Register files a pending registration for the student after the duplicate, prerequisite and capacity checks.
func (s *RegistrationService) Register(_ context.Context, studentKey, courseID, actor string) (*models.Registration, error) {
	var created models.Registration
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		student, ok := tx.Student(studentKey)
		if !ok {
			return errStudentNotFound
		}
		course, ok := tx.Course(courseID)
		if !ok {
			return errCourseNotFound
		}
		if student.IsRegistered(course.ID) || activeRegistration(tx.Registrations(), student.ID, course.ID) != nil {
			return appErrors.ErrDuplicateRegistration
		}
		var missing []string
		for _, prereq := range course.Prerequisites {
			if !student.HasCompleted(prereq) {
				missing = append(missing, prereq)
			}
		}
		if len(missing) > 0 {
			return appErrors.Clone(appErrors.ErrMissingPrerequisite, "Missing prerequisites: "+strings.Join(missing, ", "))
		}
		if course.Enrolled >= course.Capacity {
			return appErrors.ErrCapacityExceeded
		}
		created = models.Registration{
			ID:          uuid.NewString(),
			StudentID:   student.ID,
			StudentName: student.Name,
			CourseID:    course.ID,
			CourseTitle: course.Title,
			Status:      models.RegistrationPending,
			Date:        s.now().Format("2006-01-02"),
			Semester:    s.semester,
		}
		tx.PutRegistration(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.transitioned(created, fmt.Sprintf("New registration: %s for %s", created.StudentName, created.CourseID), actor)
	return &created, nil
}

// Drop removes a course from the student's registrations and returns the course.
func (s *RegistrationService) Drop(_ context.Context, studentKey, courseID, actor string) (*models.Course, error) {
	var (
		course    models.Course
		studentID string
		dropped   *models.Registration
	)
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		student, ok := tx.Student(studentKey)
		if !ok {
			return errStudentNotFound
		}
		studentID = student.ID
		c, ok := tx.Course(courseID)
		if !ok {
			return errCourseNotFound
		}
		course = c
		reg := activeRegistration(tx.Registrations(), student.ID, courseID)
		if reg == nil && !student.IsRegistered(courseID) {
			return errNotRegistered
		}
		if reg != nil {
			rejectRegistration(tx, *reg)
			r := *reg
			r.Status = models.RegistrationRejected
			dropped = &r
		}
		// registrations seeded without a record still leave the registered set
		if student, ok := tx.Student(studentKey); ok && student.IsRegistered(courseID) {
			student.RegisteredCourses = without(student.RegisteredCourses, courseID)
			tx.PutStudent(student)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if dropped != nil {
		s.metrics.RecordRegistration(models.RegistrationRejected)
	}
	s.activity.Record(models.ActivityRegistration, fmt.Sprintf("Course dropped: %s", course.ID), studentID, actor)
	return &course, nil
}

// Mine lists the student's registered courses and open requests.
func (s *RegistrationService) Mine(studentKey string) (*dto.MyRegistrations, error) {
	snap := s.catalog.Snapshot()
	student, ok := findStudent(snap.Students, studentKey)
	if !ok {
		return nil, errStudentNotFound
	}
	out := &dto.MyRegistrations{Courses: []models.Course{}, Pending: []models.Registration{}}
	for _, c := range snap.Courses {
		if student.IsRegistered(c.ID) {
			out.Courses = append(out.Courses, c)
			out.TotalCredits += c.Credits
		}
	}
	for _, reg := range snap.Registrations {
		if reg.StudentID != student.ID {
			continue
		}
		if reg.Status == models.RegistrationPending || reg.Status == models.RegistrationWaitlisted {
			out.Pending = append(out.Pending, reg)
		}
	}
	return out, nil
}

func (s *RegistrationService) transitioned(reg models.Registration, message, actor string) {
	s.metrics.RecordRegistration(reg.Status)
	s.logger.Info("registration transitioned",
		zap.String("registration_id", reg.ID),
		zap.String("status", string(reg.Status)),
		zap.String("actor", actor),
	)
	s.activity.Record(models.ActivityRegistration, message, reg.StudentID, actor)
}

func transitionError(from, to models.RegistrationStatus) error {
	return appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("Registration cannot move from %s to %s", from, to))
}

func activeRegistration(regs []models.Registration, studentID, courseID string) *models.Registration {
	for i := range regs {
		if regs[i].StudentID == studentID && regs[i].CourseID == courseID && regs[i].Status != models.RegistrationRejected {
			reg := regs[i]
			return &reg
		}
	}
	return nil
}

func without(set []string, v string) []string {
	out := make([]string, 0, len(set))
	for _, item := range set {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
