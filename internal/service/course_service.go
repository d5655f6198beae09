package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/filter"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

// Course form defaults for a new offering.
const (
	defaultCredits  = 3
	defaultCapacity = 30
	defaultDuration = "16 weeks"
)

var errCourseNotFound = appErrors.Clone(appErrors.ErrNotFound, "Course not found")

// CourseService manages the course catalog for administrators and the student browser.
type CourseService struct {
	catalog   catalog
	validator *validator.Validate
	activity  activityRecorder
	latency   time.Duration
	logger    *zap.Logger
}

// NewCourseService constructs the course service. latency delays saves the way the mock backend does.
func NewCourseService(c catalog, validate *validator.Validate, activity activityRecorder, latency time.Duration, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{catalog: c, validator: validate, activity: recorderOrNop(activity), latency: latency, logger: logger}
}

// List filters the catalog for the admin course page.
func (s *CourseService) List(f models.CourseFilter) dto.CourseList {
	all := s.catalog.ListCourses()
	visible := filter.Apply(all, filter.Courses(f)...)
	cards := make([]dto.CourseCard, len(visible))
	for i, c := range visible {
		cards[i] = courseCard(c)
	}
	return dto.CourseList{
		Courses:     cards,
		Stats:       filter.CourseStatsOf(all),
		Departments: filter.Departments(all),
		Statuses:    []string{string(models.CourseActive), string(models.CourseInactive), string(models.CourseDraft)},
	}
}

// Get returns one course with its enrollment indicators.
func (s *CourseService) Get(id string) (*dto.CourseCard, error) {
	course, ok := s.catalog.FindCourse(id)
	if !ok {
		return nil, errCourseNotFound
	}
	card := courseCard(course)
	return &card, nil
}

// Form prefills the create form when id is empty and the edit form otherwise.
func (s *CourseService) Form(id string) (*dto.CourseForm, error) {
	courses := s.catalog.ListCourses()
	form := &dto.CourseForm{
		Departments: filter.Departments(courses),
		Instructors: instructorOptions(courses),
		Levels:      []string{string(models.LevelUndergraduate), string(models.LevelGraduate)},
		Statuses:    []string{string(models.CourseActive), string(models.CourseInactive), string(models.CourseDraft)},
		Courses:     filter.Unique(courses, func(c models.Course) string { return c.ID }),
	}
	if id == "" {
		form.Mode = "create"
		form.Title = "Create New Course"
		form.Subtitle = "Fill out the form below to create a new course offering"
		form.Values = dto.CourseRequest{
			Credits:       defaultCredits,
			Capacity:      defaultCapacity,
			Duration:      defaultDuration,
			Level:         models.LevelUndergraduate,
			Status:        models.CourseActive,
			Prerequisites: []string{},
		}
		return form, nil
	}

	course, ok := s.catalog.FindCourse(id)
	if !ok {
		return nil, errCourseNotFound
	}
	form.Mode = "edit"
	form.Title = "Edit Course"
	form.Subtitle = fmt.Sprintf("Update details for %s", course.Title)
	form.IDLocked = true
	form.Values = courseRequest(course)
	return form, nil
}

// Create validates the payload, waits out the simulated save and appends the course.
func (s *CourseService) Create(ctx context.Context, req dto.CourseRequest, actor string) (*models.Course, error) {
	req = normaliseCourseRequest(req)
	if err := validate(s.validator, req, courseMessages); err != nil {
		return nil, err
	}
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}

	var created models.Course
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		if _, exists := tx.Course(req.ID); exists {
			return appErrors.Invalid(map[string]string{"id": "A course with this code already exists"})
		}
		if missing := unknownCourses(tx, req.Prerequisites); len(missing) > 0 {
			return appErrors.Invalid(map[string]string{"prerequisites": "Unknown prerequisite: " + strings.Join(missing, ", ")})
		}
		created = applyCourseRequest(models.Course{}, req)
		if created.InstructorID == "" {
			created.InstructorID = instructorID(tx.Courses(), created.Instructor)
		}
		tx.PutCourse(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course created", zap.String("course_id", created.ID))
	s.activity.Record(models.ActivityCourse, fmt.Sprintf("New course created: %s", created.Title), created.ID, actor)
	return &created, nil
}

// Update edits a course. The code is immutable and capacity may not drop below current enrollment.
func (s *CourseService) Update(ctx context.Context, id string, req dto.CourseRequest, actor string) (*models.Course, error) {
	req.ID = id
	req = normaliseCourseRequest(req)
	if err := validate(s.validator, req, courseMessages); err != nil {
		return nil, err
	}
	if _, ok := s.catalog.FindCourse(id); !ok {
		return nil, errCourseNotFound
	}
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}

	var updated models.Course
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		current, ok := tx.Course(id)
		if !ok {
			return errCourseNotFound
		}
		if req.Capacity < current.Enrolled {
			return appErrors.Invalid(map[string]string{
				"capacity": fmt.Sprintf("Capacity cannot be below current enrollment (%d)", current.Enrolled),
			})
		}
		for _, prereq := range req.Prerequisites {
			if prereq == id {
				return appErrors.Invalid(map[string]string{"prerequisites": "A course cannot require itself"})
			}
		}
		if missing := unknownCourses(tx, req.Prerequisites); len(missing) > 0 {
			return appErrors.Invalid(map[string]string{"prerequisites": "Unknown prerequisite: " + strings.Join(missing, ", ")})
		}
		updated = applyCourseRequest(current, req)
		if updated.InstructorID == "" || updated.Instructor != current.Instructor {
			updated.InstructorID = instructorID(tx.Courses(), updated.Instructor)
		}
		tx.PutCourse(updated)
		if updated.Title != current.Title {
			for _, reg := range tx.Registrations() {
				if reg.CourseID == id {
					reg.CourseTitle = updated.Title
					tx.PutRegistration(reg)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course updated", zap.String("course_id", id))
	s.activity.Record(models.ActivityCourse, fmt.Sprintf("Course updated: %s", updated.Title), id, actor)
	return &updated, nil
}

// Delete removes a course from the catalog and returns the removed record.
func (s *CourseService) Delete(ctx context.Context, id, actor string) (*models.Course, error) {
	var removed models.Course
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		course, ok := tx.Course(id)
		if !ok {
			return errCourseNotFound
		}
		removed = course
		tx.DeleteCourse(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("course deleted", zap.String("course_id", id))
	s.activity.Record(models.ActivityCourse, fmt.Sprintf("Course deleted: %s", removed.Title), id, actor)
	return &removed, nil
}

// Browse lists courses for a student with availability badges and registration eligibility.
func (s *CourseService) Browse(studentKey string, f models.CourseBrowseFilter) (*dto.CourseBrowse, error) {
	student, ok := s.catalog.FindStudent(studentKey)
	if !ok {
		return nil, errStudentNotFound
	}
	all := s.catalog.ListCourses()
	visible := filter.Apply(all, filter.BrowseCourses(f)...)
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = filter.SortTitle
	}
	filter.SortCourses(visible, sortBy, f.SortOrder)

	out := &dto.CourseBrowse{
		Courses:     make([]dto.BrowseCourse, len(visible)),
		Departments: filter.Departments(all),
		Total:       len(all),
	}
	for i, c := range visible {
		registered := student.IsRegistered(c.ID)
		availability := filter.AvailabilityOf(c)
		out.Courses[i] = dto.BrowseCourse{
			Course:            c,
			EnrollmentPercent: models.Round2(filter.EnrollmentPercentage(c)),
			Availability:      availability,
			AvailabilityTone:  availability.Tone(),
			Registered:        registered,
			CanRegister:       !registered && !filter.IsFull(c),
		}
		if !filter.IsFull(c) {
			out.Available++
		}
	}
	for _, c := range all {
		if student.IsRegistered(c.ID) {
			out.Registered++
		}
	}
	return out, nil
}

func courseCard(c models.Course) dto.CourseCard {
	level := filter.EnrollmentLevelOf(c)
	return dto.CourseCard{
		Course:            c,
		EnrollmentPercent: models.Round2(filter.EnrollmentPercentage(c)),
		EnrollmentLevel:   level,
		EnrollmentTone:    level.Tone(),
		StatusTone:        c.Status.Tone(),
	}
}

func courseRequest(c models.Course) dto.CourseRequest {
	return dto.CourseRequest{
		ID: c.ID, Title: c.Title, Description: c.Description,
		Instructor: c.Instructor, InstructorID: c.InstructorID,
		Credits: c.Credits, Capacity: c.Capacity,
		Schedule: c.Schedule, Duration: c.Duration, Room: c.Room,
		StartDate: c.StartDate, EndDate: c.EndDate,
		Department: c.Department, Level: c.Level, Status: c.Status,
		Prerequisites: append([]string{}, c.Prerequisites...),
	}
}

func normaliseCourseRequest(req dto.CourseRequest) dto.CourseRequest {
	req.ID = strings.TrimSpace(req.ID)
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Instructor = strings.TrimSpace(req.Instructor)
	req.Department = strings.TrimSpace(req.Department)
	if req.Level == "" {
		req.Level = models.LevelUndergraduate
	}
	if req.Status == "" {
		req.Status = models.CourseActive
	}
	prereqs := make([]string, 0, len(req.Prerequisites))
	for _, p := range req.Prerequisites {
		if p = strings.TrimSpace(p); p != "" {
			prereqs = append(prereqs, p)
		}
	}
	req.Prerequisites = prereqs
	return req
}

func applyCourseRequest(c models.Course, req dto.CourseRequest) models.Course {
	c.ID = req.ID
	c.Title = req.Title
	c.Description = req.Description
	c.Instructor = req.Instructor
	if req.InstructorID != "" {
		c.InstructorID = req.InstructorID
	}
	c.Credits = req.Credits
	c.Capacity = req.Capacity
	c.Schedule = req.Schedule
	c.Duration = req.Duration
	c.Room = req.Room
	c.StartDate = req.StartDate
	c.EndDate = req.EndDate
	c.Department = req.Department
	c.Level = req.Level
	c.Status = req.Status
	c.Prerequisites = append([]string{}, req.Prerequisites...)
	return c
}

func unknownCourses(tx *repository.CatalogTx, ids []string) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := tx.Course(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// instructorID reuses the id of a known instructor or derives one from the name.
func instructorID(courses []models.Course, name string) string {
	for _, c := range courses {
		if c.Instructor == name && c.InstructorID != "" {
			return c.InstructorID
		}
	}
	return "INS-" + strings.ToUpper(strings.Join(strings.Fields(name), "-"))
}

func instructorOptions(courses []models.Course) []dto.InstructorOption {
	seen := make(map[string]struct{})
	out := make([]dto.InstructorOption, 0)
	for _, c := range courses {
		if _, ok := seen[c.InstructorID]; ok || c.InstructorID == "" {
			continue
		}
		seen[c.InstructorID] = struct{}{}
		out = append(out, dto.InstructorOption{ID: c.InstructorID, Name: c.Instructor, Department: c.Department})
	}
	return out
}
