package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/filter"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

// defaultSemester labels results and registrations that carry no semester of their own.
const defaultSemester = "Spring 2025"

var errResultNotFound = appErrors.Clone(appErrors.ErrNotFound, "No registration found for this student and course")

// ResultService derives gradebook rows and records grades.
type ResultService struct {
	catalog  catalog
	activity activityRecorder
	metrics  *MetricsService
	semester string
	latency  time.Duration
	logger   *zap.Logger
}

// NewResultService constructs the result service.
func NewResultService(c catalog, activity activityRecorder, metrics *MetricsService, semester string, latency time.Duration, logger *zap.Logger) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if semester == "" {
		semester = defaultSemester
	}
	return &ResultService{
		catalog:  c,
		activity: recorderOrNop(activity),
		metrics:  metrics,
		semester: semester,
		latency:  latency,
		logger:   logger,
	}
}

// List joins non-rejected registrations with their student and course and applies the result facets.
func (s *ResultService) List(f models.ResultFilter) dto.ResultList {
	all := buildResults(s.catalog.Snapshot(), s.semester)
	return dto.ResultList{
		Results:   filter.Apply(all, filter.Results(f)...),
		Stats:     filter.ResultStatsOf(all),
		Courses:   filter.ResultCourses(all),
		Semesters: filter.ResultSemesters(all),
		Scale:     models.GradeScale,
	}
}

func buildResults(snap repository.Snapshot, semester string) []models.Result {
	students := make(map[string]models.Student, len(snap.Students))
	for _, st := range snap.Students {
		students[st.ID] = st
	}
	courses := make(map[string]models.Course, len(snap.Courses))
	for _, c := range snap.Courses {
		courses[c.ID] = c
	}

	out := make([]models.Result, 0, len(snap.Registrations))
	for _, reg := range snap.Registrations {
		if reg.Status == models.RegistrationRejected {
			continue
		}
		student, ok := students[reg.StudentID]
		if !ok {
			continue
		}
		course, ok := courses[reg.CourseID]
		if !ok {
			continue
		}
		result := models.Result{
			StudentID:     reg.StudentID,
			StudentNumber: student.StudentID,
			StudentName:   student.Name,
			CourseID:      course.ID,
			CourseName:    course.Title,
			Instructor:    course.Instructor,
			Credits:       course.Credits,
			Semester:      semester,
		}
		if grade, ok := student.Results[course.ID]; ok {
			g := grade
			result.Grade = &g
			if g.Semester != "" {
				result.Semester = g.Semester
			}
		}
		out = append(out, result)
	}
	return out
}

// SaveGrade records a grade for a registered student and recomputes the student's GPA.
// Points default to the canonical value of the letter and must match it when given.
func (s *ResultService) SaveGrade(ctx context.Context, studentKey, courseID string, req dto.GradeRequest, actor string) (*models.Result, error) {
	letter := strings.TrimSpace(req.Grade)
	points, ok := models.PointsFor(letter)
	if !ok {
		return nil, appErrors.Invalid(map[string]string{"grade": "Please select a valid grade"})
	}
	if req.Points != nil && (*req.Points-points > 1e-9 || points-*req.Points > 1e-9) {
		return nil, appErrors.Invalid(map[string]string{"points": fmt.Sprintf("Points for %s must be %.1f", letter, points)})
	}
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}

	var result models.Result
	err := s.catalog.Update(func(tx *repository.CatalogTx) error {
		student, ok := tx.Student(studentKey)
		if !ok {
			return errStudentNotFound
		}
		course, ok := tx.Course(courseID)
		if !ok {
			return errCourseNotFound
		}
		reg := activeRegistration(tx.Registrations(), student.ID, course.ID)
		if reg == nil {
			return errResultNotFound
		}

		semester := strings.TrimSpace(req.Semester)
		if semester == "" {
			if existing, ok := student.Results[course.ID]; ok && existing.Semester != "" {
				semester = existing.Semester
			} else {
				semester = s.semester
			}
		}
		grade := models.Grade{Grade: letter, Points: points, Semester: semester}
		student.Results[course.ID] = grade
		student.GPA = models.Round2(filter.GPA(student.Results, filter.CreditsLookup(tx.Courses())))
		tx.PutStudent(student)

		result = models.Result{
			StudentID:     student.ID,
			StudentNumber: student.StudentID,
			StudentName:   student.Name,
			CourseID:      course.ID,
			CourseName:    course.Title,
			Instructor:    course.Instructor,
			Credits:       course.Credits,
			Semester:      semester,
			Grade:         &grade,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordGradeSaved()
	s.logger.Info("grade saved",
		zap.String("student_id", result.StudentID),
		zap.String("course_id", result.CourseID),
		zap.String("grade", letter),
	)
	s.activity.Record(models.ActivityGrade,
		fmt.Sprintf("Grade %s recorded for %s in %s", letter, result.StudentName, result.CourseID),
		result.StudentID, actor)
	return &result, nil
}

// MyResults lists the student's completed and graded courses in catalog order.
// GPA and total credits cover every completed course; semester only narrows the listed rows.
func (s *ResultService) MyResults(studentKey, semester string) (*dto.MyResults, error) {
	snap := s.catalog.Snapshot()
	student, ok := findStudent(snap.Students, studentKey)
	if !ok {
		return nil, errStudentNotFound
	}

	out := &dto.MyResults{Courses: []dto.CompletedCourse{}, Semesters: []string{}, Scale: models.GradeScale}
	var qualityPoints float64
	seen := make(map[string]struct{})
	for _, c := range snap.Courses {
		grade, graded := student.Results[c.ID]
		if !student.HasCompleted(c.ID) || !graded {
			continue
		}
		out.TotalCredits += c.Credits
		qualityPoints += grade.Points * float64(c.Credits)
		if _, ok := seen[grade.Semester]; !ok {
			seen[grade.Semester] = struct{}{}
			out.Semesters = append(out.Semesters, grade.Semester)
		}
		if !filter.Off(semester) && grade.Semester != semester {
			continue
		}
		out.Courses = append(out.Courses, dto.CompletedCourse{
			CourseID:      c.ID,
			Title:         c.Title,
			Instructor:    c.Instructor,
			Credits:       c.Credits,
			Grade:         grade.Grade,
			Points:        grade.Points,
			QualityPoints: models.Round2(grade.Points * float64(c.Credits)),
			Semester:      grade.Semester,
			Tone:          models.PointsTone(grade.Points),
		})
	}
	if out.TotalCredits > 0 {
		out.GPA = models.Round2(qualityPoints / float64(out.TotalCredits))
	}
	sort.Strings(out.Semesters)
	return out, nil
}
