package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// SeedRepository reads the initial catalog from PostgreSQL.
type SeedRepository struct {
	db *sqlx.DB
}

// NewSeedRepository constructs a SeedRepository.
func NewSeedRepository(db *sqlx.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

type courseRow struct {
	models.Course
	Prerequisites pq.StringArray `db:"prerequisites"`
}

type studentRow struct {
	models.Student
	RegisteredCourses pq.StringArray `db:"registered_courses"`
	CompletedCourses  pq.StringArray `db:"completed_courses"`
}

type gradeRow struct {
	StudentID string  `db:"student_id"`
	CourseID  string  `db:"course_id"`
	Grade     string  `db:"grade"`
	Points    float64 `db:"points"`
	Semester  string  `db:"semester"`
}

// Courses loads every course ordered by id.
func (r *SeedRepository) Courses(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, title, description, instructor, instructor_id, credits, capacity, enrolled, schedule, duration, room,
        start_date, end_date, department, level, status, prerequisites FROM courses ORDER BY id`
	var rows []courseRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select courses: %w", err)
	}
	courses := make([]models.Course, len(rows))
	for i, row := range rows {
		course := row.Course
		course.Prerequisites = append([]string{}, row.Prerequisites...)
		courses[i] = course
	}
	return courses, nil
}

// Students loads every student with their recorded grades.
func (r *SeedRepository) Students(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, student_id, name, email, phone, address, program, year, gpa, status, enrollment_date,
        expected_graduation, registered_courses, completed_courses FROM students ORDER BY id`
	var rows []studentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select students: %w", err)
	}

	const gradesQuery = `SELECT student_id, course_id, grade, points, semester FROM student_grades`
	var grades []gradeRow
	if err := r.db.SelectContext(ctx, &grades, gradesQuery); err != nil {
		return nil, fmt.Errorf("select student grades: %w", err)
	}
	byStudent := make(map[string]map[string]models.Grade, len(rows))
	for _, g := range grades {
		if byStudent[g.StudentID] == nil {
			byStudent[g.StudentID] = make(map[string]models.Grade)
		}
		byStudent[g.StudentID][g.CourseID] = models.Grade{Grade: g.Grade, Points: g.Points, Semester: g.Semester}
	}

	students := make([]models.Student, len(rows))
	for i, row := range rows {
		student := row.Student
		student.RegisteredCourses = append([]string{}, row.RegisteredCourses...)
		student.CompletedCourses = append([]string{}, row.CompletedCourses...)
		student.Results = byStudent[student.ID]
		if student.Results == nil {
			student.Results = map[string]models.Grade{}
		}
		students[i] = student
	}
	return students, nil
}

// Registrations loads every registration ordered by id.
func (r *SeedRepository) Registrations(ctx context.Context) ([]models.Registration, error) {
	const query = `SELECT id, student_id, student_name, course_id, course_title, status, date, semester FROM registrations ORDER BY id`
	var regs []models.Registration
	if err := r.db.SelectContext(ctx, &regs, query); err != nil {
		return nil, fmt.Errorf("select registrations: %w", err)
	}
	return regs, nil
}
