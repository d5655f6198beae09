package dto

import "github.com/noah-isme/campus-portal-api/internal/models"

// GradeRequest records a grade. Points default to the canonical value of the letter.
type GradeRequest struct {
	Grade    string   `json:"grade" validate:"required"`
	Points   *float64 `json:"points"`
	Semester string   `json:"semester"`
}

// ResultList is the admin results page.
type ResultList struct {
	Results   []models.Result      `json:"results"`
	Stats     models.ResultStats   `json:"stats"`
	Courses   []string             `json:"courses"`
	Semesters []string             `json:"semesters"`
	Scale     []models.GradeOption `json:"gradeScale"`
}

// CompletedCourse is one line of a student's own results.
type CompletedCourse struct {
	CourseID      string      `json:"courseId"`
	Title         string      `json:"title"`
	Instructor    string      `json:"instructor"`
	Credits       int         `json:"credits"`
	Grade         string      `json:"grade"`
	Points        float64     `json:"points"`
	QualityPoints float64     `json:"qualityPoints"`
	Semester      string      `json:"semester"`
	Tone          models.Tone `json:"tone"`
}

// MyResults is the student results page.
type MyResults struct {
	Courses      []CompletedCourse    `json:"courses"`
	TotalCredits int                  `json:"totalCredits"`
	GPA          float64              `json:"gpa"`
	Semesters    []string             `json:"semesters"`
	Scale        []models.GradeOption `json:"gradeScale"`
}
