package dto

import "github.com/noah-isme/campus-portal-api/internal/models"

// StudentList is the admin students page.
type StudentList struct {
	Students []models.Student    `json:"students"`
	Stats    models.StudentStats `json:"stats"`
	Programs []string            `json:"programs"`
	Years    []int               `json:"years"`
}

// GradeEntry is one row of a student's grade history.
type GradeEntry struct {
	CourseID    string  `json:"courseId"`
	CourseTitle string  `json:"courseTitle"`
	Instructor  string  `json:"instructor"`
	Credits     int     `json:"credits"`
	Grade       string  `json:"grade"`
	Points      float64 `json:"points"`
	Semester    string  `json:"semester"`
}

// StudentDetail is the admin view of a single student.
type StudentDetail struct {
	Student        models.Student    `json:"student"`
	StatusTone     models.Tone       `json:"statusTone"`
	GPATone        models.Tone       `json:"gpaTone"`
	CurrentCourses []models.Course   `json:"currentCourses"`
	GradeHistory   []GradeEntry      `json:"gradeHistory"`
	Activity       []models.Activity `json:"activity"`
}

// ProfileRequest edits the personal details of the signed in student.
type ProfileRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PasswordChangeRequest changes the password of the signed in user.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// DegreeProgress tracks earned credits against the degree requirement.
type DegreeProgress struct {
	CompletedCredits int     `json:"completedCredits"`
	CurrentCredits   int     `json:"currentCredits"`
	RequiredCredits  int     `json:"requiredCredits"`
	Percent          float64 `json:"percent"`
}

// Profile is the signed in user's profile page.
type Profile struct {
	User     models.User     `json:"user"`
	Student  *models.Student `json:"student,omitempty"`
	Progress *DegreeProgress `json:"progress,omitempty"`
}
