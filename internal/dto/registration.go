package dto

import "github.com/noah-isme/campus-portal-api/internal/models"

// RegistrationList is the admin registrations page.
type RegistrationList struct {
	Registrations []models.Registration    `json:"registrations"`
	Stats         models.RegistrationStats `json:"stats"`
	Courses       []string                 `json:"courses"`
	Statuses      []string                 `json:"statuses"`
}

// RegistrationDetail is a registration with its live course.
type RegistrationDetail struct {
	models.Registration
	Course     *models.Course `json:"course,omitempty"`
	StatusTone models.Tone    `json:"statusTone"`
	StatusIcon string         `json:"statusIcon"`
	Actions    []string       `json:"actions"`
}

// MyRegistrations lists the courses a student is registered for.
type MyRegistrations struct {
	Courses      []models.Course       `json:"courses"`
	TotalCredits int                   `json:"totalCredits"`
	Pending      []models.Registration `json:"pending"`
}
