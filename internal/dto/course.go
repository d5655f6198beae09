package dto

import "github.com/noah-isme/campus-portal-api/internal/models"

// CourseRequest is the payload of the course create and edit forms.
type CourseRequest struct {
	ID            string              `json:"id" validate:"required,coursecode"`
	Title         string              `json:"title" validate:"required,min=3"`
	Description   string              `json:"description" validate:"required,min=20"`
	Instructor    string              `json:"instructor" validate:"required"`
	InstructorID  string              `json:"instructorId"`
	Credits       int                 `json:"credits" validate:"required,min=1,max=6"`
	Capacity      int                 `json:"capacity" validate:"required,min=5,max=200"`
	Schedule      string              `json:"schedule"`
	Duration      string              `json:"duration"`
	Room          string              `json:"room"`
	StartDate     string              `json:"startDate"`
	EndDate       string              `json:"endDate"`
	Department    string              `json:"department" validate:"required"`
	Level         models.CourseLevel  `json:"level" validate:"omitempty,oneof=Undergraduate Graduate"`
	Status        models.CourseStatus `json:"status" validate:"omitempty,oneof=active inactive draft"`
	Prerequisites []string            `json:"prerequisites" validate:"omitempty,dive,coursecode"`
}

// InstructorOption is a selectable instructor of the course form.
type InstructorOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// CourseForm prefills the create or edit form.
type CourseForm struct {
	Mode        string             `json:"mode"`
	Title       string             `json:"title"`
	Subtitle    string             `json:"subtitle"`
	Values      CourseRequest      `json:"values"`
	IDLocked    bool               `json:"idLocked"`
	Departments []string           `json:"departments"`
	Instructors []InstructorOption `json:"instructors"`
	Levels      []string           `json:"levels"`
	Statuses    []string           `json:"statuses"`
	Courses     []string           `json:"courses"`
}

// CourseCard is a course with its derived enrollment indicators.
type CourseCard struct {
	models.Course
	EnrollmentPercent float64                `json:"enrollmentPercent"`
	EnrollmentLevel   models.EnrollmentLevel `json:"enrollmentLevel"`
	EnrollmentTone    models.Tone            `json:"enrollmentTone"`
	StatusTone        models.Tone            `json:"statusTone"`
}

// BrowseCourse is a course as shown in the student browser.
type BrowseCourse struct {
	models.Course
	EnrollmentPercent float64             `json:"enrollmentPercent"`
	Availability      models.Availability `json:"availability"`
	AvailabilityTone  models.Tone         `json:"availabilityTone"`
	Registered        bool                `json:"registered"`
	CanRegister       bool                `json:"canRegister"`
}

// CourseBrowse is the student course browser page.
type CourseBrowse struct {
	Courses     []BrowseCourse `json:"courses"`
	Departments []string       `json:"departments"`
	Available   int            `json:"available"`
	Registered  int            `json:"registered"`
	Total       int            `json:"total"`
}

// CourseList is the admin course catalog page.
type CourseList struct {
	Courses     []CourseCard       `json:"courses"`
	Stats       models.CourseStats `json:"stats"`
	Departments []string           `json:"departments"`
	Statuses    []string           `json:"statuses"`
}
