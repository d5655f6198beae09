package dto

import "github.com/noah-isme/campus-portal-api/internal/models"

// AdminStats are the headline counters of the admin dashboard.
type AdminStats struct {
	TotalCourses       int `json:"totalCourses"`
	TotalStudents      int `json:"totalStudents"`
	TotalRegistrations int `json:"totalRegistrations"`
	ActiveInstructors  int `json:"activeInstructors"`
}

// QuickLink is a shortcut tile.
type QuickLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// AdminDashboard is the admin landing page.
type AdminDashboard struct {
	Stats          AdminStats        `json:"stats"`
	RecentActivity []models.Activity `json:"recentActivity"`
	QuickLinks     []QuickLink       `json:"quickLinks"`
}

// UpcomingClass is a registered course with its start time.
type UpcomingClass struct {
	Course models.Course `json:"course"`
	Time   string        `json:"time"`
}

// RecentGrade is a recorded grade with its course title.
type RecentGrade struct {
	CourseID   string       `json:"courseId"`
	CourseName string       `json:"courseName"`
	Grade      models.Grade `json:"grade"`
	Tone       models.Tone  `json:"tone"`
}

// StudentNotice is an entry of the student notification panel.
type StudentNotice struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// StudentDashboard is the student landing page.
type StudentDashboard struct {
	GPA              float64         `json:"gpa"`
	EnrolledCourses  int             `json:"enrolledCourses"`
	CompletedCredits int             `json:"completedCredits"`
	Year             int             `json:"year"`
	UpcomingClasses  []UpcomingClass `json:"upcomingClasses"`
	RecentGrades     []RecentGrade   `json:"recentGrades"`
	Notifications    []StudentNotice `json:"notifications"`
}
