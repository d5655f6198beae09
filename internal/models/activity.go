package models

import "time"

// ActivityKind classifies feed entries.
type ActivityKind string

const (
	ActivityRegistration ActivityKind = "registration"
	ActivityCourse       ActivityKind = "course"
	ActivityGrade        ActivityKind = "grade"
	ActivityStudent      ActivityKind = "student"
	ActivitySession      ActivityKind = "session"
)

// Icon names the glyph shown next to the entry.
func (k ActivityKind) Icon() string {
	switch k {
	case ActivityRegistration:
		return "user-plus"
	case ActivityCourse:
		return "book-open"
	case ActivityGrade:
		return "award"
	case ActivityStudent:
		return "users"
	case ActivitySession:
		return "log-in"
	}
	return "activity"
}

// Activity is one entry of the admin activity feed.
type Activity struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Message   string       `json:"message"`
	Subject   string       `json:"subject,omitempty"`
	Actor     string       `json:"actor,omitempty"`
	Icon      string       `json:"icon"`
	CreatedAt time.Time    `json:"createdAt"`
}
