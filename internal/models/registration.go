package models

// RegistrationStatus is a state of the registration approval lifecycle.
type RegistrationStatus string

const (
	RegistrationPending    RegistrationStatus = "pending"
	RegistrationConfirmed  RegistrationStatus = "confirmed"
	RegistrationRejected   RegistrationStatus = "rejected"
	RegistrationWaitlisted RegistrationStatus = "waitlisted"
)

// Tone maps the status to its badge colour.
func (s RegistrationStatus) Tone() Tone {
	switch s {
	case RegistrationConfirmed:
		return ToneGreen
	case RegistrationPending:
		return ToneYellow
	case RegistrationRejected:
		return ToneRed
	case RegistrationWaitlisted:
		return ToneBlue
	}
	return ToneGray
}

// Icon names the status glyph.
func (s RegistrationStatus) Icon() string {
	switch s {
	case RegistrationConfirmed:
		return "check-circle"
	case RegistrationPending:
		return "clock"
	case RegistrationRejected:
		return "x-circle"
	case RegistrationWaitlisted:
		return "alert-circle"
	}
	return "alert-circle"
}

// CanTransition reports whether the lifecycle allows moving from s to next.
func (s RegistrationStatus) CanTransition(next RegistrationStatus) bool {
	switch s {
	case RegistrationPending, RegistrationWaitlisted:
		return next == RegistrationConfirmed || next == RegistrationRejected
	case RegistrationConfirmed:
		return next == RegistrationRejected
	case RegistrationRejected:
		return false
	}
	return false
}

// Registration is a student's request to enrol in a course.
type Registration struct {
	ID          string             `db:"id" json:"id"`
	StudentID   string             `db:"student_id" json:"studentId"`
	StudentName string             `db:"student_name" json:"studentName"`
	CourseID    string             `db:"course_id" json:"courseId"`
	CourseTitle string             `db:"course_title" json:"courseTitle"`
	Status      RegistrationStatus `db:"status" json:"status"`
	Date        string             `db:"date" json:"date"`
	Semester    string             `db:"semester" json:"semester"`
}

// RegistrationFilter captures the admin registration list facets.
type RegistrationFilter struct {
	Search string
	Status string
	Course string
}

// RegistrationStats counts registrations by status.
type RegistrationStats struct {
	Total      int `json:"total"`
	Confirmed  int `json:"confirmed"`
	Pending    int `json:"pending"`
	Rejected   int `json:"rejected"`
	Waitlisted int `json:"waitlisted"`
}
