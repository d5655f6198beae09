package models

// CourseStatus is the publication state of a course.
type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CourseInactive CourseStatus = "inactive"
	CourseDraft    CourseStatus = "draft"
)

// Tone maps the status to its badge colour.
func (s CourseStatus) Tone() Tone {
	switch s {
	case CourseActive:
		return ToneGreen
	case CourseInactive:
		return ToneRed
	case CourseDraft:
		return ToneYellow
	}
	return ToneGray
}

// CourseLevel is the academic level of a course.
type CourseLevel string

const (
	LevelUndergraduate CourseLevel = "Undergraduate"
	LevelGraduate      CourseLevel = "Graduate"
)

// Course is a catalog entry.
type Course struct {
	ID            string       `db:"id" json:"id"`
	Title         string       `db:"title" json:"title"`
	Description   string       `db:"description" json:"description"`
	Instructor    string       `db:"instructor" json:"instructor"`
	InstructorID  string       `db:"instructor_id" json:"instructorId"`
	Credits       int          `db:"credits" json:"credits"`
	Capacity      int          `db:"capacity" json:"capacity"`
	Enrolled      int          `db:"enrolled" json:"enrolled"`
	Schedule      string       `db:"schedule" json:"schedule"`
	Duration      string       `db:"duration" json:"duration"`
	Room          string       `db:"room" json:"room"`
	StartDate     string       `db:"start_date" json:"startDate"`
	EndDate       string       `db:"end_date" json:"endDate"`
	Department    string       `db:"department" json:"department"`
	Level         CourseLevel  `db:"level" json:"level"`
	Status        CourseStatus `db:"status" json:"status"`
	Prerequisites []string     `db:"-" json:"prerequisites"`
}

// Clone returns a copy that does not share the prerequisites slice.
func (c Course) Clone() Course {
	out := c
	out.Prerequisites = append([]string(nil), c.Prerequisites...)
	return out
}

// EnrollmentLevel classifies how full a course is.
type EnrollmentLevel string

const (
	EnrollmentOK       EnrollmentLevel = "ok"
	EnrollmentWarning  EnrollmentLevel = "warning"
	EnrollmentCritical EnrollmentLevel = "critical"
)

// Tone maps the level to its indicator colour.
func (l EnrollmentLevel) Tone() Tone {
	switch l {
	case EnrollmentOK:
		return ToneGreen
	case EnrollmentWarning:
		return ToneYellow
	case EnrollmentCritical:
		return ToneRed
	}
	return ToneGray
}

// Availability is the badge shown in the student course browser.
type Availability string

const (
	Available  Availability = "Available"
	AlmostFull Availability = "Almost Full"
	Full       Availability = "Full"
)

// Tone maps availability to its badge colour.
func (a Availability) Tone() Tone {
	switch a {
	case Available:
		return ToneGreen
	case AlmostFull:
		return ToneYellow
	case Full:
		return ToneRed
	}
	return ToneGray
}

// CourseFilter captures the admin course list facets.
type CourseFilter struct {
	Search     string
	Status     string
	Department string
}

// CourseBrowseFilter captures the student course browser facets and ordering.
type CourseBrowseFilter struct {
	Search     string
	Department string
	Credits    string
	Level      string
	SortBy     string
	SortOrder  string
}

// CourseStats summarises the course catalog.
type CourseStats struct {
	Total         int `json:"total"`
	TotalEnrolled int `json:"totalEnrolled"`
	Active        int `json:"active"`
	Departments   int `json:"departments"`
}
