package models

// StudentStatus is the enrolment standing of a student.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentSuspended StudentStatus = "suspended"
)

// Tone maps the status to its badge colour.
func (s StudentStatus) Tone() Tone {
	switch s {
	case StudentActive:
		return ToneGreen
	case StudentInactive:
		return ToneRed
	case StudentSuspended:
		return ToneYellow
	}
	return ToneGray
}

// Student is a student record with its course sets and recorded grades.
type Student struct {
	ID                 string           `db:"id" json:"id"`
	StudentID          string           `db:"student_id" json:"studentId"`
	Name               string           `db:"name" json:"name"`
	Email              string           `db:"email" json:"email"`
	Phone              string           `db:"phone" json:"phone"`
	Address            string           `db:"address" json:"address"`
	Program            string           `db:"program" json:"program"`
	Year               int              `db:"year" json:"year"`
	GPA                float64          `db:"gpa" json:"gpa"`
	Status             StudentStatus    `db:"status" json:"status"`
	EnrollmentDate     string           `db:"enrollment_date" json:"enrollmentDate"`
	ExpectedGraduation string           `db:"expected_graduation" json:"expectedGraduation"`
	RegisteredCourses  []string         `db:"-" json:"registeredCourses"`
	CompletedCourses   []string         `db:"-" json:"completedCourses"`
	Results            map[string]Grade `db:"-" json:"results"`
}

// Clone returns a deep copy so callers never share the slices or map of a stored record.
func (s Student) Clone() Student {
	out := s
	out.RegisteredCourses = append([]string(nil), s.RegisteredCourses...)
	out.CompletedCourses = append([]string(nil), s.CompletedCourses...)
	out.Results = make(map[string]Grade, len(s.Results))
	for k, v := range s.Results {
		out.Results[k] = v
	}
	return out
}

// IsRegistered reports whether the course is in the student's registered set.
func (s Student) IsRegistered(courseID string) bool {
	return contains(s.RegisteredCourses, courseID)
}

// HasCompleted reports whether the course is in the student's completed set.
func (s Student) HasCompleted(courseID string) bool {
	return contains(s.CompletedCourses, courseID)
}

func contains(set []string, v string) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}

// StudentFilter captures the facets of the admin student list.
type StudentFilter struct {
	Search  string
	Status  string
	Program string
	Year    string
}

// StudentStats summarises the student collection.
type StudentStats struct {
	Total      int     `json:"total"`
	Active     int     `json:"active"`
	AverageGPA float64 `json:"averageGpa"`
	Graduating int     `json:"graduating"`
}
