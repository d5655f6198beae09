package models

// Result joins a registration with the recorded grade of its student for the course.
type Result struct {
	StudentID     string `json:"studentId"`
	StudentNumber string `json:"studentNumber"`
	StudentName   string `json:"studentName"`
	CourseID      string `json:"courseId"`
	CourseName    string `json:"courseName"`
	Instructor    string `json:"instructor"`
	Credits       int    `json:"credits"`
	Semester      string `json:"semester"`
	Grade         *Grade `json:"grade,omitempty"`
}

// Graded reports whether a grade has been recorded.
func (r Result) Graded() bool {
	return r.Grade != nil
}

// ResultFilter captures the admin results facets. Graded accepts "graded" or "ungraded".
type ResultFilter struct {
	Search   string
	Course   string
	Semester string
	Graded   string
}

// ResultStats summarises a result set. AverageGPA is the unweighted mean of recorded points.
type ResultStats struct {
	Total      int     `json:"total"`
	Graded     int     `json:"graded"`
	Ungraded   int     `json:"ungraded"`
	AverageGPA float64 `json:"averageGpa"`
}
