package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

func catalog() []models.Course {
	return []models.Course{
		{ID: "CS101", Title: "Introduction to Programming", Instructor: "Dr. Smith", InstructorID: "INS001", Description: "Basics of code", Credits: 3, Capacity: 30, Enrolled: 28, Department: "Computer Science", Level: models.LevelUndergraduate, Status: models.CourseActive},
		{ID: "MA202", Title: "Linear Algebra", Instructor: "Dr. Brown", InstructorID: "INS002", Description: "Vectors and matrices", Credits: 4, Capacity: 40, Enrolled: 20, Department: "Mathematics", Level: models.LevelUndergraduate, Status: models.CourseActive},
		{ID: "CS501", Title: "Machine Learning", Instructor: "Dr. Smith", InstructorID: "INS001", Description: "Statistical learning", Credits: 5, Capacity: 20, Enrolled: 20, Department: "Computer Science", Level: models.LevelGraduate, Status: models.CourseDraft},
		{ID: "PH310", Title: "Quantum Mechanics", Instructor: "Dr. Lee", InstructorID: "INS003", Description: "Wave functions", Credits: 6, Capacity: 25, Enrolled: 19, Department: "Physics", Level: models.LevelGraduate, Status: models.CourseInactive},
	}
}

func courseIDs(courses []models.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}

func TestCoursesSearchAndFacets(t *testing.T) {
	items := catalog()

	assert.Equal(t, []string{"CS101"}, courseIDs(Apply(items, Courses(models.CourseFilter{Search: "CS1"})...)))
	assert.Equal(t, []string{"CS101", "CS501"}, courseIDs(Apply(items, Courses(models.CourseFilter{Search: "smith"})...)))
	assert.Equal(t, []string{"CS501"}, courseIDs(Apply(items, Courses(models.CourseFilter{Status: "draft", Department: "all"})...)))
	assert.Empty(t, Apply(items, Courses(models.CourseFilter{Search: "smith", Department: "Physics"})...))
	assert.Len(t, Apply(items, Courses(models.CourseFilter{})...), 4)
	assert.Len(t, items, 4)
}

func TestCoursesPredicateOrderDoesNotMatter(t *testing.T) {
	preds := Courses(models.CourseFilter{Search: "dr", Status: "active", Department: "Mathematics"})
	reversed := []Predicate[models.Course]{preds[2], preds[1], preds[0]}

	assert.Equal(t, Apply(catalog(), preds...), Apply(catalog(), reversed...))
}

func TestBrowseCoursesCreditsFacet(t *testing.T) {
	items := catalog()

	assert.Equal(t, []string{"CS501", "PH310"}, courseIDs(Apply(items, BrowseCourses(models.CourseBrowseFilter{Credits: "5"})...)))
	assert.Equal(t, []string{"MA202"}, courseIDs(Apply(items, BrowseCourses(models.CourseBrowseFilter{Credits: "4"})...)))
	assert.Equal(t, []string{"PH310"}, courseIDs(Apply(items, BrowseCourses(models.CourseBrowseFilter{Search: "wave"})...)))
	assert.Equal(t, []string{"CS501", "PH310"}, courseIDs(Apply(items, BrowseCourses(models.CourseBrowseFilter{Level: "Graduate"})...)))
}

func TestSortCoursesStable(t *testing.T) {
	items := catalog()
	SortCourses(items, SortEnrolled, "desc")
	assert.Equal(t, []string{"CS101", "MA202", "CS501", "PH310"}, courseIDs(items))

	SortCourses(items, SortEnrolled, "asc")
	assert.Equal(t, []string{"PH310", "MA202", "CS501", "CS101"}, courseIDs(items))

	SortCourses(items, SortTitle, "asc")
	assert.Equal(t, []string{"CS101", "MA202", "CS501", "PH310"}, courseIDs(items))
}

func TestEnrollmentClassification(t *testing.T) {
	items := catalog()

	assert.Equal(t, models.EnrollmentCritical, EnrollmentLevelOf(items[0]))
	assert.Equal(t, models.EnrollmentOK, EnrollmentLevelOf(items[1]))
	assert.Equal(t, models.EnrollmentWarning, EnrollmentLevelOf(items[3]))
	assert.Equal(t, models.AlmostFull, AvailabilityOf(items[0]))
	assert.Equal(t, models.Full, AvailabilityOf(items[2]))
	assert.True(t, IsFull(items[2]))
	assert.True(t, IsFull(models.Course{}))
	assert.Equal(t, models.ToneRed, EnrollmentLevelOf(items[0]).Tone())
}

func TestCourseStats(t *testing.T) {
	stats := CourseStatsOf(catalog())
	assert.Equal(t, models.CourseStats{Total: 4, TotalEnrolled: 87, Active: 2, Departments: 3}, stats)
	assert.Equal(t, 3, Instructors(catalog()))
	assert.Equal(t, []string{"Computer Science", "Mathematics", "Physics"}, Departments(catalog()))
}

func TestGPA(t *testing.T) {
	credits := CreditsLookup(catalog())

	assert.Equal(t, 0.0, GPA(nil, credits))
	assert.Equal(t, 0.0, GPA(map[string]models.Grade{"XX999": {Grade: "A", Points: 4}}, credits))

	gpa := GPA(map[string]models.Grade{
		"CS101": {Grade: "A", Points: 4.0},
		"MA202": {Grade: "B", Points: 3.0},
	}, credits)
	assert.InDelta(t, (4.0*3+3.0*4)/7, gpa, 1e-9)
}

func TestStudentsFilterAndStats(t *testing.T) {
	students := []models.Student{
		{ID: "STU001", StudentID: "STU2024001", Name: "Alice Johnson", Email: "alice@uni.edu", Program: "Computer Science", Year: 2, GPA: 3.8, Status: models.StudentActive},
		{ID: "STU002", StudentID: "STU2024002", Name: "Bob Wilson", Email: "bob@uni.edu", Program: "Mathematics", Year: 4, GPA: 3.1, Status: models.StudentSuspended},
		{ID: "STU003", StudentID: "STU2024003", Name: "Carol Diaz", Email: "carol@uni.edu", Program: "Computer Science", Year: 1, GPA: 2.9, Status: models.StudentActive},
	}

	got := Apply(students, Students(models.StudentFilter{Program: "Computer Science", Year: "1"})...)
	assert.Len(t, got, 1)
	assert.Equal(t, "Carol Diaz", got[0].Name)
	assert.Len(t, Apply(students, Students(models.StudentFilter{Search: "2024002"})...), 1)

	assert.Equal(t, models.StudentStats{Total: 3, Active: 2, AverageGPA: 3.27, Graduating: 1}, StudentStatsOf(students))
	assert.Equal(t, []int{1, 2, 4}, Years(students))
	assert.Equal(t, []string{"Computer Science", "Mathematics"}, Programs(students))
	assert.Equal(t, models.StudentStats{}, StudentStatsOf(nil))
}

func TestRegistrationsFilterAndStats(t *testing.T) {
	regs := []models.Registration{
		{ID: "1", StudentID: "STU001", StudentName: "Alice Johnson", CourseID: "CS101", CourseTitle: "Intro", Status: models.RegistrationPending},
		{ID: "2", StudentID: "STU002", StudentName: "Bob Wilson", CourseID: "MA202", CourseTitle: "Linear Algebra", Status: models.RegistrationConfirmed},
		{ID: "3", StudentID: "STU001", StudentName: "Alice Johnson", CourseID: "MA202", CourseTitle: "Linear Algebra", Status: models.RegistrationWaitlisted},
	}

	assert.Len(t, Apply(regs, Registrations(models.RegistrationFilter{Search: "alice", Course: "MA202"})...), 1)
	assert.Len(t, Apply(regs, Registrations(models.RegistrationFilter{Status: "all", Course: "all"})...), 3)
	assert.Equal(t, models.RegistrationStats{Total: 3, Confirmed: 1, Pending: 1, Waitlisted: 1}, RegistrationStatsOf(regs))
	assert.Equal(t, []string{"CS101", "MA202"}, RegistrationCourses(regs))
}

func TestResultsFilterAndStats(t *testing.T) {
	results := []models.Result{
		{StudentID: "STU001", StudentName: "Alice", CourseID: "CS101", CourseName: "Intro", Semester: "Fall 2024", Grade: &models.Grade{Grade: "A", Points: 4.0}},
		{StudentID: "STU001", StudentName: "Alice", CourseID: "MA202", CourseName: "Linear Algebra", Semester: "Spring 2025"},
		{StudentID: "STU002", StudentName: "Bob", CourseID: "CS101", CourseName: "Intro", Semester: "Spring 2025", Grade: &models.Grade{Grade: "B+", Points: 3.3}},
	}

	assert.Len(t, Apply(results, Results(models.ResultFilter{Graded: Graded})...), 2)
	assert.Len(t, Apply(results, Results(models.ResultFilter{Graded: Ungraded, Semester: "Spring 2025"})...), 1)
	assert.Len(t, Apply(results, Results(models.ResultFilter{Search: "linear"})...), 1)
	stats := ResultStatsOf(results)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Graded)
	assert.Equal(t, 1, stats.Ungraded)
	assert.InDelta(t, 3.65, stats.AverageGPA, 0.001)
	assert.Equal(t, []string{"Fall 2024", "Spring 2025"}, ResultSemesters(results))
}
