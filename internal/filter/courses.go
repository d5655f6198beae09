package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// Course browser sort keys.
const (
	SortTitle    = "title"
	SortCredits  = "credits"
	SortEnrolled = "enrolled"
)

// creditsAndAbove is the credits facet value meaning "this many or more".
const creditsAndAbove = 5

// Courses builds the admin course list predicates.
func Courses(f models.CourseFilter) []Predicate[models.Course] {
	return []Predicate[models.Course]{
		func(c models.Course) bool { return MatchesText(f.Search, c.Title, c.ID, c.Instructor) },
		func(c models.Course) bool { return Facet(f.Status, string(c.Status)) },
		func(c models.Course) bool { return Facet(f.Department, c.Department) },
	}
}

// BrowseCourses builds the student course browser predicates.
func BrowseCourses(f models.CourseBrowseFilter) []Predicate[models.Course] {
	return []Predicate[models.Course]{
		func(c models.Course) bool { return MatchesText(f.Search, c.Title, c.ID, c.Instructor, c.Description) },
		func(c models.Course) bool { return Facet(f.Department, c.Department) },
		func(c models.Course) bool { return matchesCredits(f.Credits, c.Credits) },
		func(c models.Course) bool { return Facet(f.Level, string(c.Level)) },
	}
}

func matchesCredits(selected string, credits int) bool {
	if Off(selected) {
		return true
	}
	if selected == strconv.Itoa(creditsAndAbove) {
		return credits >= creditsAndAbove
	}
	return strconv.Itoa(credits) == selected
}

// SortCourses orders courses in place by title, credits or enrolled. Unknown keys sort by title.
func SortCourses(courses []models.Course, by, order string) {
	desc := strings.EqualFold(order, "desc")
	less := func(a, b models.Course) bool {
		switch by {
		case SortCredits:
			return a.Credits < b.Credits
		case SortEnrolled:
			return a.Enrolled < b.Enrolled
		default:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	}
	sort.SliceStable(courses, func(i, j int) bool {
		if desc {
			return less(courses[j], courses[i])
		}
		return less(courses[i], courses[j])
	})
}

// EnrollmentPercentage is enrolled over capacity as a percentage. A course without capacity counts as full.
func EnrollmentPercentage(c models.Course) float64 {
	if c.Capacity <= 0 {
		return 100
	}
	return float64(c.Enrolled) / float64(c.Capacity) * 100
}

// EnrollmentLevelOf classifies the course fill rate.
func EnrollmentLevelOf(c models.Course) models.EnrollmentLevel {
	pct := EnrollmentPercentage(c)
	switch {
	case pct >= 90:
		return models.EnrollmentCritical
	case pct >= 75:
		return models.EnrollmentWarning
	default:
		return models.EnrollmentOK
	}
}

// AvailabilityOf returns the browser badge of a course.
func AvailabilityOf(c models.Course) models.Availability {
	pct := EnrollmentPercentage(c)
	switch {
	case pct >= 100:
		return models.Full
	case pct >= 85:
		return models.AlmostFull
	default:
		return models.Available
	}
}

// IsFull reports whether new registrations are disabled.
func IsFull(c models.Course) bool {
	return EnrollmentPercentage(c) >= 100
}

// CourseStatsOf summarises a course collection.
func CourseStatsOf(courses []models.Course) models.CourseStats {
	stats := models.CourseStats{Total: len(courses)}
	for _, c := range courses {
		stats.TotalEnrolled += c.Enrolled
		if c.Status == models.CourseActive {
			stats.Active++
		}
	}
	stats.Departments = len(Departments(courses))
	return stats
}

// Departments lists distinct departments in catalog order.
func Departments(courses []models.Course) []string {
	return Unique(courses, func(c models.Course) string { return c.Department })
}

// Instructors counts distinct instructor ids.
func Instructors(courses []models.Course) int {
	return len(Unique(courses, func(c models.Course) string { return c.InstructorID }))
}
