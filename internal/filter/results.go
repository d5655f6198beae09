package filter

import "github.com/noah-isme/campus-portal-api/internal/models"

// Graded facet values.
const (
	Graded   = "graded"
	Ungraded = "ungraded"
)

// Results builds the admin results predicates.
func Results(f models.ResultFilter) []Predicate[models.Result] {
	return []Predicate[models.Result]{
		func(r models.Result) bool { return MatchesText(f.Search, r.StudentName, r.StudentID, r.CourseName, r.CourseID) },
		func(r models.Result) bool { return Facet(f.Course, r.CourseID) },
		func(r models.Result) bool { return Facet(f.Semester, r.Semester) },
		func(r models.Result) bool {
			switch f.Graded {
			case Graded:
				return r.Graded()
			case Ungraded:
				return !r.Graded()
			}
			return true
		},
	}
}

// ResultStatsOf summarises results. The average is the plain mean of recorded points rounded to two decimals.
func ResultStatsOf(results []models.Result) models.ResultStats {
	stats := models.ResultStats{Total: len(results)}
	var sum float64
	for _, r := range results {
		if r.Graded() {
			stats.Graded++
			sum += r.Grade.Points
		}
	}
	stats.Ungraded = stats.Total - stats.Graded
	if stats.Graded > 0 {
		stats.AverageGPA = models.Round2(sum / float64(stats.Graded))
	}
	return stats
}

// ResultCourses lists distinct course ids in collection order.
func ResultCourses(results []models.Result) []string {
	return Unique(results, func(r models.Result) string { return r.CourseID })
}

// ResultSemesters lists distinct semesters in collection order.
func ResultSemesters(results []models.Result) []string {
	return Unique(results, func(r models.Result) string { return r.Semester })
}
