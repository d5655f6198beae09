package filter

import (
	"strconv"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// graduatingYear is the study year counted as graduating soon.
const graduatingYear = 4

// Students builds the admin student list predicates.
func Students(f models.StudentFilter) []Predicate[models.Student] {
	return []Predicate[models.Student]{
		func(s models.Student) bool { return MatchesText(f.Search, s.Name, s.StudentID, s.Email) },
		func(s models.Student) bool { return Facet(f.Status, string(s.Status)) },
		func(s models.Student) bool { return Facet(f.Program, s.Program) },
		func(s models.Student) bool { return Facet(f.Year, strconv.Itoa(s.Year)) },
	}
}

// StudentStatsOf summarises a student collection. AverageGPA is rounded to two decimals.
func StudentStatsOf(students []models.Student) models.StudentStats {
	stats := models.StudentStats{Total: len(students)}
	var gpaSum float64
	for _, s := range students {
		if s.Status == models.StudentActive {
			stats.Active++
		}
		if s.Year == graduatingYear {
			stats.Graduating++
		}
		gpaSum += s.GPA
	}
	if len(students) > 0 {
		stats.AverageGPA = models.Round2(gpaSum / float64(len(students)))
	}
	return stats
}

// Programs lists distinct programs in collection order.
func Programs(students []models.Student) []string {
	return Unique(students, func(s models.Student) string { return s.Program })
}

// Years lists distinct study years ascending.
func Years(students []models.Student) []int {
	return UniqueSortedInts(students, func(s models.Student) int { return s.Year })
}

// GPA is the credit weighted mean of recorded points. Ungraded or unknown courses are skipped and no grades yields 0.
func GPA(results map[string]models.Grade, credits func(courseID string) (int, bool)) float64 {
	var points, total float64
	for courseID, grade := range results {
		c, ok := credits(courseID)
		if !ok || c <= 0 {
			continue
		}
		points += grade.Points * float64(c)
		total += float64(c)
	}
	if total == 0 {
		return 0
	}
	return points / total
}

// CreditsLookup adapts a course list to the lookup GPA expects.
func CreditsLookup(courses []models.Course) func(string) (int, bool) {
	index := make(map[string]int, len(courses))
	for _, c := range courses {
		index[c.ID] = c.Credits
	}
	return func(id string) (int, bool) {
		v, ok := index[id]
		return v, ok
	}
}
