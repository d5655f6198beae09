package filter

import "github.com/noah-isme/campus-portal-api/internal/models"

// Registrations builds the admin registration list predicates.
func Registrations(f models.RegistrationFilter) []Predicate[models.Registration] {
	return []Predicate[models.Registration]{
		func(r models.Registration) bool {
			return MatchesText(f.Search, r.StudentName, r.StudentID, r.CourseTitle, r.CourseID)
		},
		func(r models.Registration) bool { return Facet(f.Status, string(r.Status)) },
		func(r models.Registration) bool { return Facet(f.Course, r.CourseID) },
	}
}

// RegistrationStatsOf counts registrations per status.
func RegistrationStatsOf(regs []models.Registration) models.RegistrationStats {
	stats := models.RegistrationStats{Total: len(regs)}
	for _, r := range regs {
		switch r.Status {
		case models.RegistrationConfirmed:
			stats.Confirmed++
		case models.RegistrationPending:
			stats.Pending++
		case models.RegistrationRejected:
			stats.Rejected++
		case models.RegistrationWaitlisted:
			stats.Waitlisted++
		}
	}
	return stats
}

// RegistrationCourses lists distinct course ids in collection order.
func RegistrationCourses(regs []models.Registration) []string {
	return Unique(regs, func(r models.Registration) string { return r.CourseID })
}

// RegistrationStatuses lists distinct statuses in collection order.
func RegistrationStatuses(regs []models.Registration) []string {
	return Unique(regs, func(r models.Registration) string { return string(r.Status) })
}
