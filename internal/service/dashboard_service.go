package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/filter"
	"github.com/noah-isme/campus-portal-api/internal/models"
)

const (
	recentActivityLimit = 4
	upcomingLimit       = 3
	recentGradesLimit   = 3
	noticeLimit         = 3
)

var classTime = regexp.MustCompile(`\d{1,2}:\d{2} [AP]M`)

var adminQuickLinks = []dto.QuickLink{
	{Label: "Add Course", Href: "/admin/courses/new"},
	{Label: "Manage Students", Href: "/admin/students"},
	{Label: "Review Registrations", Href: "/admin/registrations"},
	{Label: "Enter Results", Href: "/admin/results"},
}

type activityReader interface {
	Recent(limit int) []models.Activity
}

// DashboardService assembles the landing pages of both portals.
type DashboardService struct {
	catalog  catalog
	activity activityReader
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(c catalog, activity activityReader) *DashboardService {
	return &DashboardService{catalog: c, activity: activity}
}

// Admin returns catalog totals, the latest activity and shortcuts.
func (s *DashboardService) Admin() dto.AdminDashboard {
	snap := s.catalog.Snapshot()
	out := dto.AdminDashboard{
		Stats: dto.AdminStats{
			TotalCourses:       len(snap.Courses),
			TotalStudents:      len(snap.Students),
			TotalRegistrations: len(snap.Registrations),
			ActiveInstructors:  filter.Instructors(snap.Courses),
		},
		RecentActivity: []models.Activity{},
		QuickLinks:     append([]dto.QuickLink(nil), adminQuickLinks...),
	}
	if s.activity != nil {
		out.RecentActivity = s.activity.Recent(recentActivityLimit)
	}
	return out
}

// Student returns the signed in student's overview.
func (s *DashboardService) Student(studentKey string) (*dto.StudentDashboard, error) {
	snap := s.catalog.Snapshot()
	student, ok := findStudent(snap.Students, studentKey)
	if !ok {
		return nil, errStudentNotFound
	}
	courses := make(map[string]models.Course, len(snap.Courses))
	for _, c := range snap.Courses {
		courses[c.ID] = c
	}

	out := &dto.StudentDashboard{
		GPA:             student.GPA,
		EnrolledCourses: len(student.RegisteredCourses),
		Year:            student.Year,
		UpcomingClasses: []dto.UpcomingClass{},
		RecentGrades:    []dto.RecentGrade{},
		Notifications:   []dto.StudentNotice{},
	}
	for _, id := range student.CompletedCourses {
		out.CompletedCredits += courses[id].Credits
	}
	for _, id := range student.RegisteredCourses {
		c, ok := courses[id]
		if !ok {
			continue
		}
		out.UpcomingClasses = append(out.UpcomingClasses, dto.UpcomingClass{Course: c, Time: classTime.FindString(c.Schedule)})
		if len(out.UpcomingClasses) == upcomingLimit {
			break
		}
	}
	out.RecentGrades = recentGrades(student, courses)
	out.Notifications = notices(snap.Registrations, student.ID)
	return out, nil
}

func recentGrades(student models.Student, courses map[string]models.Course) []dto.RecentGrade {
	out := make([]dto.RecentGrade, 0, len(student.Results))
	for id, grade := range student.Results {
		name := id
		if c, ok := courses[id]; ok {
			name = c.Title
		}
		out = append(out, dto.RecentGrade{CourseID: id, CourseName: name, Grade: grade, Tone: models.PointsTone(grade.Points)})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := semesterRank(out[i].Grade.Semester), semesterRank(out[j].Grade.Semester)
		if ri != rj {
			return ri > rj
		}
		return out[i].CourseID < out[j].CourseID
	})
	if len(out) > recentGradesLimit {
		out = out[:recentGradesLimit]
	}
	return out
}

// semesterRank orders "Spring 2024" < "Summer 2024" < "Fall 2024". Unparseable labels rank first.
func semesterRank(label string) int {
	term, year, ok := strings.Cut(strings.TrimSpace(label), " ")
	if !ok {
		return 0
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	switch strings.ToLower(term) {
	case "spring":
		return y*10 + 1
	case "summer":
		return y*10 + 2
	case "fall":
		return y*10 + 3
	}
	return y * 10
}

// notices turns the student's newest registrations into dashboard notifications.
func notices(regs []models.Registration, studentID string) []dto.StudentNotice {
	mine := make([]models.Registration, 0)
	for _, reg := range regs {
		if reg.StudentID == studentID {
			mine = append(mine, reg)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].Date > mine[j].Date })

	out := make([]dto.StudentNotice, 0, noticeLimit)
	for _, reg := range mine {
		if len(out) == noticeLimit {
			break
		}
		notice := dto.StudentNotice{Date: reg.Date}
		switch reg.Status {
		case models.RegistrationConfirmed:
			notice.Type, notice.Title = "success", "Registration Confirmed"
			notice.Message = "Your registration for " + reg.CourseTitle + " has been confirmed"
		case models.RegistrationPending:
			notice.Type, notice.Title = "info", "Registration Pending"
			notice.Message = "Your registration for " + reg.CourseTitle + " is awaiting approval"
		case models.RegistrationWaitlisted:
			notice.Type, notice.Title = "warning", "Waitlisted"
			notice.Message = "You are on the waitlist for " + reg.CourseTitle
		case models.RegistrationRejected:
			notice.Type, notice.Title = "error", "Registration Declined"
			notice.Message = "Your registration for " + reg.CourseTitle + " was not approved"
		}
		out = append(out, notice)
	}
	return out
}
