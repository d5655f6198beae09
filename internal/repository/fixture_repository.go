package repository

import (
	"context"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// FixtureRepository serves the built-in demo data set.
type FixtureRepository struct{}

// NewFixtureRepository constructs a FixtureRepository.
func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{}
}

// Courses returns the demo course catalog.
func (FixtureRepository) Courses(context.Context) ([]models.Course, error) {
	return fixtureCourses(), nil
}

// Students returns the demo student records.
func (FixtureRepository) Students(context.Context) ([]models.Student, error) {
	return fixtureStudents(), nil
}

// Registrations returns the demo registrations.
func (FixtureRepository) Registrations(context.Context) ([]models.Registration, error) {
	return fixtureRegistrations(), nil
}

// UserDirectory holds the two mock accounts the login stub hands out.
type UserDirectory struct {
	users map[models.Role]models.User
}

// NewUserDirectory builds the directory with the demo administrator and student.
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: map[models.Role]models.User{
		models.RoleAdmin: {
			ID:          "admin_001",
			Name:        "System Administrator",
			Email:       "admin@university.edu",
			Role:        models.RoleAdmin,
			Permissions: []string{"read", "write", "delete", "manage_users", "manage_courses"},
		},
		models.RoleStudent: {
			ID:        "student_123",
			Name:      "Alice Johnson",
			Email:     "alice.johnson@university.edu",
			Role:      models.RoleStudent,
			StudentID: "STU2024001",
			Program:   "Computer Science",
			Year:      2,
		},
	}}
}

// UserForRole returns the account of a role.
func (d *UserDirectory) UserForRole(role models.Role) (models.User, bool) {
	user, ok := d.users[role]
	if ok {
		user.Permissions = append([]string(nil), user.Permissions...)
	}
	return user, ok
}

func fixtureCourses() []models.Course {
	return []models.Course{
		{
			ID: "CS101", Title: "Introduction to Programming",
			Description: "Fundamentals of programming using Python, covering variables, control flow, functions and basic data structures.",
			Instructor:  "Dr. Sarah Smith", InstructorID: "INS001", Credits: 3, Capacity: 30, Enrolled: 28,
			Schedule: "Mon, Wed, Fri 9:00 AM - 10:00 AM", Duration: "16 weeks", Room: "CS Building 101",
			StartDate: "2025-01-15", EndDate: "2025-05-15", Department: "Computer Science",
			Level: models.LevelUndergraduate, Status: models.CourseActive, Prerequisites: []string{},
		},
		{
			ID: "CS201", Title: "Data Structures and Algorithms",
			Description: "Design and analysis of lists, trees, graphs and hash tables together with classic sorting and searching algorithms.",
			Instructor:  "Dr. Michael Chen", InstructorID: "INS002", Credits: 4, Capacity: 25, Enrolled: 20,
			Schedule: "Tue, Thu 10:00 AM - 11:30 AM", Duration: "16 weeks", Room: "CS Building 204",
			StartDate: "2025-01-15", EndDate: "2025-05-15", Department: "Computer Science",
			Level: models.LevelUndergraduate, Status: models.CourseActive, Prerequisites: []string{"CS101"},
		},
		{
			ID: "CS301", Title: "Database Systems",
			Description: "Relational modelling, SQL, normalisation, transactions and the internals of modern database engines.",
			Instructor:  "Dr. Michael Chen", InstructorID: "INS002", Credits: 3, Capacity: 30, Enrolled: 30,
			Schedule: "Mon, Wed 1:00 PM - 2:30 PM", Duration: "16 weeks", Room: "CS Building 310",
			StartDate: "2025-01-15", EndDate: "2025-05-15", Department: "Computer Science",
			Level: models.LevelUndergraduate, Status: models.CourseActive, Prerequisites: []string{"CS201"},
		},
		{
			ID: "CS501", Title: "Machine Learning",
			Description: "Supervised and unsupervised learning, model evaluation and an introduction to neural networks for graduate students.",
			Instructor:  "Dr. Sarah Smith", InstructorID: "INS001", Credits: 3, Capacity: 20, Enrolled: 17,
			Schedule: "Tue, Thu 2:00 PM - 3:30 PM", Duration: "16 weeks", Room: "CS Building 501",
			StartDate: "2025-01-15", EndDate: "2025-05-15", Department: "Computer Science",
			Level: models.LevelGraduate, Status: models.CourseActive, Prerequisites: []string{"CS201", "MA202"},
		},
		{
			ID: "MA202", Title: "Linear Algebra",
			Description: "Vector spaces, linear transformations, eigenvalues and applications of matrix methods in science and engineering.",
			Instructor:  "Dr. Emily Davis", InstructorID: "INS003", Credits: 3, Capacity: 35, Enrolled: 22,
			Schedule: "Mon, Wed, Fri 11:00 AM - 12:00 PM", Duration: "16 weeks", Room: "Math Hall 202",
			StartDate: "2025-01-15", EndDate: "2025-05-15", Department: "Mathematics",
			Level: models.LevelUndergraduate, Status: models.CourseActive, Prerequisites: []string{},
		},
		{
			ID: "MA401", Title: "Real Analysis",
			Description: "Rigorous treatment of limits, continuity, differentiation and integration on the real line for graduate study.",
			Instructor:  "Dr. Emily Davis", InstructorID: "INS003", Credits: 3, Capacity: 15, Enrolled: 0,
			Schedule: "Tue, Thu 9:00 AM - 10:30 AM", Duration: "16 weeks", Room: "Math Hall 401",
			StartDate: "2025-08-25", EndDate: "2025-12-12", Department: "Mathematics",
			Level: models.LevelGraduate, Status: models.CourseDraft, Prerequisites: []string{"MA202"},
		},
		{
			ID: "PH101", Title: "Physics I: Mechanics",
			Description: "Kinematics, Newtonian dynamics, energy, momentum and rotational motion with weekly laboratory sessions.",
			Instructor:  "Dr. Robert Wilson", InstructorID: "INS004", Credits: 4, Capacity: 40, Enrolled: 35,
			Schedule: "Mon, Wed 3:00 PM - 4:30 PM", Duration: "16 weeks", Room: "Science Center 110",
			StartDate: "2025-01-15", EndDate: "2025-05-15", Department: "Physics",
			Level: models.LevelUndergraduate, Status: models.CourseActive, Prerequisites: []string{},
		},
		{
			ID: "EN110", Title: "Technical Writing",
			Description: "Writing clear documentation, reports and proposals for technical audiences with peer review workshops.",
			Instructor:  "Prof. Linda Martinez", InstructorID: "INS005", Credits: 2, Capacity: 15, Enrolled: 15,
			Schedule: "Fri 1:00 PM - 3:00 PM", Duration: "16 weeks", Room: "Humanities 110",
			StartDate: "2025-01-15", EndDate: "2025-05-15", Department: "English",
			Level: models.LevelUndergraduate, Status: models.CourseActive, Prerequisites: []string{},
		},
		{
			ID: "HIS210", Title: "Modern World History",
			Description: "Political, economic and cultural developments shaping the world from the industrial revolution to the present.",
			Instructor:  "Prof. James Taylor", InstructorID: "INS006", Credits: 3, Capacity: 50, Enrolled: 12,
			Schedule: "Tue, Thu 4:00 PM - 5:30 PM", Duration: "16 weeks", Room: "Humanities 210",
			StartDate: "2024-08-26", EndDate: "2024-12-13", Department: "History",
			Level: models.LevelUndergraduate, Status: models.CourseInactive, Prerequisites: []string{},
		},
	}
}

func fixtureStudents() []models.Student {
	return []models.Student{
		{
			ID: "STU001", StudentID: "STU2024001", Name: "Alice Johnson", Email: "alice.johnson@university.edu",
			Phone: "+1 (555) 123-4567", Address: "123 College Ave, University City, ST 12345",
			Program: "Computer Science", Year: 2, GPA: 3.6, Status: models.StudentActive,
			EnrollmentDate: "2023-09-01", ExpectedGraduation: "2027-05-15",
			RegisteredCourses: []string{"CS201", "MA202"},
			CompletedCourses:  []string{"CS101", "PH101"},
			Results: map[string]models.Grade{
				"CS101": {Grade: "A", Points: 4.0, Semester: "Fall 2024"},
				"PH101": {Grade: "B+", Points: 3.3, Semester: "Fall 2024"},
			},
		},
		{
			ID: "STU002", StudentID: "STU2024002", Name: "Bob Williams", Email: "bob.williams@university.edu",
			Phone: "+1 (555) 234-5678", Address: "45 Maple Street, University City, ST 12345",
			Program: "Mathematics", Year: 3, GPA: 3.3, Status: models.StudentActive,
			EnrollmentDate: "2022-09-01", ExpectedGraduation: "2026-05-15",
			RegisteredCourses: []string{"MA202"},
			CompletedCourses:  []string{"CS101"},
			Results: map[string]models.Grade{
				"CS101": {Grade: "B+", Points: 3.3, Semester: "Fall 2023"},
			},
		},
		{
			ID: "STU003", StudentID: "STU2024003", Name: "Carol Martinez", Email: "carol.martinez@university.edu",
			Phone: "+1 (555) 345-6789", Address: "78 Oak Road, University City, ST 12345",
			Program: "Physics", Year: 4, GPA: 3.0, Status: models.StudentActive,
			EnrollmentDate: "2021-09-01", ExpectedGraduation: "2025-05-15",
			RegisteredCourses: []string{"PH101"},
			CompletedCourses:  []string{"CS101", "CS201", "MA202"},
			Results: map[string]models.Grade{
				"CS101": {Grade: "B", Points: 3.0, Semester: "Fall 2022"},
				"CS201": {Grade: "B", Points: 3.0, Semester: "Spring 2023"},
				"MA202": {Grade: "B", Points: 3.0, Semester: "Fall 2023"},
			},
		},
		{
			ID: "STU004", StudentID: "STU2024004", Name: "David Lee", Email: "david.lee@university.edu",
			Phone: "+1 (555) 456-7890", Address: "9 Pine Court, University City, ST 12345",
			Program: "Computer Science", Year: 1, GPA: 2.4, Status: models.StudentSuspended,
			EnrollmentDate: "2024-09-01", ExpectedGraduation: "2028-05-15",
			RegisteredCourses: []string{},
			CompletedCourses:  []string{"EN110"},
			Results: map[string]models.Grade{
				"EN110": {Grade: "C+", Points: 2.3, Semester: "Fall 2024"},
			},
		},
		{
			ID: "STU005", StudentID: "STU2024005", Name: "Emma Brown", Email: "emma.brown@university.edu",
			Phone: "+1 (555) 567-8901", Address: "210 Birch Lane, University City, ST 12345",
			Program: "Mathematics", Year: 4, GPA: 3.85, Status: models.StudentInactive,
			EnrollmentDate: "2021-09-01", ExpectedGraduation: "2025-05-15",
			RegisteredCourses: []string{"EN110"},
			CompletedCourses:  []string{"MA202", "PH101"},
			Results: map[string]models.Grade{
				"MA202": {Grade: "A", Points: 4.0, Semester: "Fall 2022"},
				"PH101": {Grade: "A-", Points: 3.7, Semester: "Spring 2023"},
			},
		},
		{
			ID: "STU006", StudentID: "STU2024006", Name: "Frank Garcia", Email: "frank.garcia@university.edu",
			Phone: "+1 (555) 678-9012", Address: "5 Cedar Place, University City, ST 12345",
			Program: "Computer Science", Year: 2, GPA: 0, Status: models.StudentActive,
			EnrollmentDate: "2023-09-01", ExpectedGraduation: "2027-05-15",
			RegisteredCourses: []string{},
			CompletedCourses:  []string{},
			Results:           map[string]models.Grade{},
		},
	}
}

func fixtureRegistrations() []models.Registration {
	return []models.Registration{
		{ID: "REG001", StudentID: "STU001", StudentName: "Alice Johnson", CourseID: "CS201", CourseTitle: "Data Structures and Algorithms", Status: models.RegistrationConfirmed, Date: "2025-01-05", Semester: "Spring 2025"},
		{ID: "REG002", StudentID: "STU001", StudentName: "Alice Johnson", CourseID: "MA202", CourseTitle: "Linear Algebra", Status: models.RegistrationConfirmed, Date: "2025-01-05", Semester: "Spring 2025"},
		{ID: "REG003", StudentID: "STU001", StudentName: "Alice Johnson", CourseID: "CS101", CourseTitle: "Introduction to Programming", Status: models.RegistrationConfirmed, Date: "2024-08-20", Semester: "Fall 2024"},
		{ID: "REG004", StudentID: "STU002", StudentName: "Bob Williams", CourseID: "MA202", CourseTitle: "Linear Algebra", Status: models.RegistrationConfirmed, Date: "2025-01-07", Semester: "Spring 2025"},
		{ID: "REG005", StudentID: "STU002", StudentName: "Bob Williams", CourseID: "CS201", CourseTitle: "Data Structures and Algorithms", Status: models.RegistrationPending, Date: "2025-01-08", Semester: "Spring 2025"},
		{ID: "REG006", StudentID: "STU003", StudentName: "Carol Martinez", CourseID: "PH101", CourseTitle: "Physics I: Mechanics", Status: models.RegistrationConfirmed, Date: "2025-01-06", Semester: "Spring 2025"},
		{ID: "REG007", StudentID: "STU003", StudentName: "Carol Martinez", CourseID: "CS301", CourseTitle: "Database Systems", Status: models.RegistrationWaitlisted, Date: "2025-01-09", Semester: "Spring 2025"},
		{ID: "REG008", StudentID: "STU006", StudentName: "Frank Garcia", CourseID: "EN110", CourseTitle: "Technical Writing", Status: models.RegistrationPending, Date: "2025-01-10", Semester: "Spring 2025"},
		{ID: "REG009", StudentID: "STU006", StudentName: "Frank Garcia", CourseID: "CS101", CourseTitle: "Introduction to Programming", Status: models.RegistrationPending, Date: "2025-01-10", Semester: "Spring 2025"},
		{ID: "REG010", StudentID: "STU004", StudentName: "David Lee", CourseID: "CS201", CourseTitle: "Data Structures and Algorithms", Status: models.RegistrationRejected, Date: "2025-01-04", Semester: "Spring 2025"},
		{ID: "REG011", StudentID: "STU005", StudentName: "Emma Brown", CourseID: "EN110", CourseTitle: "Technical Writing", Status: models.RegistrationConfirmed, Date: "2025-01-03", Semester: "Spring 2025"},
	}
}
