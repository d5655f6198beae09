package service

import (
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

// catalog is the shared course, student and registration store.
type catalog interface {
	ListCourses() []models.Course
	FindCourse(id string) (models.Course, bool)
	ListStudents() []models.Student
	FindStudent(key string) (models.Student, bool)
	ListRegistrations() []models.Registration
	FindRegistration(id string) (models.Registration, bool)
	Snapshot() repository.Snapshot
	Update(fn func(tx *repository.CatalogTx) error) error
}

// activityRecorder appends entries to the admin activity feed.
type activityRecorder interface {
	Record(kind models.ActivityKind, message, subject, actor string)
}

type nopRecorder struct{}

func (nopRecorder) Record(models.ActivityKind, string, string, string) {}

func recorderOrNop(r activityRecorder) activityRecorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
