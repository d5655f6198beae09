package repository

import (
	"sync"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// Snapshot is a full copy of the catalog collections.
type Snapshot struct {
	Courses       []models.Course
	Students      []models.Student
	Registrations []models.Registration
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Courses:       make([]models.Course, len(s.Courses)),
		Students:      make([]models.Student, len(s.Students)),
		Registrations: append([]models.Registration(nil), s.Registrations...),
	}
	for i, c := range s.Courses {
		out.Courses[i] = c.Clone()
	}
	for i, st := range s.Students {
		out.Students[i] = st.Clone()
	}
	return out
}

// CatalogRepository owns the course, student and registration collections shared by every service.
type CatalogRepository struct {
	mu   sync.RWMutex
	data Snapshot
}

// NewCatalogRepository seeds the catalog with a private copy of snapshot.
func NewCatalogRepository(snapshot Snapshot) *CatalogRepository {
	return &CatalogRepository{data: snapshot.clone()}
}

// Snapshot returns a copy of every collection taken under a single read lock.
func (r *CatalogRepository) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data.clone()
}

// ListCourses returns all courses in catalog order.
func (r *CatalogRepository) ListCourses() []models.Course {
	return r.Snapshot().Courses
}

// FindCourse returns the course with the given id.
func (r *CatalogRepository) FindCourse(id string) (models.Course, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := indexCourse(r.data.Courses, id); i >= 0 {
		return r.data.Courses[i].Clone(), true
	}
	return models.Course{}, false
}

// ListStudents returns all students in catalog order.
func (r *CatalogRepository) ListStudents() []models.Student {
	return r.Snapshot().Students
}

// FindStudent resolves a student by record id or student number.
func (r *CatalogRepository) FindStudent(key string) (models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := indexStudent(r.data.Students, key); i >= 0 {
		return r.data.Students[i].Clone(), true
	}
	return models.Student{}, false
}

// ListRegistrations returns all registrations in catalog order.
func (r *CatalogRepository) ListRegistrations() []models.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Registration(nil), r.data.Registrations...)
}

// FindRegistration returns the registration with the given id.
func (r *CatalogRepository) FindRegistration(id string) (models.Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := indexRegistration(r.data.Registrations, id); i >= 0 {
		return r.data.Registrations[i], true
	}
	return models.Registration{}, false
}

// Update runs fn against a working copy under the write lock. The copy replaces the
// collections only when fn returns nil, so a failed check leaves the catalog untouched.
func (r *CatalogRepository) Update(fn func(tx *CatalogTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &CatalogTx{data: r.data.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	r.data = tx.data
	return nil
}

// CatalogTx is the mutable view handed to Update callbacks.
type CatalogTx struct {
	data Snapshot
}

// Courses returns the working course list.
func (tx *CatalogTx) Courses() []models.Course {
	return tx.data.Courses
}

// Course returns a copy of the course with the given id.
func (tx *CatalogTx) Course(id string) (models.Course, bool) {
	if i := indexCourse(tx.data.Courses, id); i >= 0 {
		return tx.data.Courses[i].Clone(), true
	}
	return models.Course{}, false
}

// PutCourse replaces the course with the same id or appends it.
func (tx *CatalogTx) PutCourse(course models.Course) {
	if i := indexCourse(tx.data.Courses, course.ID); i >= 0 {
		tx.data.Courses[i] = course.Clone()
		return
	}
	tx.data.Courses = append(tx.data.Courses, course.Clone())
}

// DeleteCourse removes a course and reports whether it existed.
func (tx *CatalogTx) DeleteCourse(id string) bool {
	i := indexCourse(tx.data.Courses, id)
	if i < 0 {
		return false
	}
	tx.data.Courses = append(tx.data.Courses[:i], tx.data.Courses[i+1:]...)
	return true
}

// Student resolves a student by record id or student number.
func (tx *CatalogTx) Student(key string) (models.Student, bool) {
	if i := indexStudent(tx.data.Students, key); i >= 0 {
		return tx.data.Students[i].Clone(), true
	}
	return models.Student{}, false
}

// PutStudent replaces the student with the same record id or appends it.
func (tx *CatalogTx) PutStudent(student models.Student) {
	for i := range tx.data.Students {
		if tx.data.Students[i].ID == student.ID {
			tx.data.Students[i] = student.Clone()
			return
		}
	}
	tx.data.Students = append(tx.data.Students, student.Clone())
}

// DeleteStudent removes a student and reports whether it existed.
func (tx *CatalogTx) DeleteStudent(key string) bool {
	i := indexStudent(tx.data.Students, key)
	if i < 0 {
		return false
	}
	tx.data.Students = append(tx.data.Students[:i], tx.data.Students[i+1:]...)
	return true
}

// Registrations returns the working registration list.
func (tx *CatalogTx) Registrations() []models.Registration {
	return tx.data.Registrations
}

// Registration returns the registration with the given id.
func (tx *CatalogTx) Registration(id string) (models.Registration, bool) {
	if i := indexRegistration(tx.data.Registrations, id); i >= 0 {
		return tx.data.Registrations[i], true
	}
	return models.Registration{}, false
}

// PutRegistration replaces the registration with the same id or appends it.
func (tx *CatalogTx) PutRegistration(reg models.Registration) {
	if i := indexRegistration(tx.data.Registrations, reg.ID); i >= 0 {
		tx.data.Registrations[i] = reg
		return
	}
	tx.data.Registrations = append(tx.data.Registrations, reg)
}

func indexCourse(courses []models.Course, id string) int {
	for i := range courses {
		if courses[i].ID == id {
			return i
		}
	}
	return -1
}

func indexStudent(students []models.Student, key string) int {
	for i := range students {
		if students[i].ID == key || students[i].StudentID == key {
			return i
		}
	}
	return -1
}

func indexRegistration(regs []models.Registration, id string) int {
	for i := range regs {
		if regs[i].ID == id {
			return i
		}
	}
	return -1
}
