package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/pkg/response"
	"github.com/noah-isme/campus-portal-api/pkg/table"
)

type courseService interface {
	List(f models.CourseFilter) dto.CourseList
	Get(id string) (*dto.CourseCard, error)
	Form(id string) (*dto.CourseForm, error)
	Create(ctx context.Context, req dto.CourseRequest, actor string) (*models.Course, error)
	Update(ctx context.Context, id string, req dto.CourseRequest, actor string) (*models.Course, error)
	Delete(ctx context.Context, id, actor string) (*models.Course, error)
	Browse(studentKey string, f models.CourseBrowseFilter) (*dto.CourseBrowse, error)
}

var (
	adminCourseColumns = []table.Column{
		{Key: "id", Label: "Course ID"},
		{Key: "title", Label: "Title"},
		{Key: "instructor", Label: "Instructor"},
		{Key: "department", Label: "Department"},
		{Key: "enrollment", Label: "Enrollment"},
		{Key: "status", Label: "Status"},
	}
	browseColumns = []table.Column{
		{Key: "id", Label: "Course"},
		{Key: "title", Label: "Title"},
		{Key: "instructor", Label: "Instructor"},
		{Key: "credits", Label: "Credits"},
		{Key: "schedule", Label: "Schedule"},
		{Key: "availability", Label: "Availability"},
	}
)

// CourseHandler serves the admin catalog and the student course browser.
type CourseHandler struct {
	service  courseService
	pageSize int
}

// NewCourseHandler constructs the handler. pageSize <= 0 uses the table default.
func NewCourseHandler(svc courseService, pageSize int) *CourseHandler {
	return &CourseHandler{service: svc, pageSize: pageSize}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param q query string false "Search title, code or instructor"
// @Param status query string false "Status facet"
// @Param department query string false "Department facet"
// @Param sort query string false "Table sort column"
// @Param dir query string false "asc or desc"
// @Param page query int false "Table page"
// @Success 200 {object} response.Envelope
// @Router /admin/courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	list := h.service.List(models.CourseFilter{
		Search:     listQuery(c),
		Status:     c.Query("status"),
		Department: c.Query("department"),
	})
	view := table.Render(adminCourseColumns, list.Courses, func(card dto.CourseCard) []any {
		return []any{card.ID, card.Title, card.Instructor, card.Department, fmt.Sprintf("%d/%d", card.Enrolled, card.Capacity), card.Status}
	}, table.Config[dto.CourseCard]{
		Sortable:     true,
		Pagination:   true,
		ItemsPerPage: h.pageSize,
		EmptyMessage: "No courses found",
		Actions: func(card dto.CourseCard, _ int) []table.Action {
			return []table.Action{
				{Name: "view", Label: "View", Method: http.MethodGet, Href: "/admin/courses/" + card.ID},
				{Name: "edit", Label: "Edit", Method: http.MethodGet, Href: "/admin/courses/" + card.ID + "/edit"},
				{Name: "delete", Label: "Delete", Method: http.MethodDelete, Href: "/admin/courses/" + card.ID},
			}
		},
	}, tableState(c))
	respondList(c, list, view)
}

// Get godoc
// @Summary Course details
// @Tags Courses
// @Produce json
// @Param id path string true "Course code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	card, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card, nil)
}

// NewForm godoc
// @Summary Create course form defaults
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/courses/new [get]
func (h *CourseHandler) NewForm(c *gin.Context) {
	h.form(c, "")
}

// EditForm godoc
// @Summary Edit course form
// @Tags Courses
// @Produce json
// @Param id path string true "Course code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/courses/{id}/edit [get]
func (h *CourseHandler) EditForm(c *gin.Context) {
	h.form(c, c.Param("id"))
}

func (h *CourseHandler) form(c *gin.Context, id string) {
	form, err := h.service.Form(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CourseRequest
	if !bindJSON(c, &req, "course") {
		return
	}
	course, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Location", "/admin/courses/"+course.ID)
	response.Created(c, course, response.Success("Course created successfully!"))
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course code"
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var req dto.CourseRequest
	if !bindJSON(c, &req, "course") {
		return
	}
	course, err := h.service.Update(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, course, response.Success("Course updated successfully!"))
}

// Delete godoc
// @Summary Delete course
// @Tags Courses
// @Produce json
// @Param id path string true "Course code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	course, err := h.service.Delete(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, course, notice("Course Deleted", course.Title+" has been deleted"))
}

// Browse godoc
// @Summary Browse courses as a student
// @Tags Student
// @Produce json
// @Param q query string false "Search title, code, instructor or description"
// @Param department query string false "Department facet"
// @Param credits query string false "Credits facet, 5 means 5 or more"
// @Param level query string false "Level facet"
// @Param sortBy query string false "title, credits or enrolled"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /student/courses [get]
func (h *CourseHandler) Browse(c *gin.Context) {
	res, err := h.service.Browse(studentKey(c), models.CourseBrowseFilter{
		Search:     listQuery(c),
		Department: c.Query("department"),
		Credits:    c.Query("credits"),
		Level:      c.Query("level"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	view := table.Render(browseColumns, res.Courses, func(bc dto.BrowseCourse) []any {
		return []any{bc.ID, bc.Title, bc.Instructor, bc.Credits, bc.Schedule, bc.Availability}
	}, table.Config[dto.BrowseCourse]{
		Pagination:   true,
		ItemsPerPage: h.pageSize,
		EmptyMessage: "No courses match your filters",
		Actions: func(bc dto.BrowseCourse, _ int) []table.Action {
			return []table.Action{{
				Name:     "register",
				Label:    registerLabel(bc),
				Method:   http.MethodPost,
				Href:     "/student/courses/" + bc.ID + "/register",
				Disabled: !bc.CanRegister,
			}}
		},
	}, tableState(c))
	respondList(c, res, view)
}

func registerLabel(bc dto.BrowseCourse) string {
	switch {
	case bc.Registered:
		return "Registered"
	case !bc.CanRegister:
		return "Full"
	}
	return "Register"
}
