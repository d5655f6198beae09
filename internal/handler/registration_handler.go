package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/pkg/response"
	"github.com/noah-isme/campus-portal-api/pkg/table"
)

type registrationService interface {
	List(f models.RegistrationFilter) dto.RegistrationList
	Get(id string) (*dto.RegistrationDetail, error)
	Approve(ctx context.Context, id, actor string) (*models.Registration, error)
	Reject(ctx context.Context, id, actor string) (*models.Registration, error)
	Cancel(ctx context.Context, id, actor string) (*models.Registration, error)
	Register(ctx context.Context, studentKey, courseID, actor string) (*models.Registration, error)
	Drop(ctx context.Context, studentKey, courseID, actor string) (*models.Course, error)
	Mine(studentKey string) (*dto.MyRegistrations, error)
}

type registrationExporter interface {
	RegistrationsCSV(f models.RegistrationFilter) ([]byte, error)
}

var registrationColumns = []table.Column{
	{Key: "student", Label: "Student"},
	{Key: "studentId", Label: "Student ID"},
	{Key: "course", Label: "Course"},
	{Key: "status", Label: "Status"},
	{Key: "date", Label: "Date"},
	{Key: "semester", Label: "Semester"},
}

// RegistrationHandler serves registration review for admins and self service for students.
type RegistrationHandler struct {
	service  registrationService
	exporter registrationExporter
	pageSize int
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(svc registrationService, exporter registrationExporter, pageSize int) *RegistrationHandler {
	return &RegistrationHandler{service: svc, exporter: exporter, pageSize: pageSize}
}

func registrationFilter(c *gin.Context) models.RegistrationFilter {
	return models.RegistrationFilter{Search: listQuery(c), Status: c.Query("status"), Course: c.Query("course")}
}

// List godoc
// @Summary List registrations
// @Tags Registrations
// @Produce json
// @Param q query string false "Search student or course"
// @Param status query string false "Status facet"
// @Param course query string false "Course facet"
// @Success 200 {object} response.Envelope
// @Router /admin/registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	list := h.service.List(registrationFilter(c))
	view := table.Render(registrationColumns, list.Registrations, func(r models.Registration) []any {
		return []any{r.StudentName, r.StudentID, r.CourseID + " - " + r.CourseTitle, r.Status, r.Date, r.Semester}
	}, table.Config[models.Registration]{
		Sortable:     true,
		Pagination:   true,
		ItemsPerPage: h.pageSize,
		EmptyMessage: "No registrations found",
		Actions:      registrationActions,
	}, tableState(c))
	respondList(c, list, view)
}

func registrationActions(r models.Registration, _ int) []table.Action {
	base := "/admin/registrations/" + r.ID
	actions := []table.Action{{Name: "view", Label: "Details", Method: http.MethodGet, Href: base}}
	switch r.Status {
	case models.RegistrationPending, models.RegistrationWaitlisted:
		actions = append(actions,
			table.Action{Name: service.ActionApprove, Label: "Approve", Method: http.MethodPost, Href: base + "/approve"},
			table.Action{Name: service.ActionReject, Label: "Reject", Method: http.MethodPost, Href: base + "/reject"},
		)
	case models.RegistrationConfirmed:
		actions = append(actions, table.Action{Name: service.ActionCancel, Label: "Cancel", Method: http.MethodPost, Href: base + "/cancel"})
	}
	return actions
}

// Get godoc
// @Summary Registration details
// @Tags Registrations
// @Produce json
// @Param id path string true "Registration id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/registrations/{id} [get]
func (h *RegistrationHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Approve godoc
// @Summary Approve registration
// @Tags Registrations
// @Produce json
// @Param id path string true "Registration id"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/registrations/{id}/approve [post]
func (h *RegistrationHandler) Approve(c *gin.Context) {
	reg, err := h.service.Approve(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, reg, notice("Registration Approved", "Registration approved for "+reg.StudentName))
}

// Reject godoc
// @Summary Reject pending registration
// @Tags Registrations
// @Produce json
// @Param id path string true "Registration id"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/registrations/{id}/reject [post]
func (h *RegistrationHandler) Reject(c *gin.Context) {
	reg, err := h.service.Reject(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, reg, notice("Registration Rejected", "Registration rejected for "+reg.StudentName))
}

// Cancel godoc
// @Summary Cancel confirmed registration
// @Tags Registrations
// @Produce json
// @Param id path string true "Registration id"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/registrations/{id}/cancel [post]
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	reg, err := h.service.Cancel(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, reg, notice("Registration Cancelled", "Registration cancelled for "+reg.StudentName))
}

// Export godoc
// @Summary Export registrations as CSV
// @Tags Registrations
// @Produce text/csv
// @Success 200 {file} file
// @Router /admin/registrations/export [get]
func (h *RegistrationHandler) Export(c *gin.Context) {
	out, err := h.exporter.RegistrationsCSV(registrationFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	attachment(c, service.RegistrationsCSVName, "text/csv; charset=utf-8", out)
}

// Register godoc
// @Summary Request a seat in a course
// @Tags Student
// @Produce json
// @Param id path string true "Course code"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /student/courses/{id}/register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	reg, err := h.service.Register(c.Request.Context(), studentKey(c), c.Param("id"), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reg, notice("Registration Successful", "Successfully registered for "+reg.CourseTitle))
}

// Mine godoc
// @Summary My registrations
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/registrations [get]
func (h *RegistrationHandler) Mine(c *gin.Context) {
	res, err := h.service.Mine(studentKey(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Drop godoc
// @Summary Drop a course
// @Tags Student
// @Produce json
// @Param courseId path string true "Course code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/registrations/{courseId} [delete]
func (h *RegistrationHandler) Drop(c *gin.Context) {
	course, err := h.service.Drop(c.Request.Context(), studentKey(c), c.Param("courseId"), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, course, response.Success("Dropped "+course.Title))
}
