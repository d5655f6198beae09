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

type studentService interface {
	List(f models.StudentFilter) dto.StudentList
	Detail(key string) (*dto.StudentDetail, error)
	SetStatus(ctx context.Context, key string, status models.StudentStatus, actor string) (*models.Student, error)
	Delete(ctx context.Context, key, actor string) (*models.Student, error)
}

type transcriptRenderer interface {
	Transcript(studentKey string) ([]byte, string, error)
}

var studentColumns = []table.Column{
	{Key: "studentId", Label: "Student ID"},
	{Key: "name", Label: "Name"},
	{Key: "email", Label: "Email"},
	{Key: "program", Label: "Program"},
	{Key: "year", Label: "Year"},
	{Key: "gpa", Label: "GPA"},
	{Key: "status", Label: "Status"},
}

// StudentHandler serves the admin student directory.
type StudentHandler struct {
	service     studentService
	transcripts transcriptRenderer
	pageSize    int
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(svc studentService, transcripts transcriptRenderer, pageSize int) *StudentHandler {
	return &StudentHandler{service: svc, transcripts: transcripts, pageSize: pageSize}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param q query string false "Search name, student id or email"
// @Param status query string false "Status facet"
// @Param program query string false "Program facet"
// @Param year query string false "Year facet"
// @Success 200 {object} response.Envelope
// @Router /admin/students [get]
func (h *StudentHandler) List(c *gin.Context) {
	list := h.service.List(models.StudentFilter{
		Search:  listQuery(c),
		Status:  c.Query("status"),
		Program: c.Query("program"),
		Year:    c.Query("year"),
	})
	view := table.Render(studentColumns, list.Students, func(s models.Student) []any {
		return []any{s.StudentID, s.Name, s.Email, s.Program, s.Year, fmt.Sprintf("%.2f", s.GPA), s.Status}
	}, table.Config[models.Student]{
		Sortable:     true,
		Pagination:   true,
		ItemsPerPage: h.pageSize,
		EmptyMessage: "No students found",
		Actions: func(s models.Student, _ int) []table.Action {
			return []table.Action{
				{Name: "view", Label: "View", Method: http.MethodGet, Href: "/admin/students/" + s.ID},
				{Name: "delete", Label: "Delete", Method: http.MethodDelete, Href: "/admin/students/" + s.ID},
			}
		},
	}, tableState(c))
	respondList(c, list, view)
}

// Detail godoc
// @Summary Student details
// @Description Accepts the record id or the student number.
// @Tags Students
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id} [get]
func (h *StudentHandler) Detail(c *gin.Context) {
	detail, err := h.service.Detail(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Suspend godoc
// @Summary Suspend student
// @Tags Students
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /admin/students/{id}/suspend [post]
func (h *StudentHandler) Suspend(c *gin.Context) {
	h.setStatus(c, models.StudentSuspended, "Student Suspended", "%s has been suspended")
}

// Activate godoc
// @Summary Activate student
// @Tags Students
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /admin/students/{id}/activate [post]
func (h *StudentHandler) Activate(c *gin.Context) {
	h.setStatus(c, models.StudentActive, "Student Activated", "%s has been activated")
}

func (h *StudentHandler) setStatus(c *gin.Context, status models.StudentStatus, title, format string) {
	student, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), status, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, student, notice(title, fmt.Sprintf(format, student.Name)))
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	student, err := h.service.Delete(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, student, notice("Student Deleted", student.Name+" has been removed"))
}

// Transcript godoc
// @Summary Download transcript
// @Tags Students
// @Produce application/pdf
// @Param id path string true "Student id"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id}/transcript.pdf [get]
func (h *StudentHandler) Transcript(c *gin.Context) {
	pdf, name, err := h.transcripts.Transcript(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	attachment(c, name, "application/pdf", pdf)
}
