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

type resultService interface {
	List(f models.ResultFilter) dto.ResultList
	SaveGrade(ctx context.Context, studentKey, courseID string, req dto.GradeRequest, actor string) (*models.Result, error)
	MyResults(studentKey, semester string) (*dto.MyResults, error)
}

type resultExporter interface {
	ResultsCSV(f models.ResultFilter) ([]byte, error)
}

var resultColumns = []table.Column{
	{Key: "student", Label: "Student"},
	{Key: "studentId", Label: "Student ID"},
	{Key: "course", Label: "Course"},
	{Key: "grade", Label: "Grade"},
	{Key: "points", Label: "Points"},
	{Key: "semester", Label: "Semester"},
}

// ResultHandler serves grade entry for admins and the results page for students.
type ResultHandler struct {
	service  resultService
	exporter resultExporter
	pageSize int
}

// NewResultHandler constructs the handler.
func NewResultHandler(svc resultService, exporter resultExporter, pageSize int) *ResultHandler {
	return &ResultHandler{service: svc, exporter: exporter, pageSize: pageSize}
}

func resultFilter(c *gin.Context) models.ResultFilter {
	return models.ResultFilter{
		Search:   listQuery(c),
		Course:   c.Query("course"),
		Semester: c.Query("semester"),
		Graded:   c.Query("graded"),
	}
}

// List godoc
// @Summary List results
// @Tags Results
// @Produce json
// @Param q query string false "Search student or course"
// @Param course query string false "Course facet"
// @Param semester query string false "Semester facet"
// @Param graded query string false "graded or ungraded"
// @Success 200 {object} response.Envelope
// @Router /admin/results [get]
func (h *ResultHandler) List(c *gin.Context) {
	list := h.service.List(resultFilter(c))
	view := table.Render(resultColumns, list.Results, func(r models.Result) []any {
		var grade, points any
		if r.Grade != nil {
			grade, points = r.Grade.Grade, r.Grade.Points
		}
		return []any{r.StudentName, r.StudentNumber, r.CourseID + " - " + r.CourseName, grade, points, r.Semester}
	}, table.Config[models.Result]{
		Sortable:     true,
		Pagination:   true,
		ItemsPerPage: h.pageSize,
		EmptyMessage: "No results found",
		Actions: func(r models.Result, _ int) []table.Action {
			label := "Add Grade"
			if r.Graded() {
				label = "Edit Grade"
			}
			return []table.Action{{Name: "grade", Label: label, Method: http.MethodPut, Href: "/admin/results/" + r.StudentID + "/" + r.CourseID}}
		},
	}, tableState(c))
	respondList(c, list, view)
}

// SaveGrade godoc
// @Summary Record or edit a grade
// @Tags Results
// @Accept json
// @Produce json
// @Param studentId path string true "Student id"
// @Param courseId path string true "Course code"
// @Param payload body dto.GradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/results/{studentId}/{courseId} [put]
func (h *ResultHandler) SaveGrade(c *gin.Context) {
	var req dto.GradeRequest
	if !bindJSON(c, &req, "grade") {
		return
	}
	res, err := h.service.SaveGrade(c.Request.Context(), c.Param("studentId"), c.Param("courseId"), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notify(c, http.StatusOK, res, response.Success("Grade saved successfully"))
}

// Export godoc
// @Summary Export results as CSV
// @Tags Results
// @Produce text/csv
// @Success 200 {file} file
// @Router /admin/results/export [get]
func (h *ResultHandler) Export(c *gin.Context) {
	out, err := h.exporter.ResultsCSV(resultFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	attachment(c, service.ResultsCSVName, "text/csv; charset=utf-8", out)
}

// Mine godoc
// @Summary My results
// @Tags Student
// @Produce json
// @Param semester query string false "Semester filter"
// @Success 200 {object} response.Envelope
// @Router /student/results [get]
func (h *ResultHandler) Mine(c *gin.Context) {
	res, err := h.service.MyResults(studentKey(c), c.Query("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
