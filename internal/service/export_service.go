package service

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/export"
)

// Export file names.
const (
	RegistrationsCSVName = "registrations.csv"
	ResultsCSVName       = "student-results.csv"
)

// NotGradedLabel fills the grade column of results without a grade.
const NotGradedLabel = "Not Graded"

var (
	registrationHeaders = []string{"Student Name", "Student ID", "Course ID", "Course Title", "Status", "Registration Date", "Semester"}
	resultHeaders       = []string{"Student Name", "Student ID", "Course ID", "Course Name", "Grade", "Points", "Semester"}
	transcriptHeaders   = []string{"Course", "Title", "Credits", "Grade", "Points", "Semester"}
)

type registrationLister interface {
	List(f models.RegistrationFilter) dto.RegistrationList
}

type resultLister interface {
	List(f models.ResultFilter) dto.ResultList
}

type studentDetailer interface {
	Detail(key string) (*dto.StudentDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// ExportService renders the admin CSV exports and student transcripts.
type ExportService struct {
	registrations registrationLister
	results       resultLister
	students      studentDetailer
	csv           csvRenderer
	pdf           pdfRenderer
	logger        *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the pkg/export defaults.
func NewExportService(registrations registrationLister, results resultLister, students studentDetailer, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{registrations: registrations, results: results, students: students, csv: csv, pdf: pdf, logger: logger}
}

// RegistrationsCSV exports the filtered registrations.
func (s *ExportService) RegistrationsCSV(f models.RegistrationFilter) ([]byte, error) {
	regs := s.registrations.List(f).Registrations
	data := export.Dataset{Headers: registrationHeaders, Rows: make([][]string, 0, len(regs))}
	for _, r := range regs {
		data.Rows = append(data.Rows, []string{r.StudentName, r.StudentID, r.CourseID, r.CourseTitle, string(r.Status), r.Date, r.Semester})
	}
	return s.render(data, RegistrationsCSVName)
}

// ResultsCSV exports the filtered results. Ungraded rows read NotGradedLabel with empty points,
// and zero points are left empty as well.
func (s *ExportService) ResultsCSV(f models.ResultFilter) ([]byte, error) {
	results := s.results.List(f).Results
	data := export.Dataset{Headers: resultHeaders, Rows: make([][]string, 0, len(results))}
	for _, r := range results {
		grade, points := NotGradedLabel, ""
		if r.Grade != nil {
			if r.Grade.Grade != "" {
				grade = r.Grade.Grade
			}
			if r.Grade.Points != 0 {
				points = formatPoints(r.Grade.Points)
			}
		}
		data.Rows = append(data.Rows, []string{r.StudentName, r.StudentID, r.CourseID, r.CourseName, grade, points, r.Semester})
	}
	return s.render(data, ResultsCSVName)
}

func (s *ExportService) render(data export.Dataset, name string) ([]byte, error) {
	out, err := s.csv.Render(data)
	if err != nil {
		s.logger.Error("csv export failed", zap.String("file", name), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export "+name)
	}
	return out, nil
}

// Transcript renders the grade history of a student as a PDF and returns it with its file name.
func (s *ExportService) Transcript(studentKey string) ([]byte, string, error) {
	detail, err := s.students.Detail(studentKey)
	if err != nil {
		return nil, "", err
	}
	st := detail.Student
	doc := export.Document{
		Title: "Academic Transcript",
		Summary: [][2]string{
			{"Student", st.Name},
			{"Student ID", st.StudentID},
			{"Program", st.Program},
			{"Year", strconv.Itoa(st.Year)},
			{"GPA", strconv.FormatFloat(st.GPA, 'f', 2, 64)},
			{"Status", string(st.Status)},
		},
		Table: export.Dataset{Headers: transcriptHeaders},
	}
	for _, g := range detail.GradeHistory {
		doc.Table.Rows = append(doc.Table.Rows, []string{
			g.CourseID, g.CourseTitle, strconv.Itoa(g.Credits), g.Grade, formatPoints(g.Points), g.Semester,
		})
	}
	out, err := s.pdf.Render(doc)
	if err != nil {
		s.logger.Error("transcript export failed", zap.String("student_id", st.ID), zap.Error(err))
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}
	return out, fmt.Sprintf("transcript-%s.pdf", st.StudentID), nil
}

func formatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}
