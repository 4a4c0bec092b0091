package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jsponceA/api-express-tienda/models"
	"github.com/jsponceA/api-express-tienda/store"
	"github.com/jsponceA/api-express-tienda/validation"
)

// EnrollmentStore is the persistence surface the enrollment handler needs.
type EnrollmentStore interface {
	List(ctx context.Context) ([]models.Enrollment, error)
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Enrollment, error)
	FindTuple(ctx context.Context, studentID uint, course, semester, academicYear string) (*models.Enrollment, error)
	Create(ctx context.Context, e *models.Enrollment) error
	Update(ctx context.Context, e *models.Enrollment) error
	Delete(ctx context.Context, e *models.Enrollment) error
}

// EnrollmentStudentStore resolves the referenced student on create and on
// per-student listings.
type EnrollmentStudentStore interface {
	GetByID(ctx context.Context, id uint) (*models.Student, error)
}

type EnrollmentHandler struct {
	store    EnrollmentStore
	students EnrollmentStudentStore
}

func NewEnrollmentHandler(store EnrollmentStore, students EnrollmentStudentStore) *EnrollmentHandler {
	return &EnrollmentHandler{store: store, students: students}
}

type enrollmentPayload struct {
	StudentID      *int     `json:"studentId"`
	Course         *string  `json:"course"`
	CourseCode     *string  `json:"courseCode"`
	Semester       *string  `json:"semester"`
	AcademicYear   *string  `json:"academicYear"`
	EnrollmentDate *string  `json:"enrollmentDate"`
	Status         *string  `json:"status"`
	Grade          *float64 `json:"grade"`
	Credits        *int     `json:"credits"`
	Notes          *string  `json:"notes"`
}

func (p *enrollmentPayload) validate(partial bool) map[string]string {
	v := validation.New()
	if !partial || p.StudentID != nil {
		v.Check(p.StudentID != nil && *p.StudentID > 0, "studentId", "studentId must be a positive integer")
	}
	if !partial || p.Course != nil {
		v.Check(p.Course != nil && strings.TrimSpace(*p.Course) != "", "course", "course is required")
	}
	if !partial || p.Semester != nil {
		v.Check(p.Semester != nil && strings.TrimSpace(*p.Semester) != "", "semester", "semester is required")
	}
	if !partial || p.AcademicYear != nil {
		v.Check(p.AcademicYear != nil && strings.TrimSpace(*p.AcademicYear) != "", "academicYear", "academicYear is required")
	}
	if p.EnrollmentDate != nil {
		v.Check(validation.IsDate(*p.EnrollmentDate), "enrollmentDate", "enrollmentDate must be a YYYY-MM-DD date")
	}
	if p.Status != nil {
		v.Check(validation.In(*p.Status,
			models.EnrollmentStatusEnrolled,
			models.EnrollmentStatusCompleted,
			models.EnrollmentStatusDropped,
			models.EnrollmentStatusFailed,
			models.EnrollmentStatusInProgress,
		), "status", "status must be one of enrolled, completed, dropped, failed, in-progress")
	}
	if p.Grade != nil {
		v.Check(*p.Grade >= 0 && *p.Grade <= 100, "grade", "grade must be between 0 and 100")
	}
	if p.Credits != nil {
		v.Check(*p.Credits >= 1, "credits", "credits must be a positive integer")
	}
	if v.Valid() {
		return nil
	}
	return v.Errors
}

func (p *enrollmentPayload) apply(m *models.Enrollment) {
	if p.StudentID != nil {
		m.StudentID = uint(*p.StudentID)
	}
	if p.Course != nil {
		m.Course = *p.Course
	}
	if p.CourseCode != nil {
		m.CourseCode = *p.CourseCode
	}
	if p.Semester != nil {
		m.Semester = *p.Semester
	}
	if p.AcademicYear != nil {
		m.AcademicYear = *p.AcademicYear
	}
	if p.EnrollmentDate != nil {
		d := validation.ParseDate(*p.EnrollmentDate)
		m.EnrollmentDate = &d
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Grade != nil {
		m.Grade = p.Grade
	}
	if p.Credits != nil {
		m.Credits = p.Credits
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
}

func (h *EnrollmentHandler) List(c echo.Context) error {
	items, err := h.store.List(c.Request().Context())
	if err != nil {
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *EnrollmentHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Enrollment not found")
	}
	enrollment, err := h.store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Enrollment not found")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, enrollment)
}

// ListByStudent serves GET /enrollments/student/:studentId.
func (h *EnrollmentHandler) ListByStudent(c echo.Context) error {
	studentID, ok := parseID(c, "studentId")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Student not found")
	}
	ctx := c.Request().Context()
	if _, err := h.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Student not found")
		}
		return respondInternal(c, err)
	}
	items, err := h.store.ListByStudent(ctx, studentID)
	if err != nil {
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *EnrollmentHandler) Create(c echo.Context) error {
	var p enrollmentPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(false); issues != nil {
		return respondIssues(c, issues)
	}

	ctx := c.Request().Context()
	studentID := uint(*p.StudentID)
	if _, err := h.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Student not found")
		}
		return respondInternal(c, err)
	}

	// Advisory duplicate check for a precise message; the composite unique
	// index below remains the correctness backstop under concurrent creates.
	existing, err := h.store.FindTuple(ctx, studentID, *p.Course, *p.Semester, *p.AcademicYear)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return respondInternal(c, err)
	}
	if existing != nil {
		return respondMessage(c, http.StatusConflict, "Student is already enrolled in this course for this semester")
	}

	enrollment := models.Enrollment{Status: models.EnrollmentStatusEnrolled}
	p.apply(&enrollment)
	if enrollment.EnrollmentDate == nil {
		now := time.Now()
		enrollment.EnrollmentDate = &now
	}

	if err := h.store.Create(ctx, &enrollment); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return respondMessage(c, http.StatusConflict, "Student is already enrolled in this course for this semester")
		}
		return respondInternal(c, err)
	}

	created, err := h.store.GetByID(ctx, enrollment.ID)
	if err != nil {
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *EnrollmentHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Enrollment not found")
	}
	ctx := c.Request().Context()
	enrollment, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Enrollment not found")
		}
		return respondInternal(c, err)
	}

	var p enrollmentPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(true); issues != nil {
		return respondIssues(c, issues)
	}

	p.apply(enrollment)
	if err := h.store.Update(ctx, enrollment); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return respondMessage(c, http.StatusConflict, "Student is already enrolled in this course for this semester")
		}
		return respondInternal(c, err)
	}

	updated, err := h.store.GetByID(ctx, enrollment.ID)
	if err != nil {
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *EnrollmentHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Enrollment not found")
	}
	ctx := c.Request().Context()
	enrollment, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Enrollment not found")
		}
		return respondInternal(c, err)
	}
	if err := h.store.Delete(ctx, enrollment); err != nil {
		return respondInternal(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
