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
	"github.com/jsponceA/api-express-tienda/upload"
	"github.com/jsponceA/api-express-tienda/validation"
)

// StudentStore is the persistence surface the student handler needs.
type StudentStore interface {
	List(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	Create(ctx context.Context, st *models.Student) error
	Update(ctx context.Context, st *models.Student) error
	Delete(ctx context.Context, st *models.Student) error
	EnrollmentCount(ctx context.Context, studentID uint) (int64, error)
}

type StudentHandler struct {
	store   StudentStore
	uploads *upload.Saver
}

func NewStudentHandler(store StudentStore, uploads *upload.Saver) *StudentHandler {
	return &StudentHandler{store: store, uploads: uploads}
}

type studentPayload struct {
	StudentCode      *string `json:"studentCode"      form:"studentCode"`
	FirstName        *string `json:"firstName"        form:"firstName"`
	LastName         *string `json:"lastName"         form:"lastName"`
	Email            *string `json:"email"            form:"email"`
	Phone            *string `json:"phone"            form:"phone"`
	DateOfBirth      *string `json:"dateOfBirth"      form:"dateOfBirth"`
	Address          *string `json:"address"          form:"address"`
	EnrollmentDate   *string `json:"enrollmentDate"   form:"enrollmentDate"`
	Status           *string `json:"status"           form:"status"`
	EmergencyContact *string `json:"emergencyContact" form:"emergencyContact"`
	EmergencyPhone   *string `json:"emergencyPhone"   form:"emergencyPhone"`
	Image            *string `json:"image"            form:"image"`
}

func (p *studentPayload) validate(partial bool) map[string]string {
	v := validation.New()
	if !partial || p.StudentCode != nil {
		v.Check(p.StudentCode != nil && strings.TrimSpace(*p.StudentCode) != "", "studentCode", "studentCode is required")
	}
	if !partial || p.FirstName != nil {
		v.Check(p.FirstName != nil && strings.TrimSpace(*p.FirstName) != "", "firstName", "firstName is required")
	}
	if !partial || p.LastName != nil {
		v.Check(p.LastName != nil && strings.TrimSpace(*p.LastName) != "", "lastName", "lastName is required")
	}
	if !partial || p.Email != nil {
		v.Check(p.Email != nil && validation.Matches(*p.Email, validation.EmailRX), "email", "email is invalid")
	}
	if p.DateOfBirth != nil {
		v.Check(validation.IsDate(*p.DateOfBirth), "dateOfBirth", "dateOfBirth must be a YYYY-MM-DD date")
	}
	if p.EnrollmentDate != nil {
		v.Check(validation.IsDate(*p.EnrollmentDate), "enrollmentDate", "enrollmentDate must be a YYYY-MM-DD date")
	}
	if p.Status != nil {
		v.Check(validation.In(*p.Status,
			models.StudentStatusActive,
			models.StudentStatusInactive,
			models.StudentStatusGraduated,
			models.StudentStatusSuspended,
		), "status", "status must be one of active, inactive, graduated, suspended")
	}
	if v.Valid() {
		return nil
	}
	return v.Errors
}

func (p *studentPayload) apply(m *models.Student) {
	if p.StudentCode != nil {
		m.StudentCode = *p.StudentCode
	}
	if p.FirstName != nil {
		m.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		m.LastName = *p.LastName
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.DateOfBirth != nil {
		d := validation.ParseDate(*p.DateOfBirth)
		m.DateOfBirth = &d
	}
	if p.Address != nil {
		m.Address = *p.Address
	}
	if p.EnrollmentDate != nil {
		d := validation.ParseDate(*p.EnrollmentDate)
		m.EnrollmentDate = &d
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.EmergencyContact != nil {
		m.EmergencyContact = *p.EmergencyContact
	}
	if p.EmergencyPhone != nil {
		m.EmergencyPhone = *p.EmergencyPhone
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
}

func (h *StudentHandler) List(c echo.Context) error {
	items, err := h.store.List(c.Request().Context())
	if err != nil {
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *StudentHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Student not found")
	}
	student, err := h.store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Student not found")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(false); issues != nil {
		return respondIssues(c, issues)
	}

	file, err := formImage(c, h.uploads, "students")
	if err != nil {
		if upload.IsRejection(err) {
			return respondMessage(c, http.StatusBadRequest, err.Error())
		}
		return respondInternal(c, err)
	}

	student := models.Student{Status: models.StudentStatusActive}
	p.apply(&student)
	if student.EnrollmentDate == nil {
		now := time.Now()
		student.EnrollmentDate = &now
	}
	if file != nil {
		student.Image = file.PublicPath
	}

	if err := h.store.Create(c.Request().Context(), &student); err != nil {
		h.uploads.Remove(file)
		if errors.Is(err, store.ErrDuplicate) {
			return respondMessage(c, http.StatusConflict, "Student code or email already exists")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Student not found")
	}
	ctx := c.Request().Context()
	student, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Student not found")
		}
		return respondInternal(c, err)
	}

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(true); issues != nil {
		return respondIssues(c, issues)
	}

	file, err := formImage(c, h.uploads, "students")
	if err != nil {
		if upload.IsRejection(err) {
			return respondMessage(c, http.StatusBadRequest, err.Error())
		}
		return respondInternal(c, err)
	}

	p.apply(student)
	if file != nil {
		student.Image = file.PublicPath
	}

	if err := h.store.Update(ctx, student); err != nil {
		h.uploads.Remove(file)
		if errors.Is(err, store.ErrDuplicate) {
			return respondMessage(c, http.StatusConflict, "Student code or email already exists")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, student)
}

// Delete refuses to remove a student that still has enrollments; callers
// must drop those first.
func (h *StudentHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Student not found")
	}
	ctx := c.Request().Context()
	student, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Student not found")
		}
		return respondInternal(c, err)
	}

	n, err := h.store.EnrollmentCount(ctx, student.ID)
	if err != nil {
		return respondInternal(c, err)
	}
	if n > 0 {
		return respondMessage(c, http.StatusConflict, "Student has enrollments and cannot be deleted")
	}

	if err := h.store.Delete(ctx, student); err != nil {
		return respondInternal(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
