package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jsponceA/api-express-tienda/models"
	"github.com/jsponceA/api-express-tienda/store"
	"github.com/jsponceA/api-express-tienda/upload"
	"github.com/jsponceA/api-express-tienda/validation"
)

// CustomerStore is the persistence surface the customer handler needs.
type CustomerStore interface {
	List(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	Create(ctx context.Context, cu *models.Customer) error
	Update(ctx context.Context, cu *models.Customer) error
	Delete(ctx context.Context, cu *models.Customer) error
}

type CustomerHandler struct {
	store   CustomerStore
	uploads *upload.Saver
}

func NewCustomerHandler(store CustomerStore, uploads *upload.Saver) *CustomerHandler {
	return &CustomerHandler{store: store, uploads: uploads}
}

type customerPayload struct {
	FirstName   *string `json:"firstName"   form:"firstName"`
	LastName    *string `json:"lastName"    form:"lastName"`
	Email       *string `json:"email"       form:"email"`
	Phone       *string `json:"phone"       form:"phone"`
	Address     *string `json:"address"     form:"address"`
	City        *string `json:"city"        form:"city"`
	Country     *string `json:"country"     form:"country"`
	PostalCode  *string `json:"postalCode"  form:"postalCode"`
	DateOfBirth *string `json:"dateOfBirth" form:"dateOfBirth"`
	Status      *string `json:"status"      form:"status"`
	Image       *string `json:"image"       form:"image"`
}

func (p *customerPayload) validate(partial bool) map[string]string {
	v := validation.New()
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
	if p.Status != nil {
		v.Check(validation.In(*p.Status,
			models.CustomerStatusActive,
			models.CustomerStatusInactive,
			models.CustomerStatusBlocked,
		), "status", "status must be one of active, inactive, blocked")
	}
	if v.Valid() {
		return nil
	}
	return v.Errors
}

func (p *customerPayload) apply(m *models.Customer) {
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
	if p.Address != nil {
		m.Address = *p.Address
	}
	if p.City != nil {
		m.City = *p.City
	}
	if p.Country != nil {
		m.Country = *p.Country
	}
	if p.PostalCode != nil {
		m.PostalCode = *p.PostalCode
	}
	if p.DateOfBirth != nil {
		d := validation.ParseDate(*p.DateOfBirth)
		m.DateOfBirth = &d
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
}

func (h *CustomerHandler) List(c echo.Context) error {
	items, err := h.store.List(c.Request().Context())
	if err != nil {
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Customer not found")
	}
	customer, err := h.store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Customer not found")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var p customerPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(false); issues != nil {
		return respondIssues(c, issues)
	}

	file, err := formImage(c, h.uploads, "customers")
	if err != nil {
		if upload.IsRejection(err) {
			return respondMessage(c, http.StatusBadRequest, err.Error())
		}
		return respondInternal(c, err)
	}

	customer := models.Customer{Status: models.CustomerStatusActive}
	p.apply(&customer)
	if file != nil {
		customer.Image = file.PublicPath
	}

	if err := h.store.Create(c.Request().Context(), &customer); err != nil {
		h.uploads.Remove(file)
		if errors.Is(err, store.ErrDuplicate) {
			return respondMessage(c, http.StatusConflict, "A customer with this email already exists")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Customer not found")
	}
	ctx := c.Request().Context()
	customer, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Customer not found")
		}
		return respondInternal(c, err)
	}

	var p customerPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(true); issues != nil {
		return respondIssues(c, issues)
	}

	file, err := formImage(c, h.uploads, "customers")
	if err != nil {
		if upload.IsRejection(err) {
			return respondMessage(c, http.StatusBadRequest, err.Error())
		}
		return respondInternal(c, err)
	}

	p.apply(customer)
	if file != nil {
		customer.Image = file.PublicPath
	}

	if err := h.store.Update(ctx, customer); err != nil {
		h.uploads.Remove(file)
		if errors.Is(err, store.ErrDuplicate) {
			return respondMessage(c, http.StatusConflict, "A customer with this email already exists")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Customer not found")
	}
	ctx := c.Request().Context()
	customer, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Customer not found")
		}
		return respondInternal(c, err)
	}
	if err := h.store.Delete(ctx, customer); err != nil {
		return respondInternal(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
