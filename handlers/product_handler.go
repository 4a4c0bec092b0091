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

// ProductStore is the persistence surface the product handler needs.
type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, p *models.Product) error
}

type ProductHandler struct {
	store   ProductStore
	uploads *upload.Saver
}

func NewProductHandler(store ProductStore, uploads *upload.Saver) *ProductHandler {
	return &ProductHandler{store: store, uploads: uploads}
}

type productPayload struct {
	Name        *string  `json:"name"        form:"name"`
	Price       *float64 `json:"price"       form:"price"`
	Description *string  `json:"description" form:"description"`
	InStock     *bool    `json:"inStock"     form:"inStock"`
	Image       *string  `json:"image"       form:"image"`
}

// validate checks the payload; in partial mode absent fields are skipped but
// present fields must still satisfy their constraints.
func (p *productPayload) validate(partial bool) map[string]string {
	v := validation.New()
	if !partial || p.Name != nil {
		v.Check(p.Name != nil && strings.TrimSpace(*p.Name) != "", "name", "name is required")
	}
	if !partial || p.Price != nil {
		v.Check(p.Price != nil && *p.Price >= 0, "price", "price must be a non-negative number")
	}
	if v.Valid() {
		return nil
	}
	return v.Errors
}

// apply copies the present fields onto the record.
func (p *productPayload) apply(m *models.Product) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.InStock != nil {
		m.InStock = *p.InStock
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	items, err := h.store.List(c.Request().Context())
	if err != nil {
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Product not found")
	}
	product, err := h.store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Product not found")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var p productPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(false); issues != nil {
		return respondIssues(c, issues)
	}

	file, err := formImage(c, h.uploads, "products")
	if err != nil {
		if upload.IsRejection(err) {
			return respondMessage(c, http.StatusBadRequest, err.Error())
		}
		return respondInternal(c, err)
	}

	product := models.Product{InStock: true}
	p.apply(&product)
	if file != nil {
		product.Image = file.PublicPath
	}

	if err := h.store.Create(c.Request().Context(), &product); err != nil {
		h.uploads.Remove(file)
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Product not found")
	}
	ctx := c.Request().Context()
	product, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Product not found")
		}
		return respondInternal(c, err)
	}

	var p productPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(true); issues != nil {
		return respondIssues(c, issues)
	}

	file, err := formImage(c, h.uploads, "products")
	if err != nil {
		if upload.IsRejection(err) {
			return respondMessage(c, http.StatusBadRequest, err.Error())
		}
		return respondInternal(c, err)
	}

	p.apply(product)
	if file != nil {
		product.Image = file.PublicPath
	}

	if err := h.store.Update(ctx, product); err != nil {
		h.uploads.Remove(file)
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Product not found")
	}
	ctx := c.Request().Context()
	product, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Product not found")
		}
		return respondInternal(c, err)
	}
	if err := h.store.Delete(ctx, product); err != nil {
		return respondInternal(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
