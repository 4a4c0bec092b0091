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

// BookStore is the persistence surface the book handler needs.
type BookStore interface {
	List(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, b *models.Book) error
}

type BookHandler struct {
	store BookStore
}

func NewBookHandler(store BookStore) *BookHandler {
	return &BookHandler{store: store}
}

type bookPayload struct {
	Title           *string  `json:"title"`
	Author          *string  `json:"author"`
	ISBN            *string  `json:"isbn"`
	Publisher       *string  `json:"publisher"`
	PublicationYear *int     `json:"publicationYear"`
	Genre           *string  `json:"genre"`
	Language        *string  `json:"language"`
	Pages           *int     `json:"pages"`
	Price           *float64 `json:"price"`
	Description     *string  `json:"description"`
	InStock         *bool    `json:"inStock"`
	Rating          *float64 `json:"rating"`
}

func (p *bookPayload) validate(partial bool) map[string]string {
	v := validation.New()
	if !partial || p.Title != nil {
		v.Check(p.Title != nil && strings.TrimSpace(*p.Title) != "", "title", "title is required")
	}
	if !partial || p.Author != nil {
		v.Check(p.Author != nil && strings.TrimSpace(*p.Author) != "", "author", "author is required")
	}
	if !partial || p.Price != nil {
		v.Check(p.Price != nil && *p.Price >= 0, "price", "price must be a non-negative number")
	}
	if p.ISBN != nil {
		v.Check(len(*p.ISBN) >= 10 && len(*p.ISBN) <= 20, "isbn", "isbn must be between 10 and 20 characters")
	}
	if p.PublicationYear != nil {
		maxYear := time.Now().Year() + 1
		v.Check(*p.PublicationYear >= 1000 && *p.PublicationYear <= maxYear, "publicationYear", "publicationYear is out of range")
	}
	if p.Pages != nil {
		v.Check(*p.Pages >= 1, "pages", "pages must be a positive integer")
	}
	if p.Rating != nil {
		v.Check(*p.Rating >= 0 && *p.Rating <= 5, "rating", "rating must be between 0 and 5")
	}
	if v.Valid() {
		return nil
	}
	return v.Errors
}

func (p *bookPayload) apply(m *models.Book) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Author != nil {
		m.Author = *p.Author
	}
	if p.ISBN != nil {
		m.ISBN = p.ISBN
	}
	if p.Publisher != nil {
		m.Publisher = *p.Publisher
	}
	if p.PublicationYear != nil {
		m.PublicationYear = p.PublicationYear
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.Language != nil {
		m.Language = *p.Language
	}
	if p.Pages != nil {
		m.Pages = p.Pages
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
	if p.Rating != nil {
		m.Rating = p.Rating
	}
}

func (h *BookHandler) List(c echo.Context) error {
	items, err := h.store.List(c.Request().Context())
	if err != nil {
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *BookHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Book not found")
	}
	book, err := h.store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Book not found")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Create(c echo.Context) error {
	var p bookPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(false); issues != nil {
		return respondIssues(c, issues)
	}

	book := models.Book{Language: models.DefaultBookLanguage, InStock: true}
	p.apply(&book)

	if err := h.store.Create(c.Request().Context(), &book); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return respondMessage(c, http.StatusConflict, "A book with this ISBN already exists")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Book not found")
	}
	ctx := c.Request().Context()
	book, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Book not found")
		}
		return respondInternal(c, err)
	}

	var p bookPayload
	if err := c.Bind(&p); err != nil {
		return respondMessage(c, http.StatusBadRequest, "Invalid request body")
	}
	if issues := p.validate(true); issues != nil {
		return respondIssues(c, issues)
	}

	p.apply(book)
	if err := h.store.Update(ctx, book); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return respondMessage(c, http.StatusConflict, "A book with this ISBN already exists")
		}
		return respondInternal(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondMessage(c, http.StatusNotFound, "Book not found")
	}
	ctx := c.Request().Context()
	book, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondMessage(c, http.StatusNotFound, "Book not found")
		}
		return respondInternal(c, err)
	}
	if err := h.store.Delete(ctx, book); err != nil {
		return respondInternal(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
