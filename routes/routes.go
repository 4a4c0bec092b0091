package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jsponceA/api-express-tienda/handlers"
)

// Handlers groups the resource handlers wired into the router.
type Handlers struct {
	Products    *handlers.ProductHandler
	Books       *handlers.BookHandler
	Customers   *handlers.CustomerHandler
	Students    *handlers.StudentHandler
	Enrollments *handlers.EnrollmentHandler
}

// Register wires all HTTP routes.
func Register(e *echo.Echo, h Handlers) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "PRIVATE API - Express Tienda"})
	})
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	api.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "PRIVATE - API v1.0.0"})
	})

	api.GET("/products", h.Products.List)
	api.GET("/products/:id", h.Products.Get)
	api.POST("/products", h.Products.Create)
	api.PUT("/products/:id", h.Products.Update)
	api.DELETE("/products/:id", h.Products.Delete)

	api.GET("/books", h.Books.List)
	api.GET("/books/:id", h.Books.Get)
	api.POST("/books", h.Books.Create)
	api.PUT("/books/:id", h.Books.Update)
	api.DELETE("/books/:id", h.Books.Delete)

	api.GET("/customers", h.Customers.List)
	api.GET("/customers/:id", h.Customers.Get)
	api.POST("/customers", h.Customers.Create)
	api.PUT("/customers/:id", h.Customers.Update)
	api.DELETE("/customers/:id", h.Customers.Delete)

	api.GET("/students", h.Students.List)
	api.GET("/students/:id", h.Students.Get)
	api.POST("/students", h.Students.Create)
	api.PUT("/students/:id", h.Students.Update)
	api.DELETE("/students/:id", h.Students.Delete)

	api.GET("/enrollments", h.Enrollments.List)
	api.GET("/enrollments/student/:studentId", h.Enrollments.ListByStudent)
	api.GET("/enrollments/:id", h.Enrollments.Get)
	api.POST("/enrollments", h.Enrollments.Create)
	api.PUT("/enrollments/:id", h.Enrollments.Update)
	api.DELETE("/enrollments/:id", h.Enrollments.Delete)
}
