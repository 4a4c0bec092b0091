package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jsponceA/api-express-tienda/upload"
)

// parseID reads the named path parameter as a positive integer id.
func parseID(c echo.Context, name string) (uint, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 1 {
		return 0, false
	}
	return uint(n), true
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"message": message})
}

// respondIssues reports schema validation failures with per-field detail.
func respondIssues(c echo.Context, issues map[string]string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"message": "Invalid data",
		"issues":  issues,
	})
}

// respondInternal logs the unanticipated error and returns a generic body
// that does not leak internals.
func respondInternal(c echo.Context, err error) error {
	log.WithError(err).WithField("path", c.Request().URL.Path).Error("unhandled error")
	return respondMessage(c, http.StatusInternalServerError, "Internal server error")
}

// formImage saves the optional image part of a multipart request into
// entityDir. Returns (nil, nil) when the request carries no image; a body
// that claims to be multipart but cannot be parsed is a rejection, not an
// absent image.
func formImage(c echo.Context, uploads *upload.Saver, entityDir string) (*upload.StoredFile, error) {
	fh, err := c.FormFile(upload.FieldName)
	switch {
	case err == nil:
		return uploads.Save(fh, entityDir)
	case errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart):
		// JSON requests and multipart requests without an image part.
		return nil, nil
	default:
		return nil, upload.ErrMalformedForm
	}
}
