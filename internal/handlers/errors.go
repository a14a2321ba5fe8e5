package handlers

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/Dafin1723/fikri-production/internal/services"
	"github.com/Dafin1723/fikri-production/internal/uploads"
)

const internalErrorMessage = "internal server error"

// respondError maps service errors onto HTTP responses. Anything not
// recognised is logged and reported without detail.
func respondError(c *gin.Context, action string, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation failed",
			Message: strings.Join(vErr.Errors, "; "),
		})
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrPosterNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid status",
			Message: "status must be one of pending, processing, done",
		})
	case errors.Is(err, uploads.ErrInvalidName):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file name"})
	case errors.Is(err, fs.ErrNotExist):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
	default:
		log.Printf("Error: failed to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   internalErrorMessage,
			Message: "failed to " + action,
		})
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + strings.ReplaceAll(param, "_", " ")})
		return 0, false
	}
	return id, true
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// serveStored streams a stored file with a content type derived from its
// extension.
func serveStored(c *gin.Context, rc io.ReadCloser, name string) {
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
