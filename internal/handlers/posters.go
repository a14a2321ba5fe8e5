package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/Dafin1723/fikri-production/internal/services"
)

type PostersHandler struct {
	posters *services.PosterService
}

func NewPostersHandler(posters *services.PosterService) *PostersHandler {
	return &PostersHandler{
		posters: posters,
	}
}

// ListPosters godoc
// @Summary     List promotional posters
// @Tags        posters
// @Produce     json
// @Success     200 {object} models.PosterListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /posters [get]
func (h *PostersHandler) ListPosters(c *gin.Context) {
	posters, err := h.posters.ListPosters(c.Request.Context())
	if err != nil {
		respondError(c, "list posters", err)
		return
	}

	c.JSON(http.StatusOK, models.PosterListResponse{Posters: posters})
}

// ServeImage godoc
// @Summary     Poster image
// @Tags        posters
// @Produce     octet-stream
// @Param       filename path string true "Stored image name"
// @Success     200 {file} file
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /posters/{filename} [get]
func (h *PostersHandler) ServeImage(c *gin.Context) {
	name := c.Param("filename")
	rc, err := h.posters.OpenImage(c.Request.Context(), name)
	if err != nil {
		respondError(c, "open poster image", err)
		return
	}
	serveStored(c, rc, name)
}

// UploadPoster godoc
// @Summary     Upload a poster
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    AdminSession
// @Param       product_name formData string true "Product name"
// @Param       title        formData string false "Title"
// @Param       description  formData string false "Description"
// @Param       image        formData file   true "Image (png, jpg, jpeg, gif, webp)"
// @Success     201 {object} models.Poster
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/posters [post]
func (h *PostersHandler) UploadPoster(c *gin.Context) {
	var sub models.PosterSubmission
	if err := c.ShouldBind(&sub); err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "the upload is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid form",
			Message: err.Error(),
		})
		return
	}

	var image *services.FileUpload
	if fh, err := c.FormFile("image"); err == nil {
		image = &services.FileUpload{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
		}
	}

	poster, err := h.posters.UploadPoster(c.Request.Context(), sub, image)
	if err != nil {
		respondError(c, "upload poster", err)
		return
	}

	c.JSON(http.StatusCreated, poster)
}

// DeletePoster godoc
// @Summary     Delete a poster
// @Description Deletes the poster and its image.
// @Tags        admin
// @Produce     json
// @Security    AdminSession
// @Param       poster_id path int true "Poster ID"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/posters/{poster_id} [delete]
func (h *PostersHandler) DeletePoster(c *gin.Context) {
	id, ok := parseID(c, "poster_id")
	if !ok {
		return
	}

	if _, err := h.posters.DeletePoster(c.Request.Context(), id); err != nil {
		respondError(c, "delete poster", err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "poster deleted"})
}
