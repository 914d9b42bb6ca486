package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/activityhub/membership-api/internal/api/metrics"
	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

// UploadHandler streams multipart images to the object store.
type UploadHandler struct {
	uploadService ports.UploadService
}

func NewUploadHandler(uploadService ports.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadUserImage stores a profile image for the authenticated member.
//
// @Summary      Upload a profile image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file (max 2MB)"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/users/picture [post]
func (h *UploadHandler) UploadUserImage(c echo.Context) error {
	return h.upload(c, "user")
}

// UploadActivityImage stores an image for activity content.
//
// @Summary      Upload an activity image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file (max 2MB)"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/admin/activities/upload_image [post]
func (h *UploadHandler) UploadActivityImage(c echo.Context) error {
	return h.upload(c, "activity")
}

func (h *UploadHandler) upload(c echo.Context, scope string) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.NewValidationError("no file uploaded")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	url, err := h.uploadService.UploadImage(c.Request().Context(), ports.UploadInput{
		Scope:       scope,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, uploadResponse{URL: url})
}
