package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

// ProfileHandler serves the saved profile of the caller.
type ProfileHandler struct {
	service         ports.ProfileService
	maxPictureBytes int64
}

func NewProfileHandler(service ports.ProfileService, maxPictureBytes int64) *ProfileHandler {
	return &ProfileHandler{service: service, maxPictureBytes: maxPictureBytes}
}

// Get returns the caller's saved profile.
//
// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// UploadPicture replaces the caller's profile picture.
//
// @Summary      Upload profile picture
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        picture  formData  file  true  "Image file"
// @Success      200      {object}  pictureResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      413      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /v1/profile/picture [put]
func (h *ProfileHandler) UploadPicture(c echo.Context) error {
	pic, err := readPicture(c, h.maxPictureBytes)
	if err != nil {
		return err
	}
	url, err := h.service.UploadPicture(c.Request().Context(), pic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pictureResponse{ProfilePictureURL: url})
}
