package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

const pictureField = "picture"

// OnboardingHandler handles HTTP requests for the onboarding wizard.
type OnboardingHandler struct {
	service         ports.OnboardingService
	maxPictureBytes int64
}

func NewOnboardingHandler(service ports.OnboardingService, maxPictureBytes int64) *OnboardingHandler {
	return &OnboardingHandler{service: service, maxPictureBytes: maxPictureBytes}
}

// Start begins a new wizard, discarding any in progress.
//
// @Summary      Start onboarding
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  onboardingResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/onboarding [post]
func (h *OnboardingHandler) Start(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	wizard, err := h.service.Start(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOnboardingResponse(wizard))
}

// Get returns the wizard in progress.
//
// @Summary      Get onboarding progress
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  onboardingResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/onboarding [get]
func (h *OnboardingHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	wizard, err := h.service.Get(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(wizard))
}

// SubmitBirthday stores the date of birth.
//
// @Summary      Submit birthday
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      birthdayRequest  true  "Date of birth"
// @Success      200   {object}  onboardingResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/onboarding/birthday [put]
func (h *OnboardingHandler) SubmitBirthday(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req birthdayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	dob, ok := parseDate(req.DateOfBirth)
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "date_of_birth must be YYYY-MM-DD or RFC 3339")
	}

	wizard, err := h.service.SubmitBirthday(c.Request().Context(), session.UserID, ports.BirthdayInput{DateOfBirth: dob})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(wizard))
}

// SelectRole stores the selected role.
//
// @Summary      Select role
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleRequest  true  "Role"
// @Success      200   {object}  onboardingResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/onboarding/role [put]
func (h *OnboardingHandler) SelectRole(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	wizard, err := h.service.SelectRole(c.Request().Context(), session.UserID, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(wizard))
}

// SubmitRoleDetails stores the details of the selected role.
//
// @Summary      Submit role details
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleDetailsRequest  true  "Artist or casting details"
// @Success      200   {object}  onboardingResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/onboarding/details [put]
func (h *OnboardingHandler) SubmitRoleDetails(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req roleDetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	wizard, err := h.service.SubmitRoleDetails(c.Request().Context(), session.UserID, toRoleDetailsInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(wizard))
}

// SubmitLocation stores the location.
//
// @Summary      Submit location
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      locationRequest  true  "Location"
// @Success      200   {object}  onboardingResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/onboarding/location [put]
func (h *OnboardingHandler) SubmitLocation(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	wizard, err := h.service.SubmitLocation(c.Request().Context(), session.UserID, toLocation(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(wizard))
}

// SubmitPicture stores the profile picture sent as multipart field "picture".
//
// @Summary      Submit profile picture
// @Tags         onboarding
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        picture  formData  file  true  "Image file"
// @Success      200      {object}  onboardingResponse
// @Failure      400      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Failure      413      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/onboarding/picture [put]
func (h *OnboardingHandler) SubmitPicture(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	pic, err := readPicture(c, h.maxPictureBytes)
	if err != nil {
		return err
	}

	wizard, err := h.service.SubmitProfilePicture(c.Request().Context(), session.UserID, pic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(wizard))
}

// SkipPicture clears the profile picture.
//
// @Summary      Skip profile picture
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  onboardingResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/onboarding/picture [delete]
func (h *OnboardingHandler) SkipPicture(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	wizard, err := h.service.SkipProfilePicture(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(wizard))
}

// Complete saves the profile and ends the wizard.
//
// @Summary      Complete onboarding
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  submitResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/onboarding/complete [post]
func (h *OnboardingHandler) Complete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	result, err := h.service.Complete(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSubmitResponse(result))
}

// readPicture reads the multipart "picture" field, rejecting files above
// maxBytes. The content type falls back to sniffing when the part omits it.
func readPicture(c echo.Context, maxBytes int64) (domain.Picture, error) {
	fh, err := c.FormFile(pictureField)
	if err != nil {
		return domain.Picture{}, echo.NewHTTPError(http.StatusBadRequest, "picture file is required")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return domain.Picture{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "picture is too large")
	}

	f, err := fh.Open()
	if err != nil {
		return domain.Picture{}, echo.NewHTTPError(http.StatusBadRequest, "picture could not be read")
	}
	defer f.Close()

	limit := maxBytes
	if limit <= 0 {
		limit = fh.Size
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return domain.Picture{}, echo.NewHTTPError(http.StatusBadRequest, "picture could not be read")
	}
	if int64(len(data)) > limit {
		return domain.Picture{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "picture is too large")
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data)
	}
	return domain.Picture{Data: data, ContentType: contentType}, nil
}
