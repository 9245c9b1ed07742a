package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// ProfileHandler handles HTTP requests for the authenticated user's profile.
type ProfileHandler struct {
	userService ports.UserService
}

func NewProfileHandler(userService ports.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

type updateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"     validate:"omitempty,max=20"`
	Address  *string `json:"address"   validate:"omitempty,max=500"`
}

// Get returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Deactivate disables a user account.
//
// @Summary      Deactivate a user (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      204  "account deactivated"
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id}/deactivate [post]
func (h *ProfileHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Update applies partial changes to the authenticated user's profile.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
