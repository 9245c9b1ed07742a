package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// FineHandler handles HTTP requests for fines.
type FineHandler struct {
	fines ports.FineService
}

func NewFineHandler(fines ports.FineService) *FineHandler {
	return &FineHandler{fines: fines}
}

type damageFineRequest struct {
	UserID      string  `json:"user_id"     validate:"required,uuid4"`
	BookID      string  `json:"book_id"     validate:"required,uuid4"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,max=500"`
}

type payFineRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// IssueDamage creates a damage fine against a user.
//
// @Summary      Issue a damage fine
// @Tags         fines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      damageFineRequest  true  "Fine details"
// @Success      201   {object}  domain.Fine
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/fines/damage [post]
func (h *FineHandler) IssueDamage(c echo.Context) error {
	var req damageFineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book_id")
	}

	fine, err := h.fines.IssueDamageFine(c.Request().Context(), ports.DamageFineInput{
		UserID:      userID,
		BookID:      bookID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fine)
}

// Pay records a payment against a fine.
//
// @Summary      Pay a fine
// @Tags         fines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Fine id"
// @Param        body  body      payFineRequest  true  "Payment"
// @Success      200   {object}  domain.Fine
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/fines/{id}/pay [post]
func (h *FineHandler) Pay(c echo.Context) error {
	fineID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req payFineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fine, err := h.fines.Pay(c.Request().Context(), fineID, req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fine)
}

// Waive cancels a pending fine.
//
// @Summary      Waive a fine
// @Tags         fines
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Fine id"
// @Success      200  {object}  domain.Fine
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/fines/{id}/waive [post]
func (h *FineHandler) Waive(c echo.Context) error {
	fineID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	fine, err := h.fines.Waive(c.Request().Context(), fineID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fine)
}

// List returns the authenticated user's fines.
//
// @Summary      List own fines
// @Tags         fines
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Fine
// @Failure      401  {object}  map[string]string
// @Router       /v1/fines [get]
func (h *FineHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	fines, err := h.fines.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if fines == nil {
		fines = []*domain.Fine{}
	}
	return c.JSON(http.StatusOK, fines)
}
