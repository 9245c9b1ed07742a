package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// ReservationHandler handles HTTP requests for the hold queue.
type ReservationHandler struct {
	reservations ports.ReservationService
}

func NewReservationHandler(reservations ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type reserveRequest struct {
	BookID string `json:"book_id" validate:"required,uuid4"`
}

// Reserve places a hold on a book.
//
// @Summary      Reserve a book
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reserveRequest  true  "Reservation details"
// @Success      201   {object}  domain.Reservation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/reservations [post]
func (h *ReservationHandler) Reserve(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req reserveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book_id")
	}

	res, err := h.reservations.Reserve(c.Request().Context(), userID, bookID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

// MarkReady flags a hold as ready for pickup.
//
// @Summary      Mark a reservation ready
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation id"
// @Success      200  {object}  domain.Reservation
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/reservations/{id}/ready [post]
func (h *ReservationHandler) MarkReady(c echo.Context) error {
	resID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	res, err := h.reservations.MarkReady(c.Request().Context(), resID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel withdraws one of the authenticated user's holds.
//
// @Summary      Cancel a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation id"
// @Success      200  {object}  domain.Reservation
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	resID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	res, err := h.reservations.Cancel(c.Request().Context(), resID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// List returns the authenticated user's holds.
//
// @Summary      List own reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Reservation
// @Failure      401  {object}  map[string]string
// @Router       /v1/reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	list, err := h.reservations.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Reservation{}
	}
	return c.JSON(http.StatusOK, list)
}
