package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// CirculationHandler handles HTTP requests for borrowing and returning books.
type CirculationHandler struct {
	circulation ports.CirculationService
}

func NewCirculationHandler(circulation ports.CirculationService) *CirculationHandler {
	return &CirculationHandler{circulation: circulation}
}

type borrowRequest struct {
	BookID string `json:"book_id" validate:"required,uuid4"`
	// UserID lets an admin issue a loan on a student's behalf. Students
	// always borrow for themselves.
	UserID string `json:"user_id" validate:"omitempty,uuid4"`
}

type returnResponse struct {
	Transaction *domain.Transaction `json:"transaction"`
	Fine        *domain.Fine        `json:"fine,omitempty"`
}

// Borrow issues a loan.
//
// @Summary      Borrow a book
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      borrowRequest  true  "Loan details"
// @Success      201   {object}  domain.Transaction
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/transactions/borrow [post]
func (h *CirculationHandler) Borrow(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req borrowRequest
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

	borrower := userID
	if req.UserID != "" {
		if role != string(domain.RoleAdmin) {
			return domain.ErrForbidden
		}
		borrower, err = uuid.Parse(req.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
		}
	}

	tx, err := h.circulation.Borrow(c.Request().Context(), ports.BorrowInput{UserID: borrower, BookID: bookID})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tx)
}

// Return closes a loan.
//
// @Summary      Return a book
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction id"
// @Success      200  {object}  returnResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/transactions/{id}/return [post]
func (h *CirculationHandler) Return(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	txID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	// Students may only return their own loans.
	if role != string(domain.RoleAdmin) {
		tx, err := h.circulation.GetTransaction(c.Request().Context(), txID)
		if err != nil {
			return err
		}
		if tx.UserID != userID {
			return domain.ErrForbidden
		}
	}

	result, err := h.circulation.Return(c.Request().Context(), txID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, returnResponse{Transaction: result.Transaction, Fine: result.Fine})
}

// Get returns a single transaction.
//
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction id"
// @Success      200  {object}  domain.Transaction
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/transactions/{id} [get]
func (h *CirculationHandler) Get(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	txID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tx, err := h.circulation.GetTransaction(c.Request().Context(), txID)
	if err != nil {
		return err
	}
	if role != string(domain.RoleAdmin) && tx.UserID != userID {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, tx)
}

// List returns the authenticated user's loans.
//
// @Summary      List own transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Transaction
// @Failure      401  {object}  map[string]string
// @Router       /v1/transactions [get]
func (h *CirculationHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	txs, err := h.circulation.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}
	return c.JSON(http.StatusOK, txs)
}
