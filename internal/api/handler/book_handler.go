package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// BookHandler handles HTTP requests for the catalog.
type BookHandler struct {
	catalog ports.CatalogService
}

func NewBookHandler(catalog ports.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

type addBookRequest struct {
	ISBN        string `json:"isbn"         validate:"required,min=10,max=17"`
	Title       string `json:"title"        validate:"required,max=300"`
	Author      string `json:"author"       validate:"omitempty,max=150"`
	TotalCopies int    `json:"total_copies" validate:"required,gt=0"`
}

type listBooksResponse struct {
	Books []*domain.Book `json:"books"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// Add adds a new title to the catalog.
//
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addBookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/books [post]
func (h *BookHandler) Add(c echo.Context) error {
	var req addBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.catalog.AddBook(c.Request().Context(), ports.AddBookInput{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Author:      req.Author,
		TotalCopies: req.TotalCopies,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Get returns a single book.
//
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  domain.Book
// @Failure      404  {object}  map[string]string
// @Router       /v1/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	book, err := h.catalog.GetBook(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// List returns a page of the catalog.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Partial match on title, author or ISBN"
// @Param        available  query     bool    false  "Only books with a free copy"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  listBooksResponse
// @Router       /v1/books [get]
func (h *BookHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	available, _ := strconv.ParseBool(c.QueryParam("available"))

	filter := ports.ListBooksFilter{
		Search:        c.QueryParam("search"),
		AvailableOnly: available,
		Page:          page,
		Limit:         limit,
	}

	books, total, err := h.catalog.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if books == nil {
		books = []*domain.Book{}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	return c.JSON(http.StatusOK, listBooksResponse{
		Books: books,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}
