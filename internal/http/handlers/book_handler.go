// Book HTTP handlers.
//
// This file exposes the read and create endpoints for catalogue resources:
//   - GET  /book            (full catalogue)
//   - GET  /book/{id}       (single book)
//   - GET  /book/search     (case-insensitive substring search)
//   - POST /book            (create)
//   - GET  /book/borrowed   (flattened borrow projections)
//
// Handlers are transport-thin: they validate input, call the book service,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkoutsos/go-library-backend/internal/domain"
	"github.com/dkoutsos/go-library-backend/internal/services"
)

// BookService defines the catalogue operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use.
type BookService interface {
	// List returns the full catalogue in creation order.
	List(ctx context.Context) []domain.Book
	// Get returns one book by id.
	Get(ctx context.Context, id string) (*domain.Book, error)
	// Search filters the catalogue by a case-insensitive substring term.
	Search(ctx context.Context, term string) []domain.Book
	// Add validates and stores a new book, assigning its id.
	Add(ctx context.Context, req *services.AddBookRequest) (*domain.Book, error)
	// Borrow lends one copy of a book to a named user.
	Borrow(ctx context.Context, bookID, userName string) error
	// ReturnByBook closes the newest outstanding borrow of a book.
	ReturnByBook(ctx context.Context, bookID string) error
	// ReturnByRecord closes the open borrow record with the given id.
	ReturnByRecord(ctx context.Context, recordID string) error
	// ListBorrowed flattens all borrow records into projections.
	ListBorrowed(ctx context.Context) []domain.BorrowedBookInfo
}

// Handlers groups the HTTP endpoints of the catalogue API.
type Handlers struct {
	books BookService
}

// New constructs a Handlers instance bound to the given service.
func New(books BookService) *Handlers {
	return &Handlers{books: books}
}

// ListBooks godoc
// @ID          listBooks
// @Summary     List all books
// @Description Returns every book in the catalogue, in creation order.
// @Tags        Books
// @Produce     json
// @Success     200  {array}  domain.Book
// @Router      /book [get]
func (h *Handlers) ListBooks(c *gin.Context) {
	ok(c, http.StatusOK, h.books.List(c.Request.Context()))
}

// GetBook godoc
// @ID          getBook
// @Summary     Get a book by id
// @Tags        Books
// @Produce     json
// @Param       id  path  string  true  "Book ID"
// @Success     200  {object}  domain.Book
// @Failure     404  {object}  handlers.ErrorResponse  "Book not found"
// @Router      /book/{id} [get]
func (h *Handlers) GetBook(c *gin.Context) {
	b, err := h.books.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failDomain(c, err, http.StatusNotFound)
		return
	}
	ok(c, http.StatusOK, b)
}

// SearchBooks godoc
// @ID          searchBooks
// @Summary     Search books
// @Description Case-insensitive substring match against title, author, or
// @Description ISBN. A blank term returns the full catalogue.
// @Tags        Books
// @Produce     json
// @Param       searchTerm  query  string  false  "Search term (max 100 chars)"
// @Success     200  {array}   domain.Book
// @Failure     400  {object}  handlers.ErrorResponse  "Term too long"
// @Router      /book/search [get]
func (h *Handlers) SearchBooks(c *gin.Context) {
	term := c.Query("searchTerm")
	if err := services.ValidateSearchTerm(term); err != nil {
		failDomain(c, err, http.StatusBadRequest)
		return
	}
	ok(c, http.StatusOK, h.books.Search(c.Request.Context(), term))
}

// AddBook godoc
// @ID          addBook
// @Summary     Add a book to the catalogue
// @Description Validates the payload, stores the book with a server-assigned
// @Description id, and returns it with a Location header.
// @Tags        Books
// @Accept      json
// @Produce     json
// @Param       body  body  services.AddBookRequest  true  "Book payload"
// @Success     201  {object}  domain.Book
// @Header      201  {string}  Location  "URL of the created book"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Router      /book [post]
func (h *Handlers) AddBook(c *gin.Context) {
	var req services.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	b, err := h.books.Add(c.Request.Context(), &req)
	if err != nil {
		failDomain(c, err, http.StatusBadRequest)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+b.ID)
	ok(c, http.StatusCreated, b)
}

// ListBorrowed godoc
// @ID          listBorrowed
// @Summary     List all borrow records
// @Description Returns every borrow record across all books, including
// @Description already-returned ones, flattened with book details.
// @Tags        Borrowing
// @Produce     json
// @Success     200  {array}  domain.BorrowedBookInfo
// @Router      /book/borrowed [get]
func (h *Handlers) ListBorrowed(c *gin.Context) {
	ok(c, http.StatusOK, h.books.ListBorrowed(c.Request.Context()))
}
