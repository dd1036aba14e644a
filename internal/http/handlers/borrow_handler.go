// Borrow and return HTTP handlers.
//
// This file exposes the lending endpoints:
//   - POST /book/{id}/borrow                    (borrow one copy)
//   - POST /book/{id}/return                    (return newest outstanding borrow)
//   - POST /book/return-record/{borrowRecordId} (return a specific record)
//
// Per the external contract, every lending failure answers 400: a missing
// book and an out-of-stock book are distinguished only by the error code in
// the envelope, not the status.
//
// When the request carries a previously completed Idempotency-Key, the
// middleware short-circuits before these handlers run, so a retried borrow
// never lends a second copy.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkoutsos/go-library-backend/internal/services"
)

// BorrowBook godoc
// @ID          borrowBook
// @Summary     Borrow a copy of a book
// @Description Lends one copy to the named user and opens a borrow record.
// @Tags        Borrowing
// @Accept      json
// @Produce     json
// @Param       id    path  string                   true  "Book ID"
// @Param       body  body  services.BorrowRequest   true  "Borrower"
// @Success     200  {string}  string  "OK"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid request, book absent, or no copies available"
// @Router      /book/{id}/borrow [post]
func (h *Handlers) BorrowBook(c *gin.Context) {
	var req services.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.books.Borrow(c.Request.Context(), c.Param("id"), req.UserName); err != nil {
		failDomain(c, err, http.StatusBadRequest)
		return
	}
	acknowledged(c)
}

// ReturnBook godoc
// @ID          returnBook
// @Summary     Return a borrowed book
// @Description Closes the most recently opened outstanding borrow record of
// @Description the book.
// @Tags        Borrowing
// @Produce     json
// @Param       id  path  string  true  "Book ID"
// @Success     200  {string}  string  "OK"
// @Failure     400  {object}  handlers.ErrorResponse  "Book absent or nothing outstanding"
// @Router      /book/{id}/return [post]
func (h *Handlers) ReturnBook(c *gin.Context) {
	if err := h.books.ReturnByBook(c.Request.Context(), c.Param("id")); err != nil {
		failDomain(c, err, http.StatusBadRequest)
		return
	}
	acknowledged(c)
}

// ReturnRecord godoc
// @ID          returnRecord
// @Summary     Return by borrow record id
// @Description Closes the open borrow record with the given id, wherever it
// @Description lives in the catalogue.
// @Tags        Borrowing
// @Produce     json
// @Param       borrowRecordId  path  string  true  "Borrow record ID"
// @Success     200  {string}  string  "OK"
// @Failure     400  {object}  handlers.ErrorResponse  "Record absent or already returned"
// @Router      /book/return-record/{borrowRecordId} [post]
func (h *Handlers) ReturnRecord(c *gin.Context) {
	if err := h.books.ReturnByRecord(c.Request.Context(), c.Param("borrowRecordId")); err != nil {
		failDomain(c, err, http.StatusBadRequest)
		return
	}
	acknowledged(c)
}
