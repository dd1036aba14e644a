// Request validation rules.
//
// These are pure functions evaluated before any store mutation. Checks run
// in a fixed order and short-circuit on the first failure; errors are never
// aggregated. Messages name the offending field so they can be shown to
// users as-is.
package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// maxNameLen bounds title, author, and borrower name lengths (runes).
	maxNameLen = 256
	// maxISBNLen bounds the raw ISBN string before format checks.
	maxISBNLen = 20
	// maxSearchTermLen bounds the catalogue search term.
	maxSearchTermLen = 100
	// minTotalCopies and maxTotalCopies bound a book's capacity.
	minTotalCopies = 1
	maxTotalCopies = 999
	// minPublicationYear is the earliest accepted publication year.
	minPublicationYear = 1000
)

var (
	isbn10RE = regexp.MustCompile(`^\d{10}$`)
	isbn13RE = regexp.MustCompile(`^(978|979)\d{10}$`)
)

// AddBookRequest is the payload for creating a catalogue entry. The
// publication year arrives as a string and is parsed during validation.
type AddBookRequest struct {
	Title             string `json:"title"`
	Author            string `json:"author"`
	YearOfPublication string `json:"yearOfPublication"`
	ISBN              string `json:"isbn"`
	TotalCopies       int    `json:"totalCopies"`
}

// BorrowRequest is the payload for borrowing a copy of a book.
type BorrowRequest struct {
	UserName string `json:"userName"`
}

// ValidateAddBookRequest checks an add-book payload. Order: request
// presence, title, author, ISBN, publication year, total copies.
func ValidateAddBookRequest(req *AddBookRequest) error {
	if req == nil {
		return Errf(KindRequired, "a book request is required")
	}
	if err := validateName("Title", req.Title); err != nil {
		return err
	}
	if err := validateName("Author", req.Author); err != nil {
		return err
	}
	if err := validateISBN(req.ISBN); err != nil {
		return err
	}
	if err := validateYear(req.YearOfPublication); err != nil {
		return err
	}
	if req.TotalCopies < minTotalCopies || req.TotalCopies > maxTotalCopies {
		return Errf(KindOutOfRange,
			fmt.Sprintf("TotalCopies must be between %d and %d", minTotalCopies, maxTotalCopies))
	}
	return nil
}

// ValidateBorrowRequest checks a borrow payload.
func ValidateBorrowRequest(req *BorrowRequest) error {
	if req == nil {
		return Errf(KindRequired, "a borrow request is required")
	}
	return validateName("UserName", req.UserName)
}

// ValidateSearchTerm checks a catalogue search term. Absent or blank terms
// are always valid (search is optional); only over-long terms fail.
func ValidateSearchTerm(term string) error {
	if utf8.RuneCountInString(term) > maxSearchTermLen {
		return Errf(KindOutOfRange,
			fmt.Sprintf("search term must be at most %d characters", maxSearchTermLen))
	}
	return nil
}

// validateName enforces the shared non-empty 1..256 rune bound used by
// Title, Author, and UserName.
func validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Errf(KindRequired, field+" is required")
	}
	if utf8.RuneCountInString(value) > maxNameLen {
		return Errf(KindOutOfRange,
			fmt.Sprintf("%s must be between 1 and %d characters", field, maxNameLen))
	}
	return nil
}

// validateISBN accepts an empty ISBN (optional field). A non-empty value
// must be at most 20 characters and, after stripping hyphens and spaces,
// form an ISBN-10 (10 digits) or ISBN-13 (13 digits starting 978/979).
func validateISBN(isbn string) error {
	if strings.TrimSpace(isbn) == "" {
		return nil
	}
	if utf8.RuneCountInString(isbn) > maxISBNLen {
		return Errf(KindOutOfRange,
			fmt.Sprintf("ISBN must be at most %d characters", maxISBNLen))
	}
	stripped := strings.NewReplacer("-", "", " ", "").Replace(isbn)
	if !isbn10RE.MatchString(stripped) && !isbn13RE.MatchString(stripped) {
		return Errf(KindFormatInvalid, "ISBN must be a valid ISBN-10 or ISBN-13")
	}
	return nil
}

// validateYear accepts an empty year (optional field). A non-empty value
// must parse as an integer within [1000, current calendar year].
func validateYear(year string) error {
	if strings.TrimSpace(year) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return Errf(KindFormatInvalid, "YearOfPublication must be a valid number")
	}
	maxYear := time.Now().Year()
	if n < minPublicationYear || n > maxYear {
		return Errf(KindOutOfRange,
			fmt.Sprintf("YearOfPublication must be between %d and %d", minPublicationYear, maxYear))
	}
	return nil
}
