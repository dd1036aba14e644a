// Package domain defines the catalogue entities: books, their borrow
// records, and the flattened borrowed-book projection served to clients.
// These types are what gets serialized into the catalogue file, so their
// JSON field names are part of the persisted-state contract.
package domain

import "time"

// Book is a catalogue entry together with its full borrow history.
//
// AvailableCopies is derived state: it always equals TotalCopies minus the
// number of open borrow records. It is persisted for readability of the
// catalogue file but never trusted on load; callers must recompute it via
// RecomputeAvailability after any change to BorrowHistory (and after
// deserialization).
type Book struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Author            string         `json:"author"`
	YearOfPublication int            `json:"yearOfPublication,omitempty"`
	ISBN              string         `json:"isbn,omitempty"`
	TotalCopies       int            `json:"totalCopies"`
	AvailableCopies   int            `json:"availableCopies"`
	BorrowHistory     []BorrowRecord `json:"borrowHistory"`
}

// BorrowRecord is one lending of one copy of a book. A nil ReturnDate means
// the copy is still out. Records are appended on borrow and mutated in place
// exactly once on return; they are never removed.
type BorrowRecord struct {
	ID         string     `json:"id"`
	User       string     `json:"user"`
	BorrowDate time.Time  `json:"borrowDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
}

// Open reports whether the record represents an outstanding borrow.
func (r *BorrowRecord) Open() bool { return r.ReturnDate == nil }

// OpenBorrowCount returns the number of borrow records without a return date.
func (b *Book) OpenBorrowCount() int {
	n := 0
	for i := range b.BorrowHistory {
		if b.BorrowHistory[i].Open() {
			n++
		}
	}
	return n
}

// RecomputeAvailability re-derives AvailableCopies from the borrow history.
// It is the single place the availability invariant is enforced.
func (b *Book) RecomputeAvailability() {
	b.AvailableCopies = b.TotalCopies - b.OpenBorrowCount()
}

// Clone returns a deep copy of the book, including its borrow history.
// The store hands out clones so callers can never mutate shared state.
func (b *Book) Clone() *Book {
	cp := *b
	if b.BorrowHistory != nil {
		cp.BorrowHistory = make([]BorrowRecord, len(b.BorrowHistory))
		copy(cp.BorrowHistory, b.BorrowHistory)
	}
	return &cp
}

// BorrowedBookInfo is a read-only projection joining a book with one of its
// borrow records. It is computed on demand and never persisted.
type BorrowedBookInfo struct {
	BookID         string     `json:"bookId"`
	BookTitle      string     `json:"bookTitle"`
	BookAuthor     string     `json:"bookAuthor"`
	BorrowRecordID string     `json:"borrowRecordId"`
	UserName       string     `json:"userName"`
	BorrowDate     time.Time  `json:"borrowDate"`
	ReturnDate     *time.Time `json:"returnDate,omitempty"`
}

// ProjectBorrows flattens every borrow record of every book into
// BorrowedBookInfo entries, preserving book order and record order.
// Already-returned records are included.
func ProjectBorrows(books []Book) []BorrowedBookInfo {
	out := make([]BorrowedBookInfo, 0)
	for i := range books {
		b := &books[i]
		for j := range b.BorrowHistory {
			r := &b.BorrowHistory[j]
			out = append(out, BorrowedBookInfo{
				BookID:         b.ID,
				BookTitle:      b.Title,
				BookAuthor:     b.Author,
				BorrowRecordID: r.ID,
				UserName:       r.User,
				BorrowDate:     r.BorrowDate,
				ReturnDate:     r.ReturnDate,
			})
		}
	}
	return out
}
