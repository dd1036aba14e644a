// Package services – BookService
//
// BookService is the sole owner of the in-memory book collection. Every
// read and mutation goes through it, and all operations are serialized
// behind a single mutex so the borrow check-then-act sequence is atomic
// with respect to concurrent requests.
//
// After every successful mutation the full collection is rewritten to the
// catalogue file. A failed write is logged and counted but never fails the
// originating operation: the in-memory state stays authoritative for the
// remainder of the process lifetime.
package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkoutsos/go-library-backend/internal/domain"
	"github.com/dkoutsos/go-library-backend/internal/repo"
	"github.com/dkoutsos/go-library-backend/internal/search"
)

// BookService manages the catalogue and its borrow/return lifecycle.
// Safe for concurrent use.
type BookService struct {
	mu    sync.Mutex
	books []domain.Book
	file  *repo.CatalogFile

	// now and newID are swappable for tests.
	now   func() time.Time
	newID func() string
}

// NewBookService loads the catalogue from file, or seeds the default book
// set when the file is missing, empty, or unparsable. Availability is
// recomputed from borrow history in either case; the stored value is never
// trusted. A freshly seeded catalogue is persisted immediately.
func NewBookService(file *repo.CatalogFile) *BookService {
	s := &BookService{
		file:  file,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}

	books, err := file.Load()
	if err != nil {
		if err != repo.ErrNoCatalog {
			log.Warn().Err(err).Str("path", file.Path()).Msg("catalogue load failed, seeding defaults")
		} else {
			log.Info().Str("path", file.Path()).Msg("no catalogue file, seeding defaults")
		}
		books = defaultCatalogue()
		s.books = books
		s.persist()
	} else {
		s.books = books
	}

	for i := range s.books {
		s.books[i].RecomputeAvailability()
	}
	catalogBooks.Set(float64(len(s.books)))
	return s
}

// List returns the catalogue in creation order.
func (s *BookService) List(ctx context.Context) []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get returns the book with the given id, or a not-found error.
func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.find(id)
	if b == nil {
		return nil, Errf(KindNotFound, "book not found")
	}
	return b.Clone(), nil
}

// Search returns the books whose title, author, or raw ISBN contains the
// term, ignoring case. A blank term returns the full catalogue; a term that
// matches nothing returns an empty slice. Search never fails.
func (s *BookService) Search(ctx context.Context, term string) []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := search.NewMatcher(term)
	if m.MatchAll() {
		return s.snapshot()
	}
	out := make([]domain.Book, 0)
	for i := range s.books {
		b := &s.books[i]
		if m.Matches(b.Title, b.Author, b.ISBN) {
			out = append(out, *b.Clone())
		}
	}
	return out
}

// Add validates the request, creates the book with a fresh server-assigned
// id, appends it to the collection, persists, and returns the stored book.
func (s *BookService) Add(ctx context.Context, req *AddBookRequest) (*domain.Book, error) {
	if err := ValidateAddBookRequest(req); err != nil {
		return nil, err
	}

	year := 0
	if y := strings.TrimSpace(req.YearOfPublication); y != "" {
		year, _ = strconv.Atoi(y) // validated above
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := domain.Book{
		ID:                s.newID(),
		Title:             strings.TrimSpace(req.Title),
		Author:            strings.TrimSpace(req.Author),
		YearOfPublication: year,
		ISBN:              strings.TrimSpace(req.ISBN),
		TotalCopies:       req.TotalCopies,
		AvailableCopies:   req.TotalCopies,
		BorrowHistory:     []domain.BorrowRecord{},
	}
	s.books = append(s.books, b)
	s.persist()
	catalogBooks.Set(float64(len(s.books)))
	return b.Clone(), nil
}

// Borrow lends one copy of the book to userName. It fails when the book
// does not exist or has no free copies; on success it appends an open
// borrow record, recomputes availability, and persists.
func (s *BookService) Borrow(ctx context.Context, bookID, userName string) error {
	if err := ValidateBorrowRequest(&BorrowRequest{UserName: userName}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.find(bookID)
	if b == nil {
		borrowRejections.WithLabelValues("not_found").Inc()
		return Errf(KindNotFound, "book not found")
	}
	if b.AvailableCopies <= 0 {
		borrowRejections.WithLabelValues("unavailable").Inc()
		return Errf(KindUnavailable, "no copies available")
	}

	b.BorrowHistory = append(b.BorrowHistory, domain.BorrowRecord{
		ID:         s.newID(),
		User:       strings.TrimSpace(userName),
		BorrowDate: s.now(),
	})
	b.RecomputeAvailability()
	s.persist()
	borrowsTotal.Inc()
	return nil
}

// ReturnByBook closes the most recently opened outstanding borrow record of
// the book. It fails when the book does not exist or has nothing
// outstanding.
func (s *BookService) ReturnByBook(ctx context.Context, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.find(bookID)
	if b == nil {
		return Errf(KindNotFound, "book not found")
	}
	// Newest open record first: records are append-only, so scanning from
	// the tail yields the latest outstanding borrow.
	for i := len(b.BorrowHistory) - 1; i >= 0; i-- {
		r := &b.BorrowHistory[i]
		if r.Open() {
			t := s.now()
			r.ReturnDate = &t
			b.RecomputeAvailability()
			s.persist()
			returnsTotal.Inc()
			return nil
		}
	}
	return Errf(KindConflict, "no outstanding borrow for this book")
}

// ReturnByRecord closes the open borrow record with the given id, searching
// every book's history. It fails when no open record with that id exists.
func (s *BookService) ReturnByRecord(ctx context.Context, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		b := &s.books[i]
		for j := range b.BorrowHistory {
			r := &b.BorrowHistory[j]
			if r.ID == recordID && r.Open() {
				t := s.now()
				r.ReturnDate = &t
				b.RecomputeAvailability()
				s.persist()
				returnsTotal.Inc()
				return nil
			}
		}
	}
	return Errf(KindNotFound, "no open borrow record with this id")
}

// ListBorrowed flattens every borrow record (open and closed) into
// BorrowedBookInfo projections, in book order then record order.
func (s *BookService) ListBorrowed(ctx context.Context) []domain.BorrowedBookInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ProjectBorrows(s.books)
}

// find returns a pointer into the collection, or nil. Caller holds the lock.
func (s *BookService) find(id string) *domain.Book {
	for i := range s.books {
		if s.books[i].ID == id {
			return &s.books[i]
		}
	}
	return nil
}

// snapshot deep-copies the collection. Caller holds the lock.
func (s *BookService) snapshot() []domain.Book {
	out := make([]domain.Book, 0, len(s.books))
	for i := range s.books {
		out = append(out, *s.books[i].Clone())
	}
	return out
}

// persist rewrites the catalogue file. Failures are logged and absorbed;
// the in-memory collection remains authoritative. Caller holds the lock.
func (s *BookService) persist() {
	if err := s.file.Save(s.books); err != nil {
		catalogSaveFailures.Inc()
		log.Warn().Err(err).Str("path", s.file.Path()).Msg("catalogue save failed, in-memory state kept")
	}
}
