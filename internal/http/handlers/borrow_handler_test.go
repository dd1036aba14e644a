package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/dkoutsos/go-library-backend/internal/services"
)

func TestBorrowBook(t *testing.T) {
	r, svc := newTestAPI(t)
	ctx := context.Background()
	book := svc.List(ctx)[0]

	w := doJSON(t, r, http.MethodPost, "/api/book/"+book.ID+"/borrow",
		services.BorrowRequest{UserName: "Alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	got, err := svc.Get(ctx, book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.AvailableCopies != book.AvailableCopies-1 {
		t.Fatalf("availability not decremented: %d", got.AvailableCopies)
	}
}

func TestBorrowBook_BlankUserName(t *testing.T) {
	r, svc := newTestAPI(t)
	book := svc.List(context.Background())[0]

	w := doJSON(t, r, http.MethodPost, "/api/book/"+book.ID+"/borrow",
		services.BorrowRequest{UserName: "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBorrowBook_UnknownBookIs400(t *testing.T) {
	// Lending endpoints conflate "absent" and "unavailable" into 400; only
	// the error code in the envelope tells them apart.
	r, _ := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/book/ghost/borrow",
		services.BorrowRequest{UserName: "Alice"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if e := decodeErr(t, w); e.Code != ErrCodeNotFound {
		t.Fatalf("expected code %q, got %q", ErrCodeNotFound, e.Code)
	}
}

func TestBorrowBook_Exhausted(t *testing.T) {
	r, svc := newTestAPI(t)
	ctx := context.Background()

	b, err := svc.Add(ctx, &services.AddBookRequest{Title: "Single Copy", Author: "A", TotalCopies: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Borrow(ctx, b.ID, "Alice"); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/book/"+b.ID+"/borrow",
		services.BorrowRequest{UserName: "Bob"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if e := decodeErr(t, w); e.Code != ErrCodeUnavailable {
		t.Fatalf("expected code %q, got %q", ErrCodeUnavailable, e.Code)
	}
}

func TestReturnBook(t *testing.T) {
	r, svc := newTestAPI(t)
	ctx := context.Background()
	book := svc.List(ctx)[0]
	if err := svc.Borrow(ctx, book.ID, "Alice"); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/book/"+book.ID+"/return", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	got, _ := svc.Get(ctx, book.ID)
	if got.AvailableCopies != book.AvailableCopies {
		t.Fatalf("availability not restored: %d", got.AvailableCopies)
	}
}

func TestReturnBook_NothingOutstanding(t *testing.T) {
	r, svc := newTestAPI(t)
	book := svc.List(context.Background())[0]

	w := doJSON(t, r, http.MethodPost, "/api/book/"+book.ID+"/return", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if e := decodeErr(t, w); e.Code != ErrCodeConflict {
		t.Fatalf("expected code %q, got %q", ErrCodeConflict, e.Code)
	}
}

func TestReturnRecord(t *testing.T) {
	r, svc := newTestAPI(t)
	ctx := context.Background()
	book := svc.List(ctx)[0]
	if err := svc.Borrow(ctx, book.ID, "Alice"); err != nil {
		t.Fatal(err)
	}
	got, _ := svc.Get(ctx, book.ID)
	recID := got.BorrowHistory[0].ID

	// Wrong id fails and leaves the record open.
	w := doJSON(t, r, http.MethodPost, "/api/book/return-record/wrong-id", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	got, _ = svc.Get(ctx, book.ID)
	if !got.BorrowHistory[0].Open() {
		t.Fatal("record should still be open")
	}

	// Right id succeeds.
	w = doJSON(t, r, http.MethodPost, "/api/book/return-record/"+recID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	// Replaying the same record id is a failure (already returned).
	w = doJSON(t, r, http.MethodPost, "/api/book/return-record/"+recID, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on double return, got %d", w.Code)
	}
}
