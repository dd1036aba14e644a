package domain

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func TestRecomputeAvailability(t *testing.T) {
	closed := ts("2024-03-01T10:00:00Z")
	b := Book{
		TotalCopies:     5,
		AvailableCopies: 99, // stale on purpose
		BorrowHistory: []BorrowRecord{
			{ID: "r1"},
			{ID: "r2", ReturnDate: &closed},
			{ID: "r3"},
		},
	}

	b.RecomputeAvailability()
	if b.AvailableCopies != 3 {
		t.Fatalf("expected 3 available, got %d", b.AvailableCopies)
	}
	if b.OpenBorrowCount() != 2 {
		t.Fatalf("expected 2 open borrows, got %d", b.OpenBorrowCount())
	}
}

func TestRecomputeAvailability_EmptyHistory(t *testing.T) {
	b := Book{TotalCopies: 4}
	b.RecomputeAvailability()
	if b.AvailableCopies != 4 {
		t.Fatalf("expected 4 available, got %d", b.AvailableCopies)
	}
}

func TestClone_IsDeep(t *testing.T) {
	b := Book{
		ID:            "b1",
		Title:         "Original",
		BorrowHistory: []BorrowRecord{{ID: "r1", User: "Alice"}},
	}
	cp := b.Clone()
	cp.Title = "Changed"
	cp.BorrowHistory[0].User = "Mallory"

	if b.Title != "Original" {
		t.Fatalf("clone shares title: %q", b.Title)
	}
	if b.BorrowHistory[0].User != "Alice" {
		t.Fatalf("clone shares history backing array: %q", b.BorrowHistory[0].User)
	}
}

func TestProjectBorrows_OrderAndContent(t *testing.T) {
	closed := ts("2024-05-02T09:30:00Z")
	books := []Book{
		{
			ID: "b1", Title: "First", Author: "A1",
			BorrowHistory: []BorrowRecord{
				{ID: "r1", User: "u1", BorrowDate: ts("2024-05-01T08:00:00Z")},
				{ID: "r2", User: "u2", BorrowDate: ts("2024-05-01T09:00:00Z"), ReturnDate: &closed},
			},
		},
		{ID: "b2", Title: "Second", Author: "A2"},
		{
			ID: "b3", Title: "Third", Author: "A3",
			BorrowHistory: []BorrowRecord{
				{ID: "r3", User: "u3", BorrowDate: ts("2024-05-03T10:00:00Z")},
			},
		},
	}

	got := ProjectBorrows(books)
	if len(got) != 3 {
		t.Fatalf("expected 3 projections, got %d", len(got))
	}
	wantOrder := []string{"r1", "r2", "r3"}
	for i, id := range wantOrder {
		if got[i].BorrowRecordID != id {
			t.Fatalf("projection %d: got record %q, want %q", i, got[i].BorrowRecordID, id)
		}
	}
	if got[0].BookTitle != "First" || got[0].BookAuthor != "A1" || got[0].UserName != "u1" {
		t.Fatalf("projection missing book/record fields: %+v", got[0])
	}
	if got[1].ReturnDate == nil || !got[1].ReturnDate.Equal(closed) {
		t.Fatalf("closed record should keep its return date: %+v", got[1])
	}
}

func TestProjectBorrows_Empty(t *testing.T) {
	if got := ProjectBorrows(nil); len(got) != 0 {
		t.Fatalf("expected empty projection, got %d", len(got))
	}
}
