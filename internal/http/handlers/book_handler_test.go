package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dkoutsos/go-library-backend/internal/domain"
	"github.com/dkoutsos/go-library-backend/internal/repo"
	"github.com/dkoutsos/go-library-backend/internal/services"
)

// newTestAPI wires a bare Gin engine (no middleware) with the catalogue
// routes over a real BookService backed by a temp file.
func newTestAPI(t *testing.T) (*gin.Engine, *services.BookService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewBookService(repo.NewCatalogFile(filepath.Join(t.TempDir(), "catalog.json")))
	h := New(svc)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/book", h.ListBooks)
	api.GET("/book/search", h.SearchBooks)
	api.GET("/book/borrowed", h.ListBorrowed)
	api.GET("/book/:id", h.GetBook)
	api.POST("/book", h.AddBook)
	api.POST("/book/:id/borrow", h.BorrowBook)
	api.POST("/book/:id/return", h.ReturnBook)
	api.POST("/book/return-record/:borrowRecordId", h.ReturnRecord)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, w.Body.String())
	}
	return e
}

func TestListBooks(t *testing.T) {
	r, _ := newTestAPI(t)
	w := doJSON(t, r, http.MethodGet, "/api/book", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var books []domain.Book
	if err := json.Unmarshal(w.Body.Bytes(), &books); err != nil {
		t.Fatal(err)
	}
	if len(books) == 0 {
		t.Fatal("expected seeded books")
	}
}

func TestGetBook(t *testing.T) {
	r, svc := newTestAPI(t)
	books := svc.List(context.Background())

	w := doJSON(t, r, http.MethodGet, "/api/book/"+books[0].ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/book/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if e := decodeErr(t, w); e.Code != ErrCodeNotFound {
		t.Fatalf("expected code %q, got %q", ErrCodeNotFound, e.Code)
	}
}

func TestSearchBooks(t *testing.T) {
	r, _ := newTestAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/book/search?searchTerm=orwell", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var books []domain.Book
	if err := json.Unmarshal(w.Body.Bytes(), &books); err != nil {
		t.Fatal(err)
	}
	if len(books) != 1 || books[0].Author != "George Orwell" {
		t.Fatalf("unexpected search result: %+v", books)
	}

	// Blank term returns the whole catalogue.
	w = doJSON(t, r, http.MethodGet, "/api/book/search", nil)
	var all []domain.Book
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatal(err)
	}
	if len(all) <= len(books) {
		t.Fatalf("blank search should return everything, got %d", len(all))
	}

	// Over-long term rejected.
	long := strings.Repeat("x", 101)
	w = doJSON(t, r, http.MethodGet, "/api/book/search?searchTerm="+long, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAddBook(t *testing.T) {
	r, _ := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/book", services.AddBookRequest{
		Title:             "Snow Crash",
		Author:            "Neal Stephenson",
		ISBN:              "978-0553380958",
		YearOfPublication: "1992",
		TotalCopies:       3,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var b domain.Book
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatal(err)
	}
	if b.ID == "" {
		t.Fatal("expected server-assigned id in response")
	}
	if b.AvailableCopies != 3 || b.YearOfPublication != 1992 {
		t.Fatalf("unexpected created book: %+v", b)
	}
	if loc := w.Header().Get("Location"); loc != "/api/book/"+b.ID {
		t.Fatalf("unexpected Location header: %q", loc)
	}
}

func TestAddBook_ValidationFailure(t *testing.T) {
	r, _ := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/book", services.AddBookRequest{
		Title:       "",
		Author:      "A",
		TotalCopies: 5,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	e := decodeErr(t, w)
	if !strings.Contains(e.Message, "Title") {
		t.Fatalf("message should name Title: %q", e.Message)
	}
}

func TestAddBook_MalformedJSON(t *testing.T) {
	r, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/book", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListBorrowed(t *testing.T) {
	r, svc := newTestAPI(t)
	ctx := context.Background()
	books := svc.List(ctx)
	if err := svc.Borrow(ctx, books[0].ID, "Alice"); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/book/borrowed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var infos []domain.BorrowedBookInfo
	if err := json.Unmarshal(w.Body.Bytes(), &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].UserName != "Alice" || infos[0].BookID != books[0].ID {
		t.Fatalf("unexpected projections: %+v", infos)
	}
}
