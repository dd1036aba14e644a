package services

import (
	"github.com/google/uuid"

	"github.com/dkoutsos/go-library-backend/internal/domain"
)

// defaultCatalogue returns the seed book set used when no usable catalogue
// file exists on startup. IDs are generated fresh per seeding.
func defaultCatalogue() []domain.Book {
	seed := []domain.Book{
		{Title: "1984", Author: "George Orwell", YearOfPublication: 1949, ISBN: "978-0451524935", TotalCopies: 5},
		{Title: "Brave New World", Author: "Aldous Huxley", YearOfPublication: 1932, ISBN: "978-0060850524", TotalCopies: 3},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", YearOfPublication: 1960, ISBN: "978-0446310789", TotalCopies: 4},
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", YearOfPublication: 1925, ISBN: "978-0743273565", TotalCopies: 2},
		{Title: "Fahrenheit 451", Author: "Ray Bradbury", YearOfPublication: 1953, ISBN: "978-1451673319", TotalCopies: 3},
	}
	for i := range seed {
		seed[i].ID = uuid.NewString()
		seed[i].AvailableCopies = seed[i].TotalCopies
		seed[i].BorrowHistory = []domain.BorrowRecord{}
	}
	return seed
}
