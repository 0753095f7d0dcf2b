package store

import (
	"context"
	"fmt"

	"github.com/transfa/library-service/internal/domain"
)

// DefaultBooks is the catalog loaded at startup.
func DefaultBooks() []domain.Book {
	return []domain.Book{
		{ID: "b1", Title: "Clean Code", Author: "Robert C. Martin", Available: true},
		{ID: "b2", Title: "You Don't Know JS", Author: "Kyle Simpson", Available: true},
		{ID: "b3", Title: "Introduction to Algorithms", Author: "Cormen", Available: true},
	}
}

// DefaultUsers is the patron list loaded at startup.
func DefaultUsers() []domain.User {
	return []domain.User{
		{ID: "u1", Name: "Alice", Subscription: "free", Borrowed: []string{}},
		{ID: "u2", Name: "Bob", Subscription: "premium", Borrowed: []string{}},
	}
}

// Seed loads the given books and users. Seeded books must be available and
// seeded users must hold nothing, otherwise the catalog would start inconsistent.
func (r *MemoryRepository) Seed(ctx context.Context, books []domain.Book, users []domain.User) error {
	for _, b := range books {
		if !b.Available {
			return fmt.Errorf("seed book %q: must start available", b.ID)
		}
		if _, err := r.CreateBook(ctx, b); err != nil {
			return fmt.Errorf("seed book %q: %w", b.ID, err)
		}
	}
	for _, u := range users {
		if len(u.Borrowed) > 0 {
			return fmt.Errorf("seed user %q: must start with no borrowed books", u.ID)
		}
		if _, err := r.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %q: %w", u.ID, err)
		}
	}
	return nil
}
