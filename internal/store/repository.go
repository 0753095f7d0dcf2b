/**
 * @description
 * This file implements the data access layer for the library-service.
 * All state lives in memory for the lifetime of the process: books, users and
 * the circulation history. A single mutex guards all three collections so that
 * every operation observes and leaves behind a consistent catalog.
 */
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/transfa/library-service/internal/domain"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookExists      = errors.New("book id already exists")
	ErrUserExists      = errors.New("user id already exists")
	ErrBookUnavailable = errors.New("book is already borrowed")
	ErrBookNotBorrowed = errors.New("book is not borrowed by user")
)

// MemoryRepository holds the library collections in insertion order.
type MemoryRepository struct {
	mu sync.Mutex

	books     []*domain.Book
	bookIndex map[string]int

	users     []*domain.User
	userIndex map[string]int

	history []domain.HistoryEntry
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		bookIndex: make(map[string]int),
		userIndex: make(map[string]int),
	}
}

// lookupBook and lookupUser must be called with r.mu held.
func (r *MemoryRepository) lookupBook(id string) (*domain.Book, bool) {
	idx, ok := r.bookIndex[id]
	if !ok {
		return nil, false
	}
	return r.books[idx], true
}

func (r *MemoryRepository) lookupUser(id string) (*domain.User, bool) {
	idx, ok := r.userIndex[id]
	if !ok {
		return nil, false
	}
	return r.users[idx], true
}

// ListBooks returns a snapshot of every book in insertion order.
func (r *MemoryRepository) ListBooks(ctx context.Context) ([]domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := make([]domain.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, *b)
	}
	return books, nil
}

// GetBook retrieves a single book by id.
func (r *MemoryRepository) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.lookupBook(id)
	if !ok {
		return nil, ErrBookNotFound
	}
	snapshot := *book
	return &snapshot, nil
}

// CreateBook appends a new book. The id must not be in use.
func (r *MemoryRepository) CreateBook(ctx context.Context, book domain.Book) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookIndex[book.ID]; exists {
		return nil, ErrBookExists
	}
	stored := book
	r.bookIndex[book.ID] = len(r.books)
	r.books = append(r.books, &stored)
	return &book, nil
}

// ListUsers returns a snapshot of every user in insertion order.
func (r *MemoryRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u.Clone())
	}
	return users, nil
}

// GetUser retrieves a single user by id.
func (r *MemoryRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.lookupUser(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	snapshot := user.Clone()
	return &snapshot, nil
}

// CreateUser appends a new user. The id must not be in use.
func (r *MemoryRepository) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.userIndex[user.ID]; exists {
		return nil, ErrUserExists
	}
	stored := user.Clone()
	r.userIndex[user.ID] = len(r.users)
	r.users = append(r.users, &stored)
	snapshot := stored.Clone()
	return &snapshot, nil
}

// UpdateSubscription replaces the subscription tier of an existing user.
func (r *MemoryRepository) UpdateSubscription(ctx context.Context, userID, subscription string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.lookupUser(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	user.Subscription = subscription
	snapshot := user.Clone()
	return &snapshot, nil
}

// Borrow hands bookID to userID and records the action at the given time.
// Nothing is mutated unless every check passes.
func (r *MemoryRepository) Borrow(ctx context.Context, userID, bookID string, at time.Time) (*domain.User, *domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, book, err := r.lookupPair(userID, bookID)
	if err != nil {
		return nil, nil, err
	}
	if !book.Available {
		return nil, nil, ErrBookUnavailable
	}

	book.Available = false
	user.Borrowed = append(user.Borrowed, bookID)
	r.history = append(r.history, domain.HistoryEntry{
		UserID: userID,
		BookID: bookID,
		Action: domain.ActionBorrow,
		Date:   at,
	})

	userSnapshot, bookSnapshot := user.Clone(), *book
	return &userSnapshot, &bookSnapshot, nil
}

// Return takes bookID back from userID and records the action at the given time.
func (r *MemoryRepository) Return(ctx context.Context, userID, bookID string, at time.Time) (*domain.User, *domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, book, err := r.lookupPair(userID, bookID)
	if err != nil {
		return nil, nil, err
	}
	if !user.Release(bookID) {
		return nil, nil, ErrBookNotBorrowed
	}

	book.Available = true
	r.history = append(r.history, domain.HistoryEntry{
		UserID: userID,
		BookID: bookID,
		Action: domain.ActionReturn,
		Date:   at,
	})

	userSnapshot, bookSnapshot := user.Clone(), *book
	return &userSnapshot, &bookSnapshot, nil
}

func (r *MemoryRepository) lookupPair(userID, bookID string) (*domain.User, *domain.Book, error) {
	user, ok := r.lookupUser(userID)
	if !ok {
		return nil, nil, ErrUserNotFound
	}
	book, ok := r.lookupBook(bookID)
	if !ok {
		return nil, nil, ErrBookNotFound
	}
	return user, book, nil
}

// HistoryForUser returns the user's identity and their entries in insertion order.
func (r *MemoryRepository) HistoryForUser(ctx context.Context, userID string) (*domain.UserHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.lookupUser(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	entries := make([]domain.HistoryEntry, 0)
	for _, h := range r.history {
		if h.UserID == user.ID {
			entries = append(entries, h)
		}
	}

	return &domain.UserHistory{
		User:    domain.UserSummary{ID: user.ID, Name: user.Name},
		History: entries,
	}, nil
}

// Stats counts the current contents of every collection.
func (r *MemoryRepository) Stats(ctx context.Context) (domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := domain.Stats{
		Books:          len(r.books),
		Users:          len(r.users),
		HistoryEntries: len(r.history),
	}
	for _, b := range r.books {
		if !b.Available {
			stats.BooksOnLoan++
		}
	}
	return stats, nil
}
