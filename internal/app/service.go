/**
 * @description
 * This file contains the core business logic for the library-service.
 * The Service applies the request rules (required fields, defaults, error
 * messages) and delegates every state change to the repository, which performs
 * it atomically. Successful circulation changes are announced to the event
 * publisher afterwards.
 */
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/transfa/library-service/internal/domain"
	"github.com/transfa/library-service/internal/store"
)

// Repository defines the storage operations that the service needs.
type Repository interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	CreateBook(ctx context.Context, book domain.Book) (*domain.Book, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
	UpdateSubscription(ctx context.Context, userID, subscription string) (*domain.User, error)
	Borrow(ctx context.Context, userID, bookID string, at time.Time) (*domain.User, *domain.Book, error)
	Return(ctx context.Context, userID, bookID string, at time.Time) (*domain.User, *domain.Book, error)
	HistoryForUser(ctx context.Context, userID string) (*domain.UserHistory, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// EventPublisher sends circulation events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

// Service provides the business logic for the library.
type Service struct {
	repo      Repository
	publisher EventPublisher
	exchange  string
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the publisher and exchange used for circulation events.
func WithPublisher(p EventPublisher, exchange string) Option {
	return func(s *Service) {
		s.publisher = p
		s.exchange = exchange
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source used for history entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new library service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListBooks returns every book in the catalog.
func (s *Service) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.repo.ListBooks(ctx)
}

// GetBook returns a single book.
func (s *Service) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.repo.GetBook(ctx, id)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, domain.NotFound(domain.MsgBookNotFound)
	}
	return book, err
}

// CreateBook adds a new, available book to the catalog.
func (s *Service) CreateBook(ctx context.Context, req domain.CreateBookRequest) (*domain.Book, error) {
	if req.ID == "" || req.Title == "" {
		return nil, domain.BadRequest(domain.MsgBookFieldsRequired)
	}

	author := req.Author
	if author == "" {
		author = domain.DefaultAuthor
	}

	book, err := s.repo.CreateBook(ctx, domain.Book{
		ID:        req.ID,
		Title:     req.Title,
		Author:    author,
		Available: true,
	})
	if errors.Is(err, store.ErrBookExists) {
		return nil, domain.Conflict(domain.MsgBookExists)
	}
	return book, err
}

// ListUsers returns every registered user.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// CreateUser registers a new user holding no books.
func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if req.ID == "" || req.Name == "" {
		return nil, domain.BadRequest(domain.MsgUserFieldsRequired)
	}

	subscription := req.Subscription
	if subscription == "" {
		subscription = domain.DefaultSubscription
	}

	user, err := s.repo.CreateUser(ctx, domain.User{
		ID:           req.ID,
		Name:         req.Name,
		Subscription: subscription,
		Borrowed:     []string{},
	})
	if errors.Is(err, store.ErrUserExists) {
		return nil, domain.Conflict(domain.MsgUserExists)
	}
	return user, err
}

// UpdateSubscription changes a user's subscription tier.
// An unknown user is reported before a missing subscription.
func (s *Service) UpdateSubscription(ctx context.Context, userID string, req domain.UpdateSubscriptionRequest) (*domain.User, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.NotFound(domain.MsgUserNotFound)
		}
		return nil, err
	}
	if req.Subscription == "" {
		return nil, domain.BadRequest(domain.MsgSubscriptionRequired)
	}

	user, err := s.repo.UpdateSubscription(ctx, userID, req.Subscription)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, domain.NotFound(domain.MsgUserNotFound)
	}
	return user, err
}

// Borrow lends a book to a user.
func (s *Service) Borrow(ctx context.Context, req domain.CirculationRequest) (*domain.CirculationResult, error) {
	at := s.timestamp()
	user, book, err := s.repo.Borrow(ctx, req.UserID, req.BookID, at)
	if err != nil {
		return nil, circulationError(err)
	}

	s.logger.Debug("book borrowed", "user_id", req.UserID, "book_id", req.BookID)
	s.announce(ctx, domain.ActionBorrow, req, at)

	return &domain.CirculationResult{Message: domain.MsgBorrowed, User: *user, Book: *book}, nil
}

// Return takes a book back from the user holding it.
func (s *Service) Return(ctx context.Context, req domain.CirculationRequest) (*domain.CirculationResult, error) {
	at := s.timestamp()
	user, book, err := s.repo.Return(ctx, req.UserID, req.BookID, at)
	if err != nil {
		return nil, circulationError(err)
	}

	s.logger.Debug("book returned", "user_id", req.UserID, "book_id", req.BookID)
	s.announce(ctx, domain.ActionReturn, req, at)

	return &domain.CirculationResult{Message: domain.MsgReturned, User: *user, Book: *book}, nil
}

// UserHistory returns the circulation log of a single user.
func (s *Service) UserHistory(ctx context.Context, userID string) (*domain.UserHistory, error) {
	history, err := s.repo.HistoryForUser(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, domain.NotFound(domain.MsgUserNotFound)
	}
	return history, err
}

// timestamp returns the time recorded on history entries, in UTC with
// millisecond precision.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func circulationError(err error) error {
	switch {
	case errors.Is(err, store.ErrUserNotFound), errors.Is(err, store.ErrBookNotFound):
		return domain.NotFound(domain.MsgUserOrBookNotFound)
	case errors.Is(err, store.ErrBookUnavailable):
		return domain.BadRequest(domain.MsgBookAlreadyBorrowed)
	case errors.Is(err, store.ErrBookNotBorrowed):
		return domain.BadRequest(domain.MsgBookNotBorrowed)
	default:
		return err
	}
}

// announce publishes a circulation event. The change is already committed, so
// a broker failure is logged and otherwise ignored.
func (s *Service) announce(ctx context.Context, action domain.Action, req domain.CirculationRequest, at time.Time) {
	if s.publisher == nil {
		return
	}

	event := domain.CirculationEvent{
		EventID:    uuid.NewString(),
		UserID:     req.UserID,
		BookID:     req.BookID,
		Action:     action,
		OccurredAt: at,
	}
	if err := s.publisher.Publish(ctx, s.exchange, event.RoutingKey(), event); err != nil {
		s.logger.Warn("failed to publish circulation event",
			"routing_key", event.RoutingKey(),
			"event_id", event.EventID,
			"error", err,
		)
	}
}
