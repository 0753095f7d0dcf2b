package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transfa/library-service/internal/app"
	"github.com/transfa/library-service/internal/domain"
	"github.com/transfa/library-service/internal/store"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	repo := store.NewMemoryRepository()
	require.NoError(t, repo.Seed(context.Background(), store.DefaultBooks(), store.DefaultUsers()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := app.NewService(repo, app.WithLogger(logger))
	return NewRouter(NewHandler(svc, logger), logger, []string{"*"})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	assert.Equal(t, status, rec.Code)
	var body errorResponse
	decode(t, rec, &body)
	assert.Equal(t, msg, body.Error)
}

func TestRoot(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body messageResponse
	decode(t, rec, &body)
	assert.Equal(t, rootMessage, body.Message)

	health := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestBooksEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var books []domain.Book
	decode(t, rec, &books)
	assert.Len(t, books, 3)

	created := do(t, h, http.MethodPost, "/books", `{"id":"b4","title":"The Go Programming Language"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var book domain.Book
	decode(t, created, &book)
	assert.Equal(t, domain.Book{ID: "b4", Title: "The Go Programming Language", Author: "Unknown", Available: true}, book)

	fetched := do(t, h, http.MethodGet, "/books/b4", "")
	require.Equal(t, http.StatusOK, fetched.Code)
	assert.JSONEq(t, created.Body.String(), fetched.Body.String())

	assertError(t, do(t, h, http.MethodGet, "/books/nope", ""), http.StatusNotFound, "Book not found")
	assertError(t, do(t, h, http.MethodPost, "/books", `{"id":"b1","title":"Dup"}`), http.StatusConflict, "Book ID already exists")
	assertError(t, do(t, h, http.MethodPost, "/books", `{"id":"b5"}`), http.StatusBadRequest, "id and title required")
	assertError(t, do(t, h, http.MethodPost, "/books", `{"id":"","title":"T"}`), http.StatusBadRequest, "id and title required")
	assertError(t, do(t, h, http.MethodPost, "/books", ""), http.StatusBadRequest, "id and title required")
	assertError(t, do(t, h, http.MethodPost, "/books", `{"id":`), http.StatusBadRequest, "Invalid request body")
}

func TestUsersEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"borrowed":[]`)

	created := do(t, h, http.MethodPost, "/users", `{"id":"u3","name":"Carol"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	assert.JSONEq(t, `{"id":"u3","name":"Carol","subscription":"free","borrowed":[]}`, created.Body.String())

	assertError(t, do(t, h, http.MethodPost, "/users", `{"id":"u1","name":"X"}`), http.StatusConflict, "User ID already exists")
	assertError(t, do(t, h, http.MethodPost, "/users", `{"name":"X"}`), http.StatusBadRequest, "id and name required")

	updated := do(t, h, http.MethodPut, "/users/u1/subscription", `{"subscription":"premium"}`)
	require.Equal(t, http.StatusOK, updated.Code)
	assert.JSONEq(t, `{"id":"u1","name":"Alice","subscription":"premium","borrowed":[]}`, updated.Body.String())

	assertError(t, do(t, h, http.MethodPut, "/users/ghost/subscription", `{"subscription":"premium"}`), http.StatusNotFound, "User not found")
	assertError(t, do(t, h, http.MethodPut, "/users/ghost/subscription", `{}`), http.StatusNotFound, "User not found")
	assertError(t, do(t, h, http.MethodPut, "/users/u1/subscription", `{}`), http.StatusBadRequest, "subscription required")
}

func TestBorrowReturnScenario(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/borrow", `{"userId":"u1","bookId":"b1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.CirculationResult
	decode(t, rec, &result)
	assert.Equal(t, "Book borrowed successfully", result.Message)
	assert.False(t, result.Book.Available)
	assert.Equal(t, []string{"b1"}, result.User.Borrowed)

	assertError(t, do(t, h, http.MethodPost, "/borrow", `{"userId":"u2","bookId":"b1"}`), http.StatusBadRequest, "Book already borrowed")
	assertError(t, do(t, h, http.MethodPost, "/return", `{"userId":"u2","bookId":"b1"}`), http.StatusBadRequest, "User didn't borrow this book")
	assertError(t, do(t, h, http.MethodPost, "/borrow", `{"userId":"ghost","bookId":"b1"}`), http.StatusNotFound, "User or Book not found")
	assertError(t, do(t, h, http.MethodPost, "/return", `{"userId":"u1","bookId":"ghost"}`), http.StatusNotFound, "User or Book not found")

	rec = do(t, h, http.MethodPost, "/return", `{"userId":"u1","bookId":"b1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	result = domain.CirculationResult{}
	decode(t, rec, &result)
	assert.Equal(t, "Book returned successfully", result.Message)
	assert.True(t, result.Book.Available)
	assert.Empty(t, result.User.Borrowed)
	assert.Contains(t, rec.Body.String(), `"borrowed":[]`)

	book := do(t, h, http.MethodGet, "/books/b1", "")
	assert.JSONEq(t, `{"id":"b1","title":"Clean Code","author":"Robert C. Martin","available":true}`, book.Body.String())
}

func TestUserHistoryEndpoint(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/borrow", `{"userId":"u1","bookId":"b2"}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/borrow", `{"userId":"u2","bookId":"b3"}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/return", `{"userId":"u1","bookId":"b2"}`).Code)

	rec := do(t, h, http.MethodGet, "/users/u1/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var history domain.UserHistory
	decode(t, rec, &history)
	assert.Equal(t, domain.UserSummary{ID: "u1", Name: "Alice"}, history.User)
	require.Len(t, history.History, 2)
	assert.Equal(t, domain.ActionBorrow, history.History[0].Action)
	assert.Equal(t, domain.ActionReturn, history.History[1].Action)
	assert.False(t, history.History[0].Date.IsZero())
	assert.Contains(t, rec.Body.String(), `"userId":"u1"`)

	empty := do(t, h, http.MethodGet, "/users/u2/history", "")
	var other domain.UserHistory
	decode(t, empty, &other)
	require.Len(t, other.History, 1)
	assert.Equal(t, "b3", other.History[0].BookID)

	assertError(t, do(t, h, http.MethodGet, "/users/ghost/history", ""), http.StatusNotFound, "User not found")
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t)

	assertError(t, do(t, h, http.MethodGet, "/shelves", ""), http.StatusNotFound, "Not found")
	assertError(t, do(t, h, http.MethodDelete, "/books", ""), http.StatusMethodNotAllowed, "Method not allowed")
}

func TestRequestKeysAreCaseSensitive(t *testing.T) {
	h := newTestServer(t)

	assertError(t, do(t, h, http.MethodPost, "/books", `{"ID":"b9","TITLE":"x"}`), http.StatusBadRequest, "id and title required")
	assertError(t, do(t, h, http.MethodPost, "/users", `{"Id":"u9","Name":"x"}`), http.StatusBadRequest, "id and name required")
	assertError(t, do(t, h, http.MethodPut, "/users/u1/subscription", `{"Subscription":"gold"}`), http.StatusBadRequest, "subscription required")
	assertError(t, do(t, h, http.MethodPost, "/borrow", `{"UserID":"u1","BOOKID":"b1"}`), http.StatusNotFound, "User or Book not found")

	book := do(t, h, http.MethodGet, "/books/b1", "")
	assert.Contains(t, book.Body.String(), `"available":true`)
	assertError(t, do(t, h, http.MethodGet, "/books/b9", ""), http.StatusNotFound, "Book not found")
}

type failingRepo struct {
	*store.MemoryRepository
}

func (failingRepo) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return nil, errors.New("storage unavailable")
}

func TestUnclassifiedErrorIsHidden(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := app.NewService(failingRepo{store.NewMemoryRepository()}, app.WithLogger(logger))
	h := NewRouter(NewHandler(svc, logger), logger, []string{"*"})

	assertError(t, do(t, h, http.MethodGet, "/books", ""), http.StatusInternalServerError, "Internal Server Error")
}
