/**
 * @description
 * This file defines the catalog models for the library-service.
 * Each Book is a single physical unit: it is either on the shelf or held by
 * exactly one user.
 */
package domain

// DefaultAuthor is stored when a book is created without an author.
const DefaultAuthor = "Unknown"

// Book represents a catalog item with a single copy.
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available bool   `json:"available"` // false while a user holds the book
}

// CreateBookRequest defines the expected JSON body for creating a book.
type CreateBookRequest struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}
