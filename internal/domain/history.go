/**
 * @description
 * This file defines the circulation log: borrow and return actions recorded in
 * the order they happened, plus the payloads and results of those actions.
 */
package domain

import "time"

// Action names a circulation step.
type Action string

const (
	ActionBorrow Action = "borrow"
	ActionReturn Action = "return"
)

// HistoryEntry is an immutable record of one borrow or return.
type HistoryEntry struct {
	UserID string    `json:"userId"`
	BookID string    `json:"bookId"`
	Action Action    `json:"action"`
	Date   time.Time `json:"date"`
}

// CirculationRequest is the body accepted by both /borrow and /return.
type CirculationRequest struct {
	UserID string `json:"userId"`
	BookID string `json:"bookId"`
}

// CirculationResult carries the state of both parties after a borrow or return.
type CirculationResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Book    Book   `json:"book"`
}

// UserHistory is the response for a single user's circulation log.
type UserHistory struct {
	User    UserSummary    `json:"user"`
	History []HistoryEntry `json:"history"`
}

// Stats summarizes the catalog for the periodic circulation report.
type Stats struct {
	Books          int
	BooksOnLoan    int
	Users          int
	HistoryEntries int
}
