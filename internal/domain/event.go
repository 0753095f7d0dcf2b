/**
 * @description
 * This file defines the events the library-service publishes to the message
 * broker after a circulation change has been applied.
 */
package domain

import "time"

const (
	// RoutingKeyBookBorrowed is published after a successful borrow.
	RoutingKeyBookBorrowed = "book.borrowed"
	// RoutingKeyBookReturned is published after a successful return.
	RoutingKeyBookReturned = "book.returned"
)

// CirculationEvent is the JSON payload published for both routing keys.
type CirculationEvent struct {
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	BookID     string    `json:"book_id"`
	Action     Action    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey returns the broker routing key matching the event's action.
func (e CirculationEvent) RoutingKey() string {
	if e.Action == ActionReturn {
		return RoutingKeyBookReturned
	}
	return RoutingKeyBookBorrowed
}
