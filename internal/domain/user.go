/**
 * @description
 * This file defines the patron models for the library-service, along with the
 * request payloads that create or modify them.
 */
package domain

// DefaultSubscription is the tier assigned when none is supplied.
const DefaultSubscription = "free"

// User represents a library patron.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Subscription string   `json:"subscription"`
	Borrowed     []string `json:"borrowed"` // ids of books currently held, in borrow order
}

func (u User) borrowedIndex(bookID string) int {
	for i, id := range u.Borrowed {
		if id == bookID {
			return i
		}
	}
	return -1
}

// Release removes a single occurrence of bookID from Borrowed, keeping the
// order of the remaining ids. It reports whether the id was present.
func (u *User) Release(bookID string) bool {
	idx := u.borrowedIndex(bookID)
	if idx < 0 {
		return false
	}
	u.Borrowed = append(u.Borrowed[:idx], u.Borrowed[idx+1:]...)
	return true
}

// Clone returns a copy that shares no memory with u.
func (u User) Clone() User {
	borrowed := make([]string, len(u.Borrowed))
	copy(borrowed, u.Borrowed)
	u.Borrowed = borrowed
	return u
}

// UserSummary is the reduced identity returned alongside a user's history.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateUserRequest defines the expected JSON body for registering a user.
type CreateUserRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Subscription string `json:"subscription"`
}

// UpdateSubscriptionRequest defines the expected JSON body for changing a user's tier.
type UpdateSubscriptionRequest struct {
	Subscription string `json:"subscription"`
}
