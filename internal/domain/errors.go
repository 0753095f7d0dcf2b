/**
 * @description
 * Error taxonomy shared by the service and HTTP layers. Every failure a client
 * can cause is one of three kinds, each mapped to a fixed HTTP status by the api
 * package.
 */
package domain

import "errors"

// ErrorKind classifies a client-caused failure.
type ErrorKind int

const (
	KindBadRequest ErrorKind = iota + 1
	KindConflict
	KindNotFound
)

// Error is returned for every rejected request. Message is shown to the client verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// BadRequest reports a missing required field or an invalid state transition.
func BadRequest(msg string) error { return &Error{Kind: KindBadRequest, Message: msg} }

// Conflict reports a duplicate identifier.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// NotFound reports a referenced entity that does not exist.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// KindOf returns the kind of err, or 0 when err is not a *Error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// Messages returned to clients.
const (
	MsgBookNotFound         = "Book not found"
	MsgUserNotFound         = "User not found"
	MsgUserOrBookNotFound   = "User or Book not found"
	MsgBookFieldsRequired   = "id and title required"
	MsgUserFieldsRequired   = "id and name required"
	MsgSubscriptionRequired = "subscription required"
	MsgBookExists           = "Book ID already exists"
	MsgUserExists           = "User ID already exists"
	MsgBookAlreadyBorrowed  = "Book already borrowed"
	MsgBookNotBorrowed      = "User didn't borrow this book"
	MsgBorrowed             = "Book borrowed successfully"
	MsgReturned             = "Book returned successfully"
)
