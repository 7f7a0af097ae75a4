package core

import (
	"errors"
	"fmt"
)

// Kind classifies the failures the locator engine surfaces.
type Kind int

const (
	// ElementNotFound is raised by a driver or element on a single lookup
	// with no match.
	ElementNotFound Kind = iota + 1
	// WaitTimeout is raised by a search context when a precondition never
	// held within its timeout.
	WaitTimeout
	// NotFoundInCollection is raised when no collection member satisfies a
	// condition.
	NotFoundInCollection
)

func (k Kind) String() string {
	switch k {
	case ElementNotFound:
		return "ElementNotFound"
	case WaitTimeout:
		return "WaitTimeout"
	case NotFoundInCollection:
		return "NotFoundInCollection"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error carries a Kind, a message and, for NotFoundInCollection, the
// per-candidate diagnostics captured at failure time.
type Error struct {
	Kind      Kind
	Message   string
	Condition string   // explanation of the condition that failed, if any
	Texts     []string // visible text of each candidate, in scan order
	Markups   []string // outer HTML of each candidate, in scan order
	Err       error
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrElementNotFound      = &Error{Kind: ElementNotFound, Message: "element not found"}
	ErrWaitTimeout          = &Error{Kind: WaitTimeout, Message: "timed out waiting"}
	ErrNotFoundInCollection = &Error{Kind: NotFoundInCollection, Message: "element not found in collection"}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NotFound builds an ElementNotFound error for by.
func NotFound(by By, cause error) *Error {
	return &Error{
		Kind:    ElementNotFound,
		Message: fmt.Sprintf("no such element: unable to locate %s", by),
		Err:     cause,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
