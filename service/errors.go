package service

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors are expected outcomes returned to the caller; the
// transport layer branches on them to render user-facing replies.
var (
	// ErrInsufficientFunds is returned when a debit would overdraw an account
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotOwner is returned when a user acts on an item or offer they do not own
	ErrNotOwner = errors.New("not the owner")

	// ErrNotRecipient is returned when someone other than the offer's
	// recipient tries to resolve it
	ErrNotRecipient = errors.New("not the offer recipient")

	// ErrOfferNotFound is returned when a trade offer does not exist
	ErrOfferNotFound = errors.New("trade offer not found")

	// ErrAlreadyResolved is returned when an offer already reached a terminal state
	ErrAlreadyResolved = errors.New("trade offer already resolved")

	// ErrItemNotOwned is returned when the offered item no longer belongs
	// to the offerer at acceptance time
	ErrItemNotOwned = errors.New("offered item no longer owned by the offerer")

	// ErrAccountNotFound is returned when an account does not exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrCardNotFound is returned when a card definition does not exist
	ErrCardNotFound = errors.New("card definition not found")
)

// CooldownError is returned when a free pack is claimed before the
// cooldown from the previous successful claim has elapsed
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("free pack on cooldown for another %s", e.Remaining.Round(time.Second))
}

// RemainingSeconds returns the whole seconds left on the cooldown
func (e *CooldownError) RemainingSeconds() int64 {
	return int64(e.Remaining.Seconds())
}

// StorageError wraps a transactional or connectivity failure from the
// storage layer. Anything that is not a domain error above is one.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr wraps err as a StorageError, tagging the failing operation
func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
