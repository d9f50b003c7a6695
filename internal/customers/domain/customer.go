package domain

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by lookups when no customer matches the id.
	ErrNotFound = errors.New("customer not found")

	// ErrEmailTaken is returned on registration when the email is already in use.
	ErrEmailTaken = errors.New("email already in use")
)

// Customer is the minimal identity the order workflow cares about:
// it either exists or it does not.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
