// Package provider holds the supplier directory. Plain CRUD; providers are
// referenced by materials and purchase movements.
package provider

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a provider id does not exist.
	ErrNotFound = errors.New("provider not found")
	// ErrNameRequired rejects providers without a name.
	ErrNameRequired = errors.New("provider name is required")
)

// DuplicateError reports a unique-key conflict on create or update,
// naming the duplicated field so the client can show a specific message.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a provider with this %s already exists", e.Field)
}

type Provider struct {
	ID        uuid.UUID
	Name      string
	NIT       *string // tax id, unique when present
	Phone     string
	Contact   string
	Email     string
	Address   string
	Category  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
