// FILE: internal/entity/user_entity.go
package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAuthor UserRole = "author"
	UserRoleAdmin  UserRole = "admin"
)

// OwnerID identifies the principal that owns cart lines, author plans, bills and books.
// Authors are users acting in the author role, so one id covers both.
type OwnerID uuid.UUID

var NilOwner = OwnerID(uuid.Nil)

func ParseOwnerID(raw string) (OwnerID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return NilOwner, fmt.Errorf("invalid owner id %q: %w", raw, err)
	}
	if id == uuid.Nil {
		return NilOwner, fmt.Errorf("invalid owner id: nil uuid")
	}
	return OwnerID(id), nil
}

func (o OwnerID) UUID() uuid.UUID { return uuid.UUID(o) }

func (o OwnerID) String() string { return uuid.UUID(o).String() }

func (o OwnerID) IsNil() bool { return uuid.UUID(o) == uuid.Nil }

// Principal is the caller identity resolved once at the HTTP boundary.
type Principal struct {
	Owner OwnerID
	Email string
	Role  UserRole
}
