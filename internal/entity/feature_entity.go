// FILE: internal/entity/feature_entity.go
// Domain entity for the purchasable feature catalog
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Feature represents a purchasable capability in the catalog
type Feature struct {
	Id          uuid.UUID
	Key         string // Unique key: ai_outline, cover_designer, etc.
	Name        string
	Description string
	Rate        decimal.Decimal
	Currency    string
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
