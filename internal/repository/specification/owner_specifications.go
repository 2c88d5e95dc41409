package specification

import (
	"time"

	"ebook-studio-be/internal/entity"

	"gorm.io/gorm"
)

type OwnedBy struct {
	Owner entity.OwnerID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.Owner.UUID())
}

// ActiveOnly keeps rows flagged is_active.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type CreatedAfter struct {
	Time time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Time)
}
