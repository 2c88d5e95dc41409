// FILE: internal/model/feature_model.go
// GORM model for the features (purchasable catalog) table
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Feature struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key         string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Rate        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
	IsActive    bool            `gorm:"not null"`
	SortOrder   int             `gorm:"default:0"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (Feature) TableName() string {
	return "features"
}
