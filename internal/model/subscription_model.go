package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Plan struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Slug         string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description  string          `gorm:"type:text"`
	Rate         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'USD'"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(5,4);default:0"`
	DurationDays int             `gorm:"not null"`
	MaxEbooks    int             `gorm:"not null"` // -1 = unlimited
	TierRank     int             `gorm:"not null;index"`
	IsTrial      bool            `gorm:"default:false"`
	IsActive     bool            `gorm:"not null"`
	SortOrder    int             `gorm:"default:0"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (Plan) TableName() string {
	return "plans"
}

type AuthorPlan struct {
	Id                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId            uuid.UUID       `gorm:"type:uuid;not null;index:idx_author_plans_owner_created,priority:1"`
	PlanId             uuid.UUID       `gorm:"type:uuid;not null;index"`
	PlanName           string          `gorm:"type:varchar(255);not null"`
	Rate               decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	DurationDays       int             `gorm:"not null"`
	MaxEbooks          int             `gorm:"not null"`
	StartAt            time.Time       `gorm:"not null"`
	EndAt              time.Time       `gorm:"not null"`
	IsActive           bool            `gorm:"not null"`
	TrialUsed          bool            `gorm:"default:false"`
	PaymentReference   *string         `gorm:"type:varchar(255);index"`
	CancelledAt        *time.Time
	CancellationReason *string   `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"autoCreateTime;index:idx_author_plans_owner_created,priority:2"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (AuthorPlan) TableName() string {
	return "author_plans"
}
