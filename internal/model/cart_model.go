package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuthorPlanFeature holds both open cart lines (status temp) and confirmed purchases.
// The partial unique index keeps one temp line per owner and feature.
type AuthorPlanFeature struct {
	Id                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId            uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_apf_owner_feature_temp,where:status = 'temp'"`
	FeatureId          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_apf_owner_feature_temp,where:status = 'temp'"`
	PlanId             *uuid.UUID      `gorm:"type:uuid;index"`
	AuthorPlanId       *uuid.UUID      `gorm:"type:uuid;index"`
	FeatureName        string          `gorm:"type:varchar(255);not null"`
	FeatureDescription string          `gorm:"type:text"`
	Rate               decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	Status             string          `gorm:"type:varchar(20);not null;index"`
	IsActive           bool            `gorm:"default:false"`
	CreatedAt          time.Time       `gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime"`
}

func (AuthorPlanFeature) TableName() string {
	return "author_plan_features"
}
