package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type AuthorBill struct {
	Id               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId          uuid.UUID       `gorm:"type:uuid;not null;index"`
	AuthorPlanId     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Email            string          `gorm:"type:varchar(255)"`
	PlanName         string          `gorm:"type:varchar(255);not null"`
	PlanRate         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Features         datatypes.JSON  `gorm:"type:jsonb"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount         decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Tax              decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency         string          `gorm:"type:varchar(3);not null"`
	PaymentReference *string         `gorm:"type:varchar(255);index"`
	Status           string          `gorm:"type:varchar(20);not null"`
	IsActive         bool            `gorm:"not null"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
}

func (AuthorBill) TableName() string {
	return "author_bills"
}
