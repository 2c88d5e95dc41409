package specification

import (
	"time"

	"ebook-studio-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart lines

type ByLineStatus struct {
	Status entity.LineStatus
}

func (s ByLineStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

type ByFeatureID struct {
	FeatureID uuid.UUID
}

func (s ByFeatureID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feature_id = ?", s.FeatureID)
}

type ByAuthorPlanID struct {
	AuthorPlanID uuid.UUID
}

func (s ByAuthorPlanID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("author_plan_id = ?", s.AuthorPlanID)
}

// Plans

type ByPlanID struct {
	PlanID uuid.UUID
}

func (s ByPlanID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("plan_id = ?", s.PlanID)
}

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ByKey struct {
	Key string
}

func (s ByKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("key = ?", s.Key)
}

// CurrentAt matches author plans whose window contains At.
type CurrentAt struct {
	At time.Time
}

func (s CurrentAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_at <= ? AND end_at > ?", s.At, s.At)
}

// Bills

type ByBillStatus struct {
	Status entity.BillStatus
}

func (s ByBillStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

type ByPaymentReference struct {
	Reference string
}

func (s ByPaymentReference) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_reference = ?", s.Reference)
}
