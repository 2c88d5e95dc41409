package unitofwork

import (
	"context"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	// LockOwner serializes transactions touching one owner's entitlements.
	// It must be called inside Begin/Commit; the lock is released with the transaction.
	LockOwner(ctx context.Context, owner entity.OwnerID) error

	FeatureRepository() contract.FeatureRepository
	PlanRepository() contract.PlanRepository
	AuthorPlanRepository() contract.AuthorPlanRepository
	CartRepository() contract.CartRepository
	BillRepository() contract.BillRepository
	BookRepository() contract.BookRepository
}
