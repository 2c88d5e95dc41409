package contract

import (
	"context"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/repository/specification"
)

type BillRepository interface {
	Create(ctx context.Context, bill *entity.AuthorBill) error
	Update(ctx context.Context, bill *entity.AuthorBill) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AuthorBill, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuthorBill, error)
}
