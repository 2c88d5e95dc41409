package contract

import (
	"context"

	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/repository/specification"
)

type BookRepository interface {
	// Create stores the book together with its chapters.
	Create(ctx context.Context, book *entity.Book) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Book, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Book, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
