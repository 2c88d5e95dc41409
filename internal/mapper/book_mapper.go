package mapper

import (
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/model"
)

type BookMapper struct{}

func NewBookMapper() *BookMapper {
	return &BookMapper{}
}

func (m *BookMapper) ToEntity(b *model.Book) *entity.Book {
	if b == nil {
		return nil
	}
	chapters := make([]entity.Chapter, 0, len(b.Chapters))
	for _, c := range b.Chapters {
		chapters = append(chapters, entity.Chapter{
			Id:        c.Id,
			BookId:    c.BookId,
			Position:  c.Position,
			Title:     c.Title,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return &entity.Book{
		Id:        b.Id,
		OwnerId:   entity.OwnerID(b.OwnerId),
		Title:     b.Title,
		Genre:     b.Genre,
		Prompt:    b.Prompt,
		Status:    entity.BookStatus(b.Status),
		Chapters:  chapters,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *BookMapper) ToModel(b *entity.Book) *model.Book {
	if b == nil {
		return nil
	}
	chapters := make([]*model.Chapter, 0, len(b.Chapters))
	for _, c := range b.Chapters {
		chapters = append(chapters, &model.Chapter{
			Id:        c.Id,
			BookId:    b.Id,
			Position:  c.Position,
			Title:     c.Title,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return &model.Book{
		Id:        b.Id,
		OwnerId:   b.OwnerId.UUID(),
		Title:     b.Title,
		Genre:     b.Genre,
		Prompt:    b.Prompt,
		Status:    string(b.Status),
		Chapters:  chapters,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
