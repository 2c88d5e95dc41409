// FILE: internal/entity/book_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookStatus string

const BookStatusDraft BookStatus = "draft"

type Book struct {
	Id        uuid.UUID
	OwnerId   OwnerID
	Title     string
	Genre     string
	Prompt    string
	Status    BookStatus
	Chapters  []Chapter
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Chapter struct {
	Id        uuid.UUID
	BookId    uuid.UUID
	Position  int
	Title     string
	Content   string
	CreatedAt time.Time
}
