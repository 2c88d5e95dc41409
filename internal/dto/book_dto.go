package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateBookRequest struct {
	Title        string `json:"title" validate:"required,max=500"`
	Genre        string `json:"genre" validate:"max=100"`
	Prompt       string `json:"prompt" validate:"required,max=4000"`
	ChapterCount int    `json:"chapter_count" validate:"omitempty,min=1,max=30"`
}

type ChapterResponse struct {
	Id       uuid.UUID `json:"id"`
	Position int       `json:"position"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
}

type BookResponse struct {
	Id        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Genre     string            `json:"genre"`
	Status    string            `json:"status"`
	Chapters  []ChapterResponse `json:"chapters,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
