package model

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title     string     `gorm:"type:varchar(500);not null"`
	Genre     string     `gorm:"type:varchar(100)"`
	Prompt    string     `gorm:"type:text"`
	Status    string     `gorm:"type:varchar(20);not null"`
	Chapters  []*Chapter `gorm:"foreignKey:BookId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}

type Chapter struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"not null"`
	Title     string    `gorm:"type:varchar(500);not null"`
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Chapter) TableName() string {
	return "chapters"
}
