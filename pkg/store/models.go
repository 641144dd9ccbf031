package store

import (
	"time"

	"gorm.io/datatypes"
)

// PostModel is the GORM persistence model for posts.
type PostModel struct {
	ID        string `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Deck      string
	Content   string `gorm:"type:text;not null"`
	ImageURL  string
	Category  string         `gorm:"index"`
	Sources   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"not null;index"`
	UpdatedAt time.Time      `gorm:"not null"`
}
