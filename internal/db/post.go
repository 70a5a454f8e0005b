package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post 定义了文章模型
type Post struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Title      string    `gorm:"size:255;not null"`
	Content    string    `gorm:"type:text;not null"`
	Author     string    `gorm:"size:120;not null"`
	CategoryID *string   `gorm:"size:36;index"`
	Category   *Category `gorm:"foreignKey:CategoryID"`
	Image      *string
	Status     string    `gorm:"size:20;not null;default:published"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

// BeforeCreate assigns a fresh identifier unless one was set explicitly.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
