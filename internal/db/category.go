package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category 定义文章分类模型，名称全局唯一
type Category struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"size:120;index" json:"slug"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a fresh identifier unless one was set explicitly.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
