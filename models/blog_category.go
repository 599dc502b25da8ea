package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultBlogCategoryIcon = "flaticon-web-research"

type BlogCategory struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,max=255"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	IconClass   string    `json:"iconClass" db:"icon_class" gorm:"type:varchar(100);not null;default:''" validate:"max=100"`
	IsActive    bool      `json:"isActive" db:"is_active" gorm:"not null"`
}

func (c *BlogCategory) SetDefaults() {
	c.IconClass = DefaultBlogCategoryIcon
	c.IsActive = true
}

func (c *BlogCategory) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
