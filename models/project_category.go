package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectCategory groups projects on the portfolio page
type ProjectCategory struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,max=255"`
	IconClass   string    `json:"iconClass" db:"icon_class" gorm:"type:varchar(100);not null;default:''" validate:"max=100"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Order       int       `json:"order" db:"sort_order" gorm:"column:sort_order;not null;default:0"`
	IsActive    bool      `json:"isActive" db:"is_active" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

func (c *ProjectCategory) SetDefaults() {
	c.IsActive = true
}

func (c *ProjectCategory) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
