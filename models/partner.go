package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Partner struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name       string    `json:"name" db:"name" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Logo       string    `json:"logo" db:"logo" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	WebsiteURL string    `json:"websiteUrl" db:"website_url" gorm:"type:varchar(200);not null;default:''" validate:"omitempty,url"`
	IsActive   bool      `json:"isActive" db:"is_active" gorm:"not null"`
	Order      int       `json:"order" db:"sort_order" gorm:"column:sort_order;not null;default:0"`
}

func (p *Partner) SetDefaults() {
	p.IsActive = true
}

func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
