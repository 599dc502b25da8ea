package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoadmapMilestone is a timeline entry. Year is free text such as "Q3 2026".
type RoadmapMilestone struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Year        string    `json:"year" db:"year" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	IsActive    bool      `json:"isActive" db:"is_active" gorm:"not null"`
	Order       int       `json:"order" db:"sort_order" gorm:"column:sort_order;not null;default:0"`
}

func (m *RoadmapMilestone) SetDefaults() {
	m.IsActive = true
}

func (m *RoadmapMilestone) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
