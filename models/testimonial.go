package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Testimonial is a client quote, optionally tied to the project it praises
type Testimonial struct {
	ID             uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ClientName     string     `json:"clientName" db:"client_name" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	ClientPosition string     `json:"clientPosition" db:"client_position" gorm:"type:varchar(200);not null;default:''" validate:"max=200"`
	ClientCompany  string     `json:"clientCompany" db:"client_company" gorm:"type:varchar(200);not null;default:''" validate:"max=200"`
	ClientImage    string     `json:"clientImage" db:"client_image" gorm:"type:varchar(255);not null;default:''"`
	Content        string     `json:"content" db:"content" gorm:"type:text;not null" validate:"required"`
	Rating         int        `json:"rating" db:"rating" gorm:"not null;check:chk_testimonial_rating,rating >= 1 AND rating <= 5" validate:"min=1,max=5"`
	ProjectID      *uuid.UUID `json:"projectId,omitempty" db:"project_id" gorm:"type:uuid;index"`
	Project        *Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:SET NULL"`
	IsFeatured     bool       `json:"isFeatured" db:"is_featured" gorm:"not null;index"`
	IsActive       bool       `json:"isActive" db:"is_active" gorm:"not null;index"`
	Order          int        `json:"order" db:"sort_order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}

func (t *Testimonial) SetDefaults() {
	t.Rating = MaxRating
	t.IsActive = true
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
