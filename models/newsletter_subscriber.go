package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsletterSubscriber struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:varchar(254);not null;uniqueIndex" validate:"required,max=254"`
	IsActive     bool      `json:"isActive" db:"is_active" gorm:"not null"`
	SubscribedAt time.Time `json:"subscribedAt" db:"subscribed_at" gorm:"autoCreateTime;index"`
}

func (s *NewsletterSubscriber) SetDefaults() {
	s.IsActive = true
}

func (s *NewsletterSubscriber) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
