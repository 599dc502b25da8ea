package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTypeCurrent ServiceType = "current"
	ServiceTypeFuture  ServiceType = "future"
)

// Service is an offering listed on the services page. Future services carry
// a timeline text instead of being bookable.
type Service struct {
	ID               uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name             string      `json:"name" db:"name" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Slug             string      `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,max=255"`
	ServiceType      ServiceType `json:"serviceType" db:"service_type" gorm:"type:varchar(20);not null;index" validate:"omitempty,oneof=current future"`
	TimelineText     string      `json:"timelineText" db:"timeline_text" gorm:"type:varchar(100);not null;default:''" validate:"max=100"`
	ShortDescription string      `json:"shortDescription" db:"short_description" gorm:"type:varchar(255);not null;default:''" validate:"max=255"`
	Description      string      `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	IconClass        string      `json:"iconClass" db:"icon_class" gorm:"type:varchar(100);not null;default:''" validate:"max=100"`
	Features         string      `json:"features" db:"features" gorm:"type:text;not null;default:''"`
	Technologies     string      `json:"technologies" db:"technologies" gorm:"type:varchar(500);not null;default:''" validate:"max=500"`
	Image            string      `json:"image" db:"image" gorm:"type:varchar(255);not null;default:''"`
	IsFeatured       bool        `json:"isFeatured" db:"is_featured" gorm:"not null"`
	IsActive         bool        `json:"isActive" db:"is_active" gorm:"not null;index"`
	Order            int         `json:"order" db:"sort_order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`

	FeaturesList     []string `json:"featuresList" gorm:"-"`
	TechnologiesList []string `json:"technologiesList" gorm:"-"`
}

func (s *Service) SetDefaults() {
	s.ServiceType = ServiceTypeCurrent
	s.IconClass = DefaultProjectIcon
	s.IsActive = true
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	if s.ServiceType == "" {
		s.ServiceType = ServiceTypeCurrent
	}
	return nil
}

func (s *Service) AfterFind(tx *gorm.DB) error {
	s.expandLists()
	return nil
}

func (s *Service) AfterSave(tx *gorm.DB) error {
	s.expandLists()
	return nil
}

func (s *Service) expandLists() {
	s.FeaturesList = ParseFeatures(s.Features)
	s.TechnologiesList = ParseTechnologies(s.Technologies)
}
