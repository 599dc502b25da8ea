package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusCompleted   ProjectStatus = "completed"
	ProjectStatusInProgress  ProjectStatus = "in_progress"
	ProjectStatusPlanned     ProjectStatus = "planned"
	ProjectStatusMaintenance ProjectStatus = "maintenance"
)

const DefaultProjectIcon = "flaticon-software-development"

// Project is a delivered or planned system shown in the portfolio
type Project struct {
	ID               uuid.UUID        `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name             string           `json:"name" db:"name" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Slug             string           `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,max=255"`
	Tagline          string           `json:"tagline" db:"tagline" gorm:"type:varchar(255);not null;default:''" validate:"max=255"`
	Description      string           `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	FullDescription  string           `json:"fullDescription" db:"full_description" gorm:"type:text;not null;default:''"`
	CategoryID       *uuid.UUID       `json:"categoryId,omitempty" db:"category_id" gorm:"type:uuid;index"`
	Category         *ProjectCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Technologies     string           `json:"technologies" db:"technologies" gorm:"type:varchar(500);not null;default:''" validate:"max=500"`
	Features         string           `json:"features" db:"features" gorm:"type:text;not null;default:''"`
	IconClass        string           `json:"iconClass" db:"icon_class" gorm:"type:varchar(100);not null;default:''" validate:"max=100"`
	Thumbnail        string           `json:"thumbnail" db:"thumbnail" gorm:"type:varchar(255);not null;default:''"`
	BannerImage      string           `json:"bannerImage" db:"banner_image" gorm:"type:varchar(255);not null;default:''"`
	Screenshot1      string           `json:"screenshot1" db:"screenshot_1" gorm:"column:screenshot_1;type:varchar(255);not null;default:''"`
	Screenshot2      string           `json:"screenshot2" db:"screenshot_2" gorm:"column:screenshot_2;type:varchar(255);not null;default:''"`
	Screenshot3      string           `json:"screenshot3" db:"screenshot_3" gorm:"column:screenshot_3;type:varchar(255);not null;default:''"`
	Status           ProjectStatus    `json:"status" db:"status" gorm:"type:varchar(20);not null;index" validate:"omitempty,oneof=completed in_progress planned maintenance"`
	DemoURL          *string          `json:"demoUrl,omitempty" db:"demo_url" gorm:"type:varchar(200)" validate:"omitempty,url"`
	DocumentationURL *string          `json:"documentationUrl,omitempty" db:"documentation_url" gorm:"type:varchar(200)" validate:"omitempty,url"`
	IsFeatured       bool             `json:"isFeatured" db:"is_featured" gorm:"not null;index"`
	IsActive         bool             `json:"isActive" db:"is_active" gorm:"not null;index"`
	Order            int              `json:"order" db:"sort_order" gorm:"column:sort_order;not null;default:0"`
	CompletedDate    *datatypes.Date  `json:"completedDate,omitempty" db:"completed_date" gorm:"type:date"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`

	TechnologiesList []string `json:"technologiesList" gorm:"-"`
	FeaturesList     []string `json:"featuresList" gorm:"-"`
}

func (p *Project) SetDefaults() {
	p.IconClass = DefaultProjectIcon
	p.Status = ProjectStatusCompleted
	p.IsActive = true
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Status == "" {
		p.Status = ProjectStatusCompleted
	}
	return nil
}

func (p *Project) AfterFind(tx *gorm.DB) error {
	p.expandLists()
	return nil
}

func (p *Project) AfterSave(tx *gorm.DB) error {
	p.expandLists()
	return nil
}

func (p *Project) expandLists() {
	p.TechnologiesList = ParseTechnologies(p.Technologies)
	p.FeaturesList = ParseFeatures(p.Features)
}

// Images returns pointers to the five image references in display order so
// callers can rewrite them in place.
func (p *Project) Images() []*string {
	return []*string{&p.Thumbnail, &p.BannerImage, &p.Screenshot1, &p.Screenshot2, &p.Screenshot3}
}
