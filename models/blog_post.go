package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultAuthor = "KianvoSoft"

// BlogPost represents a published or draft article. Content is stored as HTML.
type BlogPost struct {
	ID            uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string        `json:"title" db:"title" gorm:"type:varchar(300);not null" validate:"required,max=300"`
	Slug          string        `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,max=255"`
	Excerpt       string        `json:"excerpt" db:"excerpt" gorm:"type:varchar(500);not null;default:''" validate:"max=500"`
	Content       string        `json:"content" db:"content" gorm:"type:text;not null"`
	CategoryID    *uuid.UUID    `json:"categoryId,omitempty" db:"category_id" gorm:"type:uuid;index"`
	Category      *BlogCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Author        string        `json:"author" db:"author" gorm:"type:varchar(200);not null" validate:"max=200"`
	FeaturedImage string        `json:"featuredImage" db:"featured_image" gorm:"type:varchar(255);not null;default:''"`
	IsFeatured    bool          `json:"isFeatured" db:"is_featured" gorm:"not null;index"`
	IsPublished   bool          `json:"isPublished" db:"is_published" gorm:"not null;index"`
	PublishedDate time.Time     `json:"publishedDate" db:"published_date" gorm:"not null;index"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

func (p *BlogPost) SetDefaults() {
	p.Author = DefaultAuthor
	p.IsPublished = true
}

// BeforeCreate stamps the creation time and uses it as the published date
// when none was given.
func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Author == "" {
		p.Author = DefaultAuthor
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	if p.PublishedDate.IsZero() {
		p.PublishedDate = p.CreatedAt
	}
	return nil
}
