package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyStat is a counter shown on the home and about pages, e.g. "50+".
type CompanyStat struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Value     int       `json:"value" db:"value" gorm:"not null"`
	Suffix    string    `json:"suffix" db:"suffix" gorm:"type:varchar(10);not null;default:''" validate:"max=10"`
	IconClass string    `json:"iconClass" db:"icon_class" gorm:"type:varchar(100);not null;default:''" validate:"max=100"`
	Order     int       `json:"order" db:"sort_order" gorm:"column:sort_order;not null;default:0"`
	IsActive  bool      `json:"isActive" db:"is_active" gorm:"not null"`
}

func (s *CompanyStat) SetDefaults() {
	s.Suffix = "+"
	s.IsActive = true
}

func (s *CompanyStat) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (s CompanyStat) String() string {
	return fmt.Sprintf("%s: %d%s", s.Name, s.Value, s.Suffix)
}
