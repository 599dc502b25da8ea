package database

import (
	"context"

	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
)

type ContactInquiryRepo struct {
	db *gorm.DB
}

func NewContactInquiryRepo(db *gorm.DB) *ContactInquiryRepo {
	return &ContactInquiryRepo{db}
}

// Add inserts a new inquiry into the database
func (r *ContactInquiryRepo) Add(ctx context.Context, inquiry *models.ContactInquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}
