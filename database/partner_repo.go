package database

import (
	"context"

	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
)

type PartnerRepo struct {
	db *gorm.DB
}

func NewPartnerRepo(db *gorm.DB) *PartnerRepo {
	return &PartnerRepo{db}
}

func (r *PartnerRepo) ListActive(ctx context.Context) ([]*models.Partner, error) {
	partners := []*models.Partner{}
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, name ASC").Find(&partners).Error
	return partners, err
}
