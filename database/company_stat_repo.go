package database

import (
	"context"

	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
)

type CompanyStatRepo struct {
	db *gorm.DB
}

func NewCompanyStatRepo(db *gorm.DB) *CompanyStatRepo {
	return &CompanyStatRepo{db}
}

func (r *CompanyStatRepo) ListActive(ctx context.Context) ([]*models.CompanyStat, error) {
	stats := []*models.CompanyStat{}
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC").Find(&stats).Error
	return stats, err
}
