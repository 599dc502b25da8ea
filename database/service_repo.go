package database

import (
	"context"

	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
)

const serviceOrder = "services.sort_order ASC, services.name ASC"

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db}
}

// ListActive returns active services in display order. limit <= 0 returns all.
func (r *ServiceRepo) ListActive(ctx context.Context, limit int) ([]*models.Service, error) {
	services := []*models.Service{}
	q := r.db.WithContext(ctx).Where("is_active = ?", true).Order(serviceOrder)
	err := limited(q, limit).Find(&services).Error
	return services, err
}

func (r *ServiceRepo) FindActiveBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}
