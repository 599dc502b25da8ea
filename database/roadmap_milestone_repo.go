package database

import (
	"context"

	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
)

type RoadmapMilestoneRepo struct {
	db *gorm.DB
}

func NewRoadmapMilestoneRepo(db *gorm.DB) *RoadmapMilestoneRepo {
	return &RoadmapMilestoneRepo{db}
}

func (r *RoadmapMilestoneRepo) ListActive(ctx context.Context) ([]*models.RoadmapMilestone, error) {
	milestones := []*models.RoadmapMilestone{}
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, year ASC").Find(&milestones).Error
	return milestones, err
}
