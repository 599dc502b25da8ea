package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
)

const projectCategoryOrder = "project_categories.sort_order ASC, project_categories.name ASC"

type ProjectCategoryRepo struct {
	db *gorm.DB
}

func NewProjectCategoryRepo(db *gorm.DB) *ProjectCategoryRepo {
	return &ProjectCategoryRepo{db}
}

// ListActive returns the categories offered as portfolio filters
func (r *ProjectCategoryRepo) ListActive(ctx context.Context) ([]*models.ProjectCategory, error) {
	var categories []*models.ProjectCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order(projectCategoryOrder).
		Find(&categories).Error
	return categories, err
}

// Delete removes a category. Its projects are kept and become uncategorized.
func (r *ProjectCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.ProjectCategory{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
