package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
)

// projectOrder is the default listing order: featured first, then the manual
// order, newest first among ties.
const projectOrder = "projects.is_featured DESC, projects.sort_order ASC, projects.created_at DESC"

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func (r *ProjectRepo) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Where("projects.is_active = ?", true).
		Order(projectOrder)
}

// ListActive returns active projects, optionally restricted to the category
// with the given slug. An unknown slug yields an empty list.
func (r *ProjectRepo) ListActive(ctx context.Context, categorySlug string, limit int) ([]*models.Project, error) {
	q := r.active(ctx)
	if categorySlug != "" {
		q = q.Where("projects.category_id IN (?)",
			r.db.WithContext(ctx).Model(&models.ProjectCategory{}).Select("id").Where("slug = ?", categorySlug))
	}
	projects := []*models.Project{}
	err := limited(q, limit).Find(&projects).Error
	return projects, err
}

// ListFeatured returns active featured projects for the home page
func (r *ProjectRepo) ListFeatured(ctx context.Context, limit int) ([]*models.Project, error) {
	projects := []*models.Project{}
	err := limited(r.active(ctx).Where("projects.is_featured = ?", true), limit).Find(&projects).Error
	return projects, err
}

// FindActiveBySlug returns gorm.ErrRecordNotFound for unknown and inactive projects alike
func (r *ProjectRepo) FindActiveBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.active(ctx).Where("projects.slug = ?", slug).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListRelated returns other active projects in the same category as p. An
// uncategorized project relates to other uncategorized projects.
func (r *ProjectRepo) ListRelated(ctx context.Context, p *models.Project, limit int) ([]*models.Project, error) {
	q := r.active(ctx).Where("projects.id <> ?", p.ID)
	if p.CategoryID == nil {
		q = q.Where("projects.category_id IS NULL")
	} else {
		q = q.Where("projects.category_id = ?", *p.CategoryID)
	}
	projects := []*models.Project{}
	err := limited(q, limit).Find(&projects).Error
	return projects, err
}

// Delete removes a project and unlinks its testimonials.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Testimonial{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
