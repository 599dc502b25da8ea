package database

import (
	"context"

	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
)

const blogPostOrder = "blog_posts.published_date DESC"

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

func (r *BlogPostRepo) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Where("blog_posts.is_published = ?", true).
		Order(blogPostOrder)
}

// ListPublished returns published posts, optionally restricted to the blog
// category with the given slug.
func (r *BlogPostRepo) ListPublished(ctx context.Context, categorySlug string, limit int) ([]*models.BlogPost, error) {
	q := r.published(ctx)
	if categorySlug != "" {
		q = q.Where("blog_posts.category_id IN (?)",
			r.db.WithContext(ctx).Model(&models.BlogCategory{}).Select("id").Where("slug = ?", categorySlug))
	}
	posts := []*models.BlogPost{}
	err := limited(q, limit).Find(&posts).Error
	return posts, err
}

func (r *BlogPostRepo) ListFeatured(ctx context.Context, limit int) ([]*models.BlogPost, error) {
	posts := []*models.BlogPost{}
	err := limited(r.published(ctx).Where("blog_posts.is_featured = ?", true), limit).Find(&posts).Error
	return posts, err
}

// FindPublishedBySlug returns gorm.ErrRecordNotFound for unknown and unpublished posts alike
func (r *BlogPostRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.published(ctx).Where("blog_posts.slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogPostRepo) ListRelated(ctx context.Context, p *models.BlogPost, limit int) ([]*models.BlogPost, error) {
	q := r.published(ctx).Where("blog_posts.id <> ?", p.ID)
	if p.CategoryID == nil {
		q = q.Where("blog_posts.category_id IS NULL")
	} else {
		q = q.Where("blog_posts.category_id = ?", *p.CategoryID)
	}
	posts := []*models.BlogPost{}
	err := limited(q, limit).Find(&posts).Error
	return posts, err
}

// DeleteAll removes every blog post; used when reseeding the blog.
func (r *BlogPostRepo) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.BlogPost{})
	return res.RowsAffected, res.Error
}
