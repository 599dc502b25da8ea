package database

import (
	"context"

	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
)

const testimonialOrder = "testimonials.is_featured DESC, testimonials.sort_order ASC, testimonials.created_at DESC"

type TestimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{db}
}

func (r *TestimonialRepo) ListActive(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	testimonials := []*models.Testimonial{}
	q := r.db.WithContext(ctx).Where("is_active = ?", true).Order(testimonialOrder)
	err := limited(q, limit).Find(&testimonials).Error
	return testimonials, err
}

func (r *TestimonialRepo) ListFeatured(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	testimonials := []*models.Testimonial{}
	q := r.db.WithContext(ctx).Where("is_active = ? AND is_featured = ?", true, true).Order(testimonialOrder)
	err := limited(q, limit).Find(&testimonials).Error
	return testimonials, err
}
