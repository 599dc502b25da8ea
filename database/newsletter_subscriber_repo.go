package database

import (
	"context"

	"github.com/kianvosoft/site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsletterSubscriberRepo struct {
	db *gorm.DB
}

func NewNewsletterSubscriberRepo(db *gorm.DB) *NewsletterSubscriberRepo {
	return &NewsletterSubscriberRepo{db}
}

// AddIfAbsent inserts the subscriber unless the email is already present.
// The unique index decides, so concurrent calls for the same email create
// exactly one row.
func (r *NewsletterSubscriberRepo) AddIfAbsent(ctx context.Context, subscriber *models.NewsletterSubscriber) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(subscriber)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
