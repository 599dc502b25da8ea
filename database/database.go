package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	db                   *gorm.DB
	projectCategoryRepo  *ProjectCategoryRepo
	projectRepo          *ProjectRepo
	serviceRepo          *ServiceRepo
	testimonialRepo      *TestimonialRepo
	blogCategoryRepo     *BlogCategoryRepo
	blogPostRepo         *BlogPostRepo
	contactInquiryRepo   *ContactInquiryRepo
	subscriberRepo       *NewsletterSubscriberRepo
	companyStatRepo      *CompanyStatRepo
	partnerRepo          *PartnerRepo
	roadmapMilestoneRepo *RoadmapMilestoneRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                   db,
		projectCategoryRepo:  NewProjectCategoryRepo(db),
		projectRepo:          NewProjectRepo(db),
		serviceRepo:          NewServiceRepo(db),
		testimonialRepo:      NewTestimonialRepo(db),
		blogCategoryRepo:     NewBlogCategoryRepo(db),
		blogPostRepo:         NewBlogPostRepo(db),
		contactInquiryRepo:   NewContactInquiryRepo(db),
		subscriberRepo:       NewNewsletterSubscriberRepo(db),
		companyStatRepo:      NewCompanyStatRepo(db),
		partnerRepo:          NewPartnerRepo(db),
		roadmapMilestoneRepo: NewRoadmapMilestoneRepo(db),
	}
}

// DB returns the shared connection, used by the admin engine and seeding
func (d Database) DB() *gorm.DB {
	return d.db
}

// Ping checks that the primary store answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Accessor methods for each repository

func (d Database) ProjectCategoryRepo() *ProjectCategoryRepo {
	return d.projectCategoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ServiceRepo() *ServiceRepo {
	return d.serviceRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

func (d Database) BlogCategoryRepo() *BlogCategoryRepo {
	return d.blogCategoryRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) ContactInquiryRepo() *ContactInquiryRepo {
	return d.contactInquiryRepo
}

func (d Database) NewsletterSubscriberRepo() *NewsletterSubscriberRepo {
	return d.subscriberRepo
}

func (d Database) CompanyStatRepo() *CompanyStatRepo {
	return d.companyStatRepo
}

func (d Database) PartnerRepo() *PartnerRepo {
	return d.partnerRepo
}

func (d Database) RoadmapMilestoneRepo() *RoadmapMilestoneRepo {
	return d.roadmapMilestoneRepo
}

// limited applies a positive limit; zero or negative means no limit.
func limited(q *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return q.Limit(limit)
	}
	return q
}
