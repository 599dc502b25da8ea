package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kianvosoft/site-backend/database"
	"github.com/kianvosoft/site-backend/database/dbtest"
	"github.com/kianvosoft/site-backend/errs"
	"github.com/kianvosoft/site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu        sync.Mutex
	inquiries []*models.ContactInquiry
}

func (n *recordingNotifier) NotifyInquiry(ctx context.Context, inquiry *models.ContactInquiry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inquiries = append(n.inquiries, inquiry)
}

func newTestSite(t *testing.T, opts ...SiteOption) (*Site, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t)
	return NewSite(database.New(db), opts...), db
}

func seedPortfolio(t *testing.T, db *gorm.DB) {
	t.Helper()
	web := &models.ProjectCategory{Name: "Web Applications", Slug: "web-applications", IsActive: true, Order: 2}
	erp := &models.ProjectCategory{Name: "ERP Solutions", Slug: "erp-solutions", IsActive: true, Order: 1}
	hidden := &models.ProjectCategory{Name: "Hidden", Slug: "hidden", IsActive: false}
	dbtest.Create(t, db, web, erp, hidden)

	dbtest.Create(t, db,
		&models.Project{Name: "Ledger", Slug: "ledger", CategoryID: &erp.ID, IsActive: true, IsFeatured: true, Order: 1, Thumbnail: "projects/thumbnails/ledger.png"},
		&models.Project{Name: "Payroll", Slug: "payroll", CategoryID: &erp.ID, IsActive: true, Order: 2},
		&models.Project{Name: "Shop", Slug: "shop", CategoryID: &web.ID, IsActive: true, Order: 3, Technologies: "Django, React"},
		&models.Project{Name: "Retired", Slug: "retired", CategoryID: &erp.ID, IsActive: false, IsFeatured: true},
		&models.Project{Name: "Scratch", Slug: "scratch", IsActive: true, Order: 9},
		&models.Service{Name: "Web Development", Slug: "web-development", IsActive: true, Order: 1, Features: "SEO\nHosting"},
		&models.Service{Name: "AI", Slug: "ai", IsActive: true, Order: 2, ServiceType: models.ServiceTypeFuture, TimelineText: "Coming 2026"},
		&models.Service{Name: "Legacy", Slug: "legacy", IsActive: false},
		&models.CompanyStat{Name: "Projects", Value: 50, Suffix: "+", IsActive: true},
	)
}

func TestListProjects(t *testing.T) {
	ctx := context.Background()
	site, db := newTestSite(t)
	seedPortfolio(t, db)

	t.Run("featured projects are active and featured", func(t *testing.T) {
		projects, err := site.ListFeaturedProjects(ctx, 6)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "Ledger", projects[0].Name)
		assert.Equal(t, "/media/projects/thumbnails/ledger.png", projects[0].Thumbnail)
		assert.Equal(t, "", projects[0].BannerImage)
	})

	t.Run("category filter", func(t *testing.T) {
		projects, err := site.ListProjects(ctx, "erp-solutions")
		require.NoError(t, err)
		require.Len(t, projects, 2)
		for _, p := range projects {
			assert.True(t, p.IsActive)
			require.NotNil(t, p.Category)
			assert.Equal(t, "erp-solutions", p.Category.Slug)
		}
	})

	t.Run("unknown category is empty not an error", func(t *testing.T) {
		projects, err := site.ListProjects(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestGetProjectBySlug(t *testing.T) {
	ctx := context.Background()
	site, db := newTestSite(t)
	seedPortfolio(t, db)

	t.Run("related projects share the category", func(t *testing.T) {
		detail, err := site.GetProjectBySlug(ctx, "ledger", RelatedProjects)
		require.NoError(t, err)
		assert.Equal(t, "Ledger", detail.Project.Name)
		require.Len(t, detail.RelatedProjects, 1)
		assert.Equal(t, "Payroll", detail.RelatedProjects[0].Name)
	})

	t.Run("technology list is parsed", func(t *testing.T) {
		detail, err := site.GetProjectBySlug(ctx, "shop", RelatedProjects)
		require.NoError(t, err)
		assert.Equal(t, []string{"Django", "React"}, detail.Project.TechnologiesList)
		assert.Empty(t, detail.RelatedProjects)
	})

	t.Run("inactive project is not found", func(t *testing.T) {
		_, err := site.GetProjectBySlug(ctx, "retired", RelatedProjects)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
		assert.Equal(t, 404, errs.StatusCode(err))
	})

	t.Run("unknown project is not found", func(t *testing.T) {
		_, err := site.GetProjectBySlug(ctx, "nope", RelatedProjects)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestServices(t *testing.T) {
	ctx := context.Background()
	site, db := newTestSite(t)
	seedPortfolio(t, db)

	services, err := site.ListServices(ctx, 0)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, []string{"SEO", "Hosting"}, services[0].FeaturesList)

	limited, err := site.ListServices(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	detail, err := site.GetServiceBySlug(ctx, "ai", ServiceRelatedProjects)
	require.NoError(t, err)
	assert.Equal(t, models.ServiceTypeFuture, detail.Service.ServiceType)
	names := []string{}
	for _, p := range detail.RelatedProjects {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Ledger", "Payroll", "Shop", "Scratch"}, names)

	_, err = site.GetServiceBySlug(ctx, "legacy", ServiceRelatedProjects)
	assert.True(t, errs.IsNotFound(err))
}

func TestBlog(t *testing.T) {
	ctx := context.Background()
	site, db := newTestSite(t)

	news := &models.BlogCategory{Name: "News", Slug: "news", IsActive: true}
	dbtest.Create(t, db, news)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"One", "Two", "Three", "Four"} {
		dbtest.Create(t, db, &models.BlogPost{
			Title:         title,
			Slug:          title,
			Content:       "<p>x</p>",
			CategoryID:    &news.ID,
			IsPublished:   true,
			IsFeatured:    i%2 == 0,
			PublishedDate: base.AddDate(0, 0, i),
		})
	}
	dbtest.Create(t, db, &models.BlogPost{Title: "Draft", Slug: "draft", Content: "x", PublishedDate: base.AddDate(1, 0, 0)})

	recent, err := site.ListRecentBlogPosts(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "Four", recent[0].Title)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].PublishedDate.After(recent[i-1].PublishedDate))
	}

	page, err := site.BlogPage(ctx, "news")
	require.NoError(t, err)
	assert.Len(t, page.Posts, 4)
	assert.Equal(t, "news", page.CurrentCategory)
	assert.Len(t, page.Categories, 1)
	assert.Len(t, page.FeaturedPosts, 2)

	detail, err := site.GetBlogPostBySlug(ctx, "One", RelatedPosts)
	require.NoError(t, err)
	assert.Len(t, detail.RelatedPosts, 3)

	_, err = site.GetBlogPostBySlug(ctx, "draft", RelatedPosts)
	assert.True(t, errs.IsNotFound(err))
}

func TestPages(t *testing.T) {
	ctx := context.Background()
	site, db := newTestSite(t)
	seedPortfolio(t, db)
	dbtest.Create(t, db,
		&models.Testimonial{ClientName: "Amina", Content: "Great", Rating: 5, IsActive: true, IsFeatured: true},
		&models.Partner{Name: "Acme", Logo: "https://cdn.example.com/acme.png", IsActive: true},
		&models.RoadmapMilestone{Year: "2025", Title: "Founded", Description: "x", IsActive: true},
	)

	home, err := site.HomePage(ctx)
	require.NoError(t, err)
	assert.Len(t, home.FeaturedProjects, 1)
	assert.Len(t, home.Services, 2)
	assert.Len(t, home.Testimonials, 1)
	assert.Empty(t, home.BlogPosts)
	require.Len(t, home.Partners, 1)
	assert.Equal(t, "https://cdn.example.com/acme.png", home.Partners[0].Logo)
	assert.Len(t, home.Stats, 1)

	about, err := site.AboutPage(ctx)
	require.NoError(t, err)
	assert.Len(t, about.Milestones, 1)
	assert.Len(t, about.Testimonials, 1)

	portfolio, err := site.PortfolioPage(ctx, "")
	require.NoError(t, err)
	assert.Len(t, portfolio.Projects, 4)
	require.Len(t, portfolio.Categories, 2)
	assert.Equal(t, "erp-solutions", portfolio.Categories[0].Slug)

	contact, err := site.ContactPage(ctx)
	require.NoError(t, err)
	assert.Len(t, contact.Services, 2)
	assert.Len(t, contact.ServiceTypes, 8)
}

func TestSubmitInquiry(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	site, db := newTestSite(t, WithNotifier(notifier))

	t.Run("valid inquiry is stored as new", func(t *testing.T) {
		id, err := site.SubmitInquiry(ctx, InquiryInput{
			Name:        "  Jane ",
			Email:       "jane@example.com",
			ServiceType: models.InquiryServiceWeb,
			Message:     "We need a website",
		})
		require.NoError(t, err)
		site.Wait()

		var got models.ContactInquiry
		require.NoError(t, db.First(&got, "id = ?", id).Error)
		assert.Equal(t, "Jane", got.Name)
		assert.Equal(t, models.InquiryStatusNew, got.Status)

		require.Len(t, notifier.inquiries, 1)
		assert.Equal(t, id, notifier.inquiries[0].ID)
	})

	t.Run("email format is not checked", func(t *testing.T) {
		_, err := site.SubmitInquiry(ctx, InquiryInput{Name: "A", Email: "not-an-email", Message: "hi"})
		assert.NoError(t, err)
		site.Wait()
	})

	t.Run("blank required fields are rejected", func(t *testing.T) {
		cases := map[string]InquiryInput{
			"name":    {Name: "  ", Email: "a@b.com", Message: "hi"},
			"email":   {Name: "A", Email: "", Message: "hi"},
			"message": {Name: "A", Email: "a@b.com", Message: "\n\t"},
		}
		for field, input := range cases {
			t.Run(field, func(t *testing.T) {
				_, err := site.SubmitInquiry(ctx, input)
				require.Error(t, err)
				assert.True(t, errs.IsMissingRequiredFieldError(err))
				var apiErr *errs.ApiErr
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, field, apiErr.Field)
			})
		}

		var n int64
		require.NoError(t, db.Model(&models.ContactInquiry{}).Count(&n).Error)
		assert.EqualValues(t, 2, n)
	})

	t.Run("unknown service type is invalid", func(t *testing.T) {
		_, err := site.SubmitInquiry(ctx, InquiryInput{Name: "A", Email: "a@b.com", Message: "hi", ServiceType: "gardening"})
		assert.True(t, errs.IsValidationError(err))
	})
}

func TestSubscribeNewsletter(t *testing.T) {
	ctx := context.Background()
	site, db := newTestSite(t)

	res, err := site.SubscribeNewsletter(ctx, " reader@example.com ")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, MsgSubscribed, res.Message)

	res, err = site.SubscribeNewsletter(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, MsgAlreadySubscribed, res.Message)

	var n int64
	require.NoError(t, db.Model(&models.NewsletterSubscriber{}).Where("email = ?", "reader@example.com").Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = site.SubscribeNewsletter(ctx, "   ")
	assert.True(t, errs.IsMissingRequiredFieldError(err))
}
