package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kianvosoft/site-backend/database/dbtest"
	"github.com/kianvosoft/site-backend/errs"
	"github.com/kianvosoft/site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func projectNames(projects []*models.Project) []string {
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return names
}

func postTitles(posts []*models.BlogPost) []string {
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	return titles
}

func TestProjectRepo(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewProjectRepo(db)

	erp := &models.ProjectCategory{Name: "ERP Solutions", Slug: "erp-solutions", IsActive: true}
	mobile := &models.ProjectCategory{Name: "Mobile Applications", Slug: "mobile-applications", IsActive: true}
	dbtest.Create(t, db, erp, mobile)

	dbtest.Create(t, db,
		&models.Project{Name: "A", Slug: "a", CategoryID: &erp.ID, IsActive: true, Order: 2},
		&models.Project{Name: "B", Slug: "b", CategoryID: &erp.ID, IsActive: true, IsFeatured: true, Order: 5},
		&models.Project{Name: "C", Slug: "c", CategoryID: &mobile.ID, IsActive: true, Order: 1},
		&models.Project{Name: "D", Slug: "d", CategoryID: &erp.ID, IsActive: false, IsFeatured: true},
		&models.Project{Name: "E", Slug: "e", IsActive: true, Order: 3, Technologies: "Go, Postgres"},
		&models.Project{Name: "F", Slug: "f", IsActive: true, Order: 4},
	)

	t.Run("active projects in default order", func(t *testing.T) {
		projects, err := repo.ListActive(ctx, "", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C", "A", "E", "F"}, projectNames(projects))
	})

	t.Run("category filter by slug", func(t *testing.T) {
		projects, err := repo.ListActive(ctx, "erp-solutions", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A"}, projectNames(projects))
		require.NotNil(t, projects[0].Category)
		assert.Equal(t, "ERP Solutions", projects[0].Category.Name)
	})

	t.Run("unknown category slug yields empty list", func(t *testing.T) {
		projects, err := repo.ListActive(ctx, "nope", 0)
		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	})

	t.Run("featured excludes inactive", func(t *testing.T) {
		projects, err := repo.ListFeatured(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, projectNames(projects))
	})

	t.Run("inactive project is not found by slug", func(t *testing.T) {
		_, err := repo.FindActiveBySlug(ctx, "d")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("lists are expanded on load", func(t *testing.T) {
		p, err := repo.FindActiveBySlug(ctx, "e")
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "Postgres"}, p.TechnologiesList)
		assert.Empty(t, p.FeaturesList)
	})

	t.Run("related share the category and exclude self", func(t *testing.T) {
		a, err := repo.FindActiveBySlug(ctx, "a")
		require.NoError(t, err)
		related, err := repo.ListRelated(ctx, a, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, projectNames(related))
	})

	t.Run("uncategorized projects relate to each other", func(t *testing.T) {
		e, err := repo.FindActiveBySlug(ctx, "e")
		require.NoError(t, err)
		related, err := repo.ListRelated(ctx, e, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"F"}, projectNames(related))
	})

	t.Run("limit applies", func(t *testing.T) {
		projects, err := repo.ListActive(ctx, "", 2)
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})
}

func TestProjectCategoryDeleteKeepsProjects(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	cat := &models.ProjectCategory{Name: "Web", Slug: "web", IsActive: true}
	dbtest.Create(t, db, cat)
	p := &models.Project{Name: "Site", Slug: "site", CategoryID: &cat.ID, IsActive: true}
	dbtest.Create(t, db, p)

	require.NoError(t, NewProjectCategoryRepo(db).Delete(ctx, cat.ID))

	got, err := NewProjectRepo(db).FindActiveBySlug(ctx, p.Slug)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.Category)

	assert.ErrorIs(t, NewProjectCategoryRepo(db).Delete(ctx, cat.ID), gorm.ErrRecordNotFound)
}

func TestProjectDeleteKeepsTestimonials(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	p := &models.Project{Name: "Site", Slug: "site", IsActive: true}
	dbtest.Create(t, db, p)
	tm := &models.Testimonial{ClientName: "Amina", Content: "Great", Rating: 5, ProjectID: &p.ID, IsActive: true}
	dbtest.Create(t, db, tm)

	require.NoError(t, NewProjectRepo(db).Delete(ctx, p.ID))

	var got models.Testimonial
	require.NoError(t, db.First(&got, "id = ?", tm.ID).Error)
	assert.Nil(t, got.ProjectID)
}

func TestBlogPostRepo(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewBlogPostRepo(db)

	tech := &models.BlogCategory{Name: "Technology", Slug: "technology", IsActive: true}
	dbtest.Create(t, db, tech)

	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	dbtest.Create(t, db,
		&models.BlogPost{Title: "Old", Slug: "old", Content: "x", CategoryID: &tech.ID, IsPublished: true, PublishedDate: base},
		&models.BlogPost{Title: "New", Slug: "new", Content: "x", CategoryID: &tech.ID, IsPublished: true, IsFeatured: true, PublishedDate: base.AddDate(0, 1, 0)},
		&models.BlogPost{Title: "Draft", Slug: "draft", Content: "x", CategoryID: &tech.ID, IsPublished: false, PublishedDate: base.AddDate(0, 2, 0)},
		&models.BlogPost{Title: "Loose", Slug: "loose", Content: "x", IsPublished: true, PublishedDate: base.AddDate(0, 0, 5)},
	)

	t.Run("published newest first", func(t *testing.T) {
		posts, err := repo.ListPublished(ctx, "", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"New", "Loose", "Old"}, postTitles(posts))
	})

	t.Run("category filter", func(t *testing.T) {
		posts, err := repo.ListPublished(ctx, "technology", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"New", "Old"}, postTitles(posts))
	})

	t.Run("draft is hidden", func(t *testing.T) {
		_, err := repo.FindPublishedBySlug(ctx, "draft")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("featured", func(t *testing.T) {
		posts, err := repo.ListFeatured(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"New"}, postTitles(posts))
	})

	t.Run("related", func(t *testing.T) {
		post, err := repo.FindPublishedBySlug(ctx, "old")
		require.NoError(t, err)
		related, err := repo.ListRelated(ctx, post, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"New"}, postTitles(related))
	})

	t.Run("published date defaults to creation time", func(t *testing.T) {
		p := &models.BlogPost{Title: "Now", Slug: "now", Content: "x", IsPublished: true}
		dbtest.Create(t, db, p)
		got, err := repo.FindPublishedBySlug(ctx, "now")
		require.NoError(t, err)
		assert.True(t, got.PublishedDate.Equal(got.CreatedAt))
	})

	t.Run("delete all", func(t *testing.T) {
		n, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 5, n)
	})
}

func TestNewsletterSubscriberAddIfAbsent(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewNewsletterSubscriberRepo(db)

	created, err := repo.AddIfAbsent(ctx, &models.NewsletterSubscriber{Email: "a@b.com", IsActive: true})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.AddIfAbsent(ctx, &models.NewsletterSubscriber{Email: "a@b.com", IsActive: true})
	require.NoError(t, err)
	assert.False(t, created)

	assert.EqualValues(t, 1, countSubscribers(t, db, "a@b.com"))
}

func countSubscribers(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.NewsletterSubscriber{}).Where("email = ?", email).Count(&n).Error)
	return n
}

func TestNewsletterSubscriberConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewNewsletterSubscriberRepo(db)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.AddIfAbsent(ctx, &models.NewsletterSubscriber{Email: "same@b.com", IsActive: true})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.EqualValues(t, 1, countSubscribers(t, db, "same@b.com"))
}

func TestDuplicateSlugRejected(t *testing.T) {
	db := dbtest.New(t)
	dbtest.Create(t, db, &models.Service{Name: "Web", Slug: "web", IsActive: true})
	err := db.Create(&models.Service{Name: "Web 2", Slug: "web", IsActive: true}).Error
	require.Error(t, err)

	err = errs.NewDatabaseError("create", "service", err)
	assert.True(t, errs.IsDuplicateKeyError(err))
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "slug", apiErr.Field)
	assert.Equal(t, 409, apiErr.StatusCode)
}

func TestFeaturedProjectsNewestFirstAmongTies(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 1; i <= 7; i++ {
		name := fmt.Sprintf("x%d", i)
		dbtest.Create(t, db, &models.Project{
			Name:       name,
			Slug:       name,
			IsActive:   true,
			IsFeatured: true,
			Order:      1,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	dbtest.Create(t, db, &models.Project{Name: "pinned", Slug: "pinned", IsActive: true, IsFeatured: true, Order: 0, CreatedAt: base})

	projects, err := NewProjectRepo(db).ListFeatured(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"pinned", "x7", "x6", "x5", "x4", "x3"}, projectNames(projects))
}

func TestFeaturedTestimonialsNewestFirstAmongTies(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 1; i <= 7; i++ {
		dbtest.Create(t, db, &models.Testimonial{
			ClientName: fmt.Sprintf("c%d", i),
			Content:    "great work",
			Rating:     5,
			IsActive:   true,
			IsFeatured: true,
			Order:      1,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}

	testimonials, err := NewTestimonialRepo(db).ListFeatured(ctx, 6)
	require.NoError(t, err)
	require.Len(t, testimonials, 6)
	assert.Equal(t, "c7", testimonials[0].ClientName)
	assert.Equal(t, "c2", testimonials[5].ClientName)
	for _, tm := range testimonials {
		assert.NotEqual(t, "c1", tm.ClientName)
	}
}

func TestTestimonialRatingCheck(t *testing.T) {
	db := dbtest.New(t)
	err := db.Create(&models.Testimonial{ClientName: "X", Content: "y", Rating: 6}).Error
	assert.Error(t, err)
}

func TestSimpleListings(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	d := New(db)

	dbtest.Create(t, db,
		&models.Service{Name: "Zeta", Slug: "zeta", IsActive: true, Order: 1},
		&models.Service{Name: "Alpha", Slug: "alpha", IsActive: true, Order: 1},
		&models.Service{Name: "First", Slug: "first", IsActive: true, Order: 0},
		&models.Service{Name: "Hidden", Slug: "hidden", IsActive: false},
		&models.CompanyStat{Name: "Clients", Value: 30, Suffix: "+", IsActive: true, Order: 2},
		&models.CompanyStat{Name: "Projects", Value: 50, Suffix: "+", IsActive: true, Order: 1},
		&models.Partner{Name: "B", Logo: "b.png", IsActive: true},
		&models.Partner{Name: "A", Logo: "a.png", IsActive: true},
		&models.RoadmapMilestone{Year: "2026", Title: "Later", Description: "x", IsActive: true, Order: 1},
		&models.RoadmapMilestone{Year: "2024", Title: "Earlier", Description: "x", IsActive: true, Order: 1},
		&models.Testimonial{ClientName: "T1", Content: "c", Rating: 5, IsActive: true, IsFeatured: true, Order: 2},
		&models.Testimonial{ClientName: "T2", Content: "c", Rating: 4, IsActive: true, Order: 1},
	)

	services, err := d.ServiceRepo().ListActive(ctx, 0)
	require.NoError(t, err)
	require.Len(t, services, 3)
	assert.Equal(t, "First", services[0].Name)
	assert.Equal(t, "Alpha", services[1].Name)
	assert.Equal(t, "Zeta", services[2].Name)

	_, err = d.ServiceRepo().FindActiveBySlug(ctx, "hidden")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	stats, err := d.CompanyStatRepo().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Projects: 50+", stats[0].String())

	partners, err := d.PartnerRepo().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, partners, 2)
	assert.Equal(t, "A", partners[0].Name)

	milestones, err := d.RoadmapMilestoneRepo().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, milestones, 2)
	assert.Equal(t, "Earlier", milestones[0].Title)

	featured, err := d.TestimonialRepo().ListFeatured(ctx, 3)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "T1", featured[0].ClientName)

	all, err := d.TestimonialRepo().ListActive(ctx, 4)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "T1", all[0].ClientName)

	require.NoError(t, d.Ping(ctx))
}
