package services

import (
	"context"

	"github.com/kianvosoft/site-backend/models"
	"golang.org/x/sync/errgroup"
)

// Page sizes of the public pages.
const (
	HomeFeaturedProjects   = 6
	HomeServices           = 6
	HomeTestimonials       = 3
	HomeBlogPosts          = 3
	AboutTestimonials      = 4
	BlogFeaturedPosts      = 3
	RelatedProjects        = 3
	RelatedPosts           = 3
	ServiceRelatedProjects = 4
)

type HomePage struct {
	FeaturedProjects []*models.Project     `json:"featuredProjects"`
	Services         []*models.Service     `json:"services"`
	Testimonials     []*models.Testimonial `json:"testimonials"`
	BlogPosts        []*models.BlogPost    `json:"blogPosts"`
	Partners         []*models.Partner     `json:"partners"`
	Stats            []*models.CompanyStat `json:"stats"`
}

type AboutPage struct {
	Stats        []*models.CompanyStat      `json:"stats"`
	Testimonials []*models.Testimonial      `json:"testimonials"`
	Milestones   []*models.RoadmapMilestone `json:"milestones"`
}

type ServicesPage struct {
	Services []*models.Service `json:"services"`
}

type ServiceDetail struct {
	Service         *models.Service   `json:"service"`
	RelatedProjects []*models.Project `json:"relatedProjects"`
}

type PortfolioPage struct {
	Projects        []*models.Project         `json:"projects"`
	Categories      []*models.ProjectCategory `json:"categories"`
	CurrentCategory string                    `json:"currentCategory"`
	Stats           []*models.CompanyStat     `json:"stats"`
}

type ProjectDetail struct {
	Project         *models.Project   `json:"project"`
	RelatedProjects []*models.Project `json:"relatedProjects"`
}

type BlogPage struct {
	Posts           []*models.BlogPost     `json:"posts"`
	Categories      []*models.BlogCategory `json:"categories"`
	CurrentCategory string                 `json:"currentCategory"`
	FeaturedPosts   []*models.BlogPost     `json:"featuredPosts"`
}

type BlogPostDetail struct {
	Post         *models.BlogPost   `json:"post"`
	RelatedPosts []*models.BlogPost `json:"relatedPosts"`
}

type ContactPage struct {
	Services     []*models.Service             `json:"services"`
	ServiceTypes []models.InquiryServiceChoice `json:"serviceTypes"`
	Error        string                        `json:"error,omitempty"`
}

// fetch runs fn on g and stores its result in dst. Each fetch of a page
// targets a different field.
func fetch[T any](g *errgroup.Group, dst *T, fn func() (T, error)) {
	g.Go(func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
}

func (s *Site) HomePage(ctx context.Context) (*HomePage, error) {
	var page HomePage
	g, gctx := errgroup.WithContext(ctx)
	fetch(g, &page.FeaturedProjects, func() ([]*models.Project, error) {
		return s.ListFeaturedProjects(gctx, HomeFeaturedProjects)
	})
	fetch(g, &page.Services, func() ([]*models.Service, error) { return s.ListServices(gctx, HomeServices) })
	fetch(g, &page.Testimonials, func() ([]*models.Testimonial, error) {
		return s.ListFeaturedTestimonials(gctx, HomeTestimonials)
	})
	fetch(g, &page.BlogPosts, func() ([]*models.BlogPost, error) { return s.ListRecentBlogPosts(gctx, HomeBlogPosts) })
	fetch(g, &page.Partners, func() ([]*models.Partner, error) { return s.ListPartners(gctx) })
	fetch(g, &page.Stats, func() ([]*models.CompanyStat, error) { return s.ListStats(gctx) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Site) AboutPage(ctx context.Context) (*AboutPage, error) {
	var page AboutPage
	g, gctx := errgroup.WithContext(ctx)
	fetch(g, &page.Stats, func() ([]*models.CompanyStat, error) { return s.ListStats(gctx) })
	fetch(g, &page.Testimonials, func() ([]*models.Testimonial, error) { return s.ListTestimonials(gctx, AboutTestimonials) })
	fetch(g, &page.Milestones, func() ([]*models.RoadmapMilestone, error) { return s.ListMilestones(gctx) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Site) ServicesPage(ctx context.Context) (*ServicesPage, error) {
	services, err := s.ListServices(ctx, 0)
	if err != nil {
		return nil, err
	}
	return &ServicesPage{Services: services}, nil
}

func (s *Site) PortfolioPage(ctx context.Context, categorySlug string) (*PortfolioPage, error) {
	page := PortfolioPage{CurrentCategory: categorySlug}
	g, gctx := errgroup.WithContext(ctx)
	fetch(g, &page.Projects, func() ([]*models.Project, error) { return s.ListProjects(gctx, categorySlug) })
	fetch(g, &page.Categories, func() ([]*models.ProjectCategory, error) { return s.ListProjectCategories(gctx) })
	fetch(g, &page.Stats, func() ([]*models.CompanyStat, error) { return s.ListStats(gctx) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Site) BlogPage(ctx context.Context, categorySlug string) (*BlogPage, error) {
	page := BlogPage{CurrentCategory: categorySlug}
	g, gctx := errgroup.WithContext(ctx)
	fetch(g, &page.Posts, func() ([]*models.BlogPost, error) { return s.ListBlogPosts(gctx, categorySlug) })
	fetch(g, &page.Categories, func() ([]*models.BlogCategory, error) { return s.ListBlogCategories(gctx) })
	fetch(g, &page.FeaturedPosts, func() ([]*models.BlogPost, error) { return s.ListFeaturedBlogPosts(gctx, BlogFeaturedPosts) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Site) ContactPage(ctx context.Context) (*ContactPage, error) {
	services, err := s.ListServices(ctx, 0)
	if err != nil {
		return nil, err
	}
	return &ContactPage{Services: services, ServiceTypes: models.InquiryServiceChoices}, nil
}
