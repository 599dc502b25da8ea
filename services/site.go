package services

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kianvosoft/site-backend/database"
	"github.com/kianvosoft/site-backend/errs"
	"github.com/kianvosoft/site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	MsgSubscribed        = "Thank you for subscribing to our newsletter!"
	MsgAlreadySubscribed = "This email is already subscribed."
)

type mediaResolver interface {
	Resolve(ctx context.Context, ref string) string
}

type inquiryNotifier interface {
	NotifyInquiry(ctx context.Context, inquiry *models.ContactInquiry)
}

// Site is the read model behind the public pages plus the two visitor write
// paths, contact inquiries and newsletter signups.
type Site struct {
	db       database.Database
	media    mediaResolver
	notifier inquiryNotifier
	validate *validator.Validate
	logger   zerolog.Logger
	pending  sync.WaitGroup
}

type SiteOption func(*Site)

func WithMedia(m mediaResolver) SiteOption {
	return func(s *Site) {
		s.media = m
	}
}

func WithNotifier(n inquiryNotifier) SiteOption {
	return func(s *Site) {
		s.notifier = n
	}
}

func NewSite(db database.Database, opts ...SiteOption) *Site {
	s := &Site{
		db:       db,
		media:    NewMediaResolver(""),
		validate: validator.New(),
		logger:   log.With().Str("component", "site").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wait blocks until in-flight inquiry notifications have finished.
func (s *Site) Wait() {
	s.pending.Wait()
}

func (s *Site) ListFeaturedProjects(ctx context.Context, limit int) ([]*models.Project, error) {
	projects, err := s.db.ProjectRepo().ListFeatured(ctx, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return s.resolveProjects(ctx, projects), nil
}

// ListProjects returns active projects, filtered by category slug when one is given.
func (s *Site) ListProjects(ctx context.Context, categorySlug string) ([]*models.Project, error) {
	projects, err := s.db.ProjectRepo().ListActive(ctx, categorySlug, 0)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return s.resolveProjects(ctx, projects), nil
}

// GetProjectBySlug returns an active project together with up to limit other
// projects from the same category.
func (s *Site) GetProjectBySlug(ctx context.Context, slug string, limit int) (*ProjectDetail, error) {
	project, err := s.db.ProjectRepo().FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	related, err := s.db.ProjectRepo().ListRelated(ctx, project, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "related projects", err)
	}
	s.resolveProject(ctx, project)
	return &ProjectDetail{Project: project, RelatedProjects: s.resolveProjects(ctx, related)}, nil
}

func (s *Site) ListProjectCategories(ctx context.Context) ([]*models.ProjectCategory, error) {
	categories, err := s.db.ProjectCategoryRepo().ListActive(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "project categories", err)
	}
	return categories, nil
}

// ListServices returns active services; limit <= 0 returns all of them.
func (s *Site) ListServices(ctx context.Context, limit int) ([]*models.Service, error) {
	services, err := s.db.ServiceRepo().ListActive(ctx, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "services", err)
	}
	for _, svc := range services {
		svc.Image = s.media.Resolve(ctx, svc.Image)
	}
	return services, nil
}

// GetServiceBySlug returns an active service with the first limit active
// projects in default order. Projects are not matched to the service.
func (s *Site) GetServiceBySlug(ctx context.Context, slug string, limit int) (*ServiceDetail, error) {
	service, err := s.db.ServiceRepo().FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "service", err)
	}
	related, err := s.db.ProjectRepo().ListActive(ctx, "", limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	service.Image = s.media.Resolve(ctx, service.Image)
	return &ServiceDetail{Service: service, RelatedProjects: s.resolveProjects(ctx, related)}, nil
}

func (s *Site) ListFeaturedTestimonials(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	testimonials, err := s.db.TestimonialRepo().ListFeatured(ctx, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "testimonials", err)
	}
	return s.resolveTestimonials(ctx, testimonials), nil
}

func (s *Site) ListTestimonials(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	testimonials, err := s.db.TestimonialRepo().ListActive(ctx, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "testimonials", err)
	}
	return s.resolveTestimonials(ctx, testimonials), nil
}

func (s *Site) ListRecentBlogPosts(ctx context.Context, limit int) ([]*models.BlogPost, error) {
	posts, err := s.db.BlogPostRepo().ListPublished(ctx, "", limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "blog posts", err)
	}
	return s.resolvePosts(ctx, posts), nil
}

func (s *Site) ListFeaturedBlogPosts(ctx context.Context, limit int) ([]*models.BlogPost, error) {
	posts, err := s.db.BlogPostRepo().ListFeatured(ctx, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "blog posts", err)
	}
	return s.resolvePosts(ctx, posts), nil
}

// ListBlogPosts returns published posts, filtered by blog category slug when one is given.
func (s *Site) ListBlogPosts(ctx context.Context, categorySlug string) ([]*models.BlogPost, error) {
	posts, err := s.db.BlogPostRepo().ListPublished(ctx, categorySlug, 0)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "blog posts", err)
	}
	return s.resolvePosts(ctx, posts), nil
}

func (s *Site) GetBlogPostBySlug(ctx context.Context, slug string, limit int) (*BlogPostDetail, error) {
	post, err := s.db.BlogPostRepo().FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog post", err)
	}
	related, err := s.db.BlogPostRepo().ListRelated(ctx, post, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "related blog posts", err)
	}
	post.FeaturedImage = s.media.Resolve(ctx, post.FeaturedImage)
	return &BlogPostDetail{Post: post, RelatedPosts: s.resolvePosts(ctx, related)}, nil
}

func (s *Site) ListBlogCategories(ctx context.Context) ([]*models.BlogCategory, error) {
	categories, err := s.db.BlogCategoryRepo().ListActive(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "blog categories", err)
	}
	return categories, nil
}

func (s *Site) ListPartners(ctx context.Context) ([]*models.Partner, error) {
	partners, err := s.db.PartnerRepo().ListActive(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "partners", err)
	}
	for _, p := range partners {
		p.Logo = s.media.Resolve(ctx, p.Logo)
	}
	return partners, nil
}

func (s *Site) ListStats(ctx context.Context) ([]*models.CompanyStat, error) {
	stats, err := s.db.CompanyStatRepo().ListActive(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "company stats", err)
	}
	return stats, nil
}

func (s *Site) ListMilestones(ctx context.Context) ([]*models.RoadmapMilestone, error) {
	milestones, err := s.db.RoadmapMilestoneRepo().ListActive(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "roadmap milestones", err)
	}
	return milestones, nil
}

// InquiryInput is a contact form submission before it is stored.
type InquiryInput struct {
	Name        string                    `json:"name" validate:"required,max=200"`
	Email       string                    `json:"email" validate:"required,max=254"`
	Phone       string                    `json:"phone" validate:"max=50"`
	ServiceType models.InquiryServiceType `json:"serviceType" validate:"omitempty,oneof=software web mobile ai automation analytics consulting other"`
	Subject     string                    `json:"subject" validate:"max=300"`
	Message     string                    `json:"message" validate:"required"`
}

func (in *InquiryInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ServiceType = models.InquiryServiceType(strings.TrimSpace(string(in.ServiceType)))
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

// SubmitInquiry stores a new inquiry with status new and returns its ID.
// Staff are notified in the background once the row is committed.
func (s *Site) SubmitInquiry(ctx context.Context, input InquiryInput) (uuid.UUID, error) {
	input.trim()
	if err := s.validate.Struct(input); err != nil {
		return uuid.Nil, errs.FromValidation(err)
	}

	inquiry := &models.ContactInquiry{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		ServiceType: input.ServiceType,
		Subject:     input.Subject,
		Message:     input.Message,
		Status:      models.InquiryStatusNew,
	}
	if err := s.db.ContactInquiryRepo().Add(ctx, inquiry); err != nil {
		return uuid.Nil, errs.NewDatabaseError("create", "contact inquiry", err)
	}

	s.logger.Info().Str("inquiryId", inquiry.ID.String()).Msg("contact inquiry received")

	if s.notifier != nil {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			s.notifier.NotifyInquiry(context.WithoutCancel(ctx), inquiry)
		}()
	}
	return inquiry.ID, nil
}

// NewsletterResult reports whether a subscription row was created.
type NewsletterResult struct {
	Created bool
	Message string
}

// SubscribeNewsletter adds email to the list. Subscribing an address twice is
// not an error; the second call reports Created false.
func (s *Site) SubscribeNewsletter(ctx context.Context, email string) (NewsletterResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewsletterResult{}, errs.NewMissingRequiredFieldError("email")
	}

	subscriber := &models.NewsletterSubscriber{Email: email}
	subscriber.SetDefaults()
	if err := s.validate.Struct(subscriber); err != nil {
		return NewsletterResult{}, errs.FromValidation(err)
	}

	created, err := s.db.NewsletterSubscriberRepo().AddIfAbsent(ctx, subscriber)
	if err != nil {
		return NewsletterResult{}, errs.NewDatabaseError("create", "newsletter subscriber", err)
	}
	if !created {
		return NewsletterResult{Created: false, Message: MsgAlreadySubscribed}, nil
	}
	return NewsletterResult{Created: true, Message: MsgSubscribed}, nil
}

func (s *Site) resolveProject(ctx context.Context, p *models.Project) {
	for _, img := range p.Images() {
		*img = s.media.Resolve(ctx, *img)
	}
}

func (s *Site) resolveProjects(ctx context.Context, projects []*models.Project) []*models.Project {
	for _, p := range projects {
		s.resolveProject(ctx, p)
	}
	return projects
}

func (s *Site) resolveTestimonials(ctx context.Context, testimonials []*models.Testimonial) []*models.Testimonial {
	for _, t := range testimonials {
		t.ClientImage = s.media.Resolve(ctx, t.ClientImage)
	}
	return testimonials
}

func (s *Site) resolvePosts(ctx context.Context, posts []*models.BlogPost) []*models.BlogPost {
	for _, p := range posts {
		p.FeaturedImage = s.media.Resolve(ctx, p.FeaturedImage)
	}
	return posts
}
