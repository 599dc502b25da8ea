package admin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kianvosoft/site-backend/database"
	"github.com/kianvosoft/site-backend/models"
)

const (
	SiteHeader = "KianvoSoft Admin"
	SiteTitle  = "KianvoSoft Admin Portal"
	IndexTitle = "Welcome to KianvoSoft Administration"
)

// Entity is a Resource with its model type erased, as mounted by the router.
type Entity interface {
	Descriptor() Descriptor
	List(ctx context.Context, query url.Values) (any, error)
	Get(ctx context.Context, id uuid.UUID) (any, error)
	Create(ctx context.Context, body []byte) (any, error)
	Update(ctx context.Context, id uuid.UUID, body []byte) (any, error)
	Patch(ctx context.Context, id uuid.UUID, body []byte) (any, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type entity[T any] struct {
	r *Resource[T]
}

func (e entity[T]) Descriptor() Descriptor {
	return e.r.Descriptor()
}

func (e entity[T]) List(ctx context.Context, query url.Values) (any, error) {
	params, err := e.r.ParseListParams(query)
	if err != nil {
		return nil, err
	}
	page, err := e.r.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (e entity[T]) Get(ctx context.Context, id uuid.UUID) (any, error) {
	item, err := e.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (e entity[T]) Create(ctx context.Context, body []byte) (any, error) {
	item, err := e.r.Create(ctx, body)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (e entity[T]) Update(ctx context.Context, id uuid.UUID, body []byte) (any, error) {
	item, err := e.r.Update(ctx, id, body)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (e entity[T]) Patch(ctx context.Context, id uuid.UUID, body []byte) (any, error) {
	item, err := e.r.Patch(ctx, id, body)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (e entity[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return e.r.Delete(ctx, id)
}

// Site is the registry of managed entities.
type Site struct {
	entities []Entity
	byName   map[string]Entity
}

// Index is the payload of the admin landing page.
type Index struct {
	Header     string       `json:"header"`
	Title      string       `json:"title"`
	IndexTitle string       `json:"indexTitle"`
	Entities   []Descriptor `json:"entities"`
}

func register[T any](s *Site, db database.Database, validate *validator.Validate, desc Descriptor) error {
	r, err := NewResource[T](db.DB(), validate, desc)
	if err != nil {
		return err
	}
	if _, dup := s.byName[desc.Name]; dup {
		return fmt.Errorf("entity %q registered twice", desc.Name)
	}
	e := entity[T]{r}
	s.entities = append(s.entities, e)
	s.byName[desc.Name] = e
	return nil
}

// NewSite registers every content entity.
func NewSite(db database.Database) (*Site, error) {
	s := &Site{byName: map[string]Entity{}}
	validate := validator.New()

	steps := []error{
		register[models.ProjectCategory](s, db, validate, Descriptor{
			Name:         "project-categories",
			Label:        "project category",
			ListDisplay:  []string{"name", "slug", "iconClass", "order", "isActive"},
			ListFilter:   []string{"isActive"},
			SearchFields: []string{"name", "description"},
			ListEditable: []string{"order", "isActive"},
			Ordering:     "sort_order ASC, name ASC",
			SlugField:    "slug",
			SlugSource:   "name",
			Delete:       db.ProjectCategoryRepo().Delete,
		}),
		register[models.Project](s, db, validate, Descriptor{
			Name:         "projects",
			Label:        "project",
			ListDisplay:  []string{"name", "category", "status", "isFeatured", "isActive", "order", "createdAt"},
			ListFilter:   []string{"status", "categoryId", "isFeatured", "isActive"},
			SearchFields: []string{"name", "tagline", "description", "technologies"},
			ListEditable: []string{"isFeatured", "isActive", "order", "status"},
			Ordering:     "is_featured DESC, sort_order ASC, created_at DESC",
			SlugField:    "slug",
			SlugSource:   "name",
			Preload:      []string{"Category"},
			Delete:       db.ProjectRepo().Delete,
		}),
		register[models.Service](s, db, validate, Descriptor{
			Name:         "services",
			Label:        "service",
			ListDisplay:  []string{"name", "serviceType", "isFeatured", "isActive", "order"},
			ListFilter:   []string{"serviceType", "isFeatured", "isActive"},
			SearchFields: []string{"name", "description", "technologies"},
			ListEditable: []string{"isFeatured", "isActive", "order"},
			Ordering:     "sort_order ASC, name ASC",
			SlugField:    "slug",
			SlugSource:   "name",
		}),
		register[models.Testimonial](s, db, validate, Descriptor{
			Name:         "testimonials",
			Label:        "testimonial",
			ListDisplay:  []string{"clientName", "clientCompany", "rating", "project", "isFeatured", "isActive"},
			ListFilter:   []string{"rating", "isFeatured", "isActive", "projectId"},
			SearchFields: []string{"client_name", "client_company", "content"},
			ListEditable: []string{"isFeatured", "isActive"},
			Ordering:     "is_featured DESC, sort_order ASC, created_at DESC",
			Preload:      []string{"Project"},
		}),
		register[models.BlogCategory](s, db, validate, Descriptor{
			Name:         "blog-categories",
			Label:        "blog category",
			ListDisplay:  []string{"name", "slug", "isActive"},
			ListFilter:   []string{"isActive"},
			SearchFields: []string{"name", "description"},
			ListEditable: []string{"isActive"},
			Ordering:     "name ASC",
			SlugField:    "slug",
			SlugSource:   "name",
			Delete:       db.BlogCategoryRepo().Delete,
		}),
		register[models.BlogPost](s, db, validate, Descriptor{
			Name:         "blog-posts",
			Label:        "blog post",
			ListDisplay:  []string{"title", "category", "author", "isFeatured", "isPublished", "publishedDate"},
			ListFilter:   []string{"categoryId", "isFeatured", "isPublished"},
			SearchFields: []string{"title", "excerpt", "content"},
			ListEditable: []string{"isFeatured", "isPublished"},
			Ordering:     "published_date DESC",
			SlugField:    "slug",
			SlugSource:   "title",
			Preload:      []string{"Category"},
		}),
		register[models.ContactInquiry](s, db, validate, Descriptor{
			Name:         "contact-inquiries",
			Label:        "contact inquiry",
			ListDisplay:  []string{"name", "email", "serviceType", "status", "createdAt"},
			ListFilter:   []string{"status", "serviceType"},
			SearchFields: []string{"name", "email", "subject", "message"},
			ListEditable: []string{"status"},
			Ordering:     "created_at DESC",
		}),
		register[models.NewsletterSubscriber](s, db, validate, Descriptor{
			Name:         "newsletter-subscribers",
			Label:        "newsletter subscriber",
			ListDisplay:  []string{"email", "isActive", "subscribedAt"},
			ListFilter:   []string{"isActive"},
			SearchFields: []string{"email"},
			ListEditable: []string{"isActive"},
			Ordering:     "subscribed_at DESC",
			ReadOnly:     []string{"subscribedAt"},
		}),
		register[models.CompanyStat](s, db, validate, Descriptor{
			Name:         "company-stats",
			Label:        "company stat",
			ListDisplay:  []string{"name", "value", "suffix", "order", "isActive"},
			ListFilter:   []string{"isActive"},
			SearchFields: []string{"name"},
			ListEditable: []string{"value", "suffix", "order", "isActive"},
			Ordering:     "sort_order ASC",
		}),
		register[models.Partner](s, db, validate, Descriptor{
			Name:         "partners",
			Label:        "partner",
			ListDisplay:  []string{"name", "logo", "websiteUrl", "isActive", "order"},
			ListFilter:   []string{"isActive"},
			SearchFields: []string{"name"},
			ListEditable: []string{"isActive", "order"},
			Ordering:     "sort_order ASC, name ASC",
		}),
		register[models.RoadmapMilestone](s, db, validate, Descriptor{
			Name:         "roadmap-milestones",
			Label:        "roadmap milestone",
			ListDisplay:  []string{"year", "title", "isActive", "order"},
			ListFilter:   []string{"isActive"},
			SearchFields: []string{"year", "title", "description"},
			ListEditable: []string{"isActive", "order"},
			Ordering:     "sort_order ASC, year ASC",
		}),
	}
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Site) Entities() []Entity {
	return s.entities
}

func (s *Site) Entity(name string) (Entity, bool) {
	e, ok := s.byName[name]
	return e, ok
}

func (s *Site) Index() Index {
	descs := make([]Descriptor, 0, len(s.entities))
	for _, e := range s.entities {
		descs = append(descs, e.Descriptor())
	}
	return Index{
		Header:     SiteHeader,
		Title:      SiteTitle,
		IndexTitle: IndexTitle,
		Entities:   descs,
	}
}
