// Package seed loads the starter catalogue of the marketing site: project and
// blog categories, portfolio projects, services, company stats and blog posts.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kianvosoft/site-backend/database"
	"github.com/kianvosoft/site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed data.yaml
var defaultData []byte

type Data struct {
	ProjectCategories []categoryRecord `yaml:"project_categories"`
	Projects          []projectRecord  `yaml:"projects"`
	Services          []serviceRecord  `yaml:"services"`
	CompanyStats      []statRecord     `yaml:"company_stats"`
	BlogCategories    []categoryRecord `yaml:"blog_categories"`
	BlogPosts         []postRecord     `yaml:"blog_posts"`
}

type categoryRecord struct {
	Name      string `yaml:"name"`
	Slug      string `yaml:"slug"`
	IconClass string `yaml:"icon_class"`
	Order     int    `yaml:"order"`
}

type projectRecord struct {
	Name            string `yaml:"name"`
	Slug            string `yaml:"slug"`
	Tagline         string `yaml:"tagline"`
	Description     string `yaml:"description"`
	FullDescription string `yaml:"full_description"`
	Category        string `yaml:"category"`
	Technologies    string `yaml:"technologies"`
	Features        string `yaml:"features"`
	IconClass       string `yaml:"icon_class"`
	Status          string `yaml:"status"`
	IsFeatured      bool   `yaml:"is_featured"`
	Order           int    `yaml:"order"`
}

type serviceRecord struct {
	Name             string `yaml:"name"`
	Slug             string `yaml:"slug"`
	ShortDescription string `yaml:"short_description"`
	Description      string `yaml:"description"`
	IconClass        string `yaml:"icon_class"`
	Features         string `yaml:"features"`
	Technologies     string `yaml:"technologies"`
	IsFeatured       bool   `yaml:"is_featured"`
	Order            int    `yaml:"order"`
}

type statRecord struct {
	Name   string `yaml:"name"`
	Value  int    `yaml:"value"`
	Suffix string `yaml:"suffix"`
	Order  int    `yaml:"order"`
}

type postRecord struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Excerpt     string `yaml:"excerpt"`
	Category    string `yaml:"category"`
	Author      string `yaml:"author"`
	IsFeatured  bool   `yaml:"is_featured"`
	IsPublished bool   `yaml:"is_published"`
	Content     string `yaml:"content"`
}

// DefaultData returns the catalogue shipped with the binary.
func DefaultData() (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(defaultData, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &data, nil
}

type Options struct {
	// RefreshBlog deletes every blog post before seeding so posts are
	// recreated from the current content.
	RefreshBlog bool
}

// Result counts the rows created by a run. Rows that already existed are
// left untouched and not counted.
type Result struct {
	ProjectCategories int
	Projects          int
	Services          int
	CompanyStats      int
	BlogCategories    int
	BlogPosts         int
	DeletedPosts      int64
}

type Seeder struct {
	db     database.Database
	data   *Data
	logger zerolog.Logger
}

func New(db database.Database, data *Data) *Seeder {
	return &Seeder{
		db:     db,
		data:   data,
		logger: log.With().Str("component", "seed").Logger(),
	}
}

// Run inserts every record whose natural key (slug, or name for stats) is not
// present yet. Running it twice creates nothing the second time.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result

	if opts.RefreshBlog {
		deleted, err := s.db.BlogPostRepo().DeleteAll(ctx)
		if err != nil {
			return res, fmt.Errorf("delete blog posts: %w", err)
		}
		res.DeletedPosts = deleted
		s.logger.Info().Int64("deleted", deleted).Msg("deleted existing blog posts for refresh")
	}

	err := s.db.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if res.ProjectCategories, err = s.seedProjectCategories(tx); err != nil {
			return err
		}
		if res.Projects, err = s.seedProjects(tx); err != nil {
			return err
		}
		if res.Services, err = s.seedServices(tx); err != nil {
			return err
		}
		if res.CompanyStats, err = s.seedStats(tx); err != nil {
			return err
		}
		if res.BlogCategories, err = s.seedBlogCategories(tx); err != nil {
			return err
		}
		res.BlogPosts, err = s.seedBlogPosts(tx)
		return err
	})
	if err != nil {
		return res, err
	}

	s.logger.Info().
		Int("projectCategories", res.ProjectCategories).
		Int("projects", res.Projects).
		Int("services", res.Services).
		Int("companyStats", res.CompanyStats).
		Int("blogCategories", res.BlogCategories).
		Int("blogPosts", res.BlogPosts).
		Msg("database seeding completed")
	return res, nil
}

// createMissing inserts value unless a row with column = key exists.
func createMissing[T any](tx *gorm.DB, column, key string, value *T) (bool, error) {
	err := tx.Where(column+" = ?", key).First(new(T)).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := tx.Create(value).Error; err != nil {
		return false, err
	}
	return true, nil
}

func count(created bool, n *int) {
	if created {
		*n++
	}
}

func (s *Seeder) seedProjectCategories(tx *gorm.DB) (int, error) {
	var n int
	for _, rec := range s.data.ProjectCategories {
		c := &models.ProjectCategory{}
		c.SetDefaults()
		c.Name, c.Slug, c.IconClass, c.Order = rec.Name, rec.Slug, rec.IconClass, rec.Order
		created, err := createMissing(tx, "slug", rec.Slug, c)
		if err != nil {
			return n, fmt.Errorf("seed project category %s: %w", rec.Slug, err)
		}
		count(created, &n)
	}
	return n, nil
}

func categoryIDs[T any](tx *gorm.DB) (map[string]uuid.UUID, error) {
	var rows []struct {
		ID   uuid.UUID
		Slug string
	}
	if err := tx.Model(new(T)).Select("id", "slug").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uuid.UUID, len(rows))
	for _, r := range rows {
		ids[r.Slug] = r.ID
	}
	return ids, nil
}

func lookup(ids map[string]uuid.UUID, slug string) *uuid.UUID {
	id, ok := ids[slug]
	if !ok {
		return nil
	}
	return &id
}

func (s *Seeder) seedProjects(tx *gorm.DB) (int, error) {
	ids, err := categoryIDs[models.ProjectCategory](tx)
	if err != nil {
		return 0, err
	}

	var n int
	for _, rec := range s.data.Projects {
		p := &models.Project{}
		p.SetDefaults()
		p.Name = rec.Name
		p.Slug = rec.Slug
		p.Tagline = rec.Tagline
		p.Description = rec.Description
		p.FullDescription = rec.FullDescription
		p.CategoryID = lookup(ids, rec.Category)
		p.Technologies = rec.Technologies
		p.Features = rec.Features
		p.IsFeatured = rec.IsFeatured
		p.Order = rec.Order
		if rec.IconClass != "" {
			p.IconClass = rec.IconClass
		}
		if rec.Status != "" {
			p.Status = models.ProjectStatus(rec.Status)
		}
		created, err := createMissing(tx, "slug", rec.Slug, p)
		if err != nil {
			return n, fmt.Errorf("seed project %s: %w", rec.Slug, err)
		}
		count(created, &n)
	}
	return n, nil
}

func (s *Seeder) seedServices(tx *gorm.DB) (int, error) {
	var n int
	for _, rec := range s.data.Services {
		svc := &models.Service{}
		svc.SetDefaults()
		svc.Name = rec.Name
		svc.Slug = rec.Slug
		svc.ShortDescription = rec.ShortDescription
		svc.Description = rec.Description
		svc.Features = rec.Features
		svc.Technologies = rec.Technologies
		svc.IsFeatured = rec.IsFeatured
		svc.Order = rec.Order
		if rec.IconClass != "" {
			svc.IconClass = rec.IconClass
		}
		created, err := createMissing(tx, "slug", rec.Slug, svc)
		if err != nil {
			return n, fmt.Errorf("seed service %s: %w", rec.Slug, err)
		}
		count(created, &n)
	}
	return n, nil
}

func (s *Seeder) seedStats(tx *gorm.DB) (int, error) {
	var n int
	for _, rec := range s.data.CompanyStats {
		stat := &models.CompanyStat{}
		stat.SetDefaults()
		stat.Name, stat.Value, stat.Suffix, stat.Order = rec.Name, rec.Value, rec.Suffix, rec.Order
		created, err := createMissing(tx, "name", rec.Name, stat)
		if err != nil {
			return n, fmt.Errorf("seed company stat %s: %w", rec.Name, err)
		}
		count(created, &n)
	}
	return n, nil
}

func (s *Seeder) seedBlogCategories(tx *gorm.DB) (int, error) {
	var n int
	for _, rec := range s.data.BlogCategories {
		c := &models.BlogCategory{}
		c.SetDefaults()
		c.Name, c.Slug = rec.Name, rec.Slug
		if rec.IconClass != "" {
			c.IconClass = rec.IconClass
		}
		created, err := createMissing(tx, "slug", rec.Slug, c)
		if err != nil {
			return n, fmt.Errorf("seed blog category %s: %w", rec.Slug, err)
		}
		count(created, &n)
	}
	return n, nil
}

func (s *Seeder) seedBlogPosts(tx *gorm.DB) (int, error) {
	ids, err := categoryIDs[models.BlogCategory](tx)
	if err != nil {
		return 0, err
	}

	var n int
	for _, rec := range s.data.BlogPosts {
		p := &models.BlogPost{}
		p.SetDefaults()
		p.Title = rec.Title
		p.Slug = rec.Slug
		p.Excerpt = rec.Excerpt
		p.Content = rec.Content
		p.CategoryID = lookup(ids, rec.Category)
		p.IsFeatured = rec.IsFeatured
		p.IsPublished = rec.IsPublished
		if rec.Author != "" {
			p.Author = rec.Author
		}
		created, err := createMissing(tx, "slug", rec.Slug, p)
		if err != nil {
			return n, fmt.Errorf("seed blog post %s: %w", rec.Slug, err)
		}
		count(created, &n)
	}
	return n, nil
}
