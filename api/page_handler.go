package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kianvosoft/site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pageHandler struct {
	responder Responder
	logger    zerolog.Logger
	site      *services.Site
}

func newPageHandler(site *services.Site) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()

	return pageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		site:      site,
	}
}

// getHome returns the landing page content
// @Summary Home page
// @Tags Pages
// @Produce json
// @Success 200 {object} services.HomePage
// @Failure 500 {object} ErrorResponse
// @Router / [get]
func (h pageHandler) getHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.site.HomePage(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// @Summary About page
// @Tags Pages
// @Produce json
// @Success 200 {object} services.AboutPage
// @Router /about [get]
func (h pageHandler) getAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.site.AboutPage(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

func (h pageHandler) getServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.site.ServicesPage(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// getService returns one active service with a few portfolio projects
// @Summary Service detail
// @Tags Pages
// @Produce json
// @Param slug path string true "Service slug"
// @Success 200 {object} services.ServiceDetail
// @Failure 404 {object} ErrorResponse "Not Found - service not found"
// @Router /services/{slug} [get]
func (h pageHandler) getService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		detail, err := h.site.GetServiceBySlug(r.Context(), slug, services.ServiceRelatedProjects)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, detail)
	}
}

// getPortfolio lists active projects, optionally for one category
// @Summary Portfolio page
// @Tags Pages
// @Produce json
// @Param category query string false "Project category slug"
// @Success 200 {object} services.PortfolioPage
// @Router /portfolio [get]
func (h pageHandler) getPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")

		page, err := h.site.PortfolioPage(r.Context(), category)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// @Summary Project detail
// @Tags Pages
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} services.ProjectDetail
// @Failure 404 {object} ErrorResponse "Not Found - project not found"
// @Router /portfolio/{slug} [get]
func (h pageHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		detail, err := h.site.GetProjectBySlug(r.Context(), slug, services.RelatedProjects)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, detail)
	}
}

func (h pageHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")

		page, err := h.site.BlogPage(r.Context(), category)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

func (h pageHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		detail, err := h.site.GetBlogPostBySlug(r.Context(), slug, services.RelatedPosts)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, detail)
	}
}
