package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes mounts the site pages and visitor forms
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/healthz", handlers.healthHandler.getHealth())

		r.Get("/", handlers.pageHandler.getHome())
		r.Get("/about", handlers.pageHandler.getAbout())
		r.Get("/services", handlers.pageHandler.getServices())
		r.Get("/services/{slug}", handlers.pageHandler.getService())
		r.Get("/portfolio", handlers.pageHandler.getPortfolio())
		r.Get("/portfolio/{slug}", handlers.pageHandler.getProject())
		r.Get("/blog", handlers.pageHandler.getBlog())
		r.Get("/blog/{slug}", handlers.pageHandler.getBlogPost())

		r.Get("/contact", handlers.contactHandler.getContact())
		r.Post("/contact", handlers.contactHandler.submitInquiry())
		r.Post("/newsletter/subscribe", handlers.contactHandler.subscribeNewsletter())
	})
}

// setupAdminRoutes mounts login and the bearer protected CRUD surface
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/login", handlers.adminHandler.login())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/", handlers.adminHandler.getIndex())
			r.Get("/{entity}", handlers.adminHandler.list())
			r.Post("/{entity}", handlers.adminHandler.create())
			r.Get("/{entity}/{id}", handlers.adminHandler.get())
			r.Put("/{entity}/{id}", handlers.adminHandler.update())
			r.Patch("/{entity}/{id}", handlers.adminHandler.patch())
			r.Delete("/{entity}/{id}", handlers.adminHandler.delete())
		})
	})
}
