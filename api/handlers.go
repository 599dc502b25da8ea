package api

import (
	"time"

	"github.com/kianvosoft/site-backend/admin"
	"github.com/kianvosoft/site-backend/database"
	"github.com/kianvosoft/site-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, site *services.Site, adminSite *admin.Site, tokens tokenIssuer, adminPassword string, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(db, startupTime),
		pageHandler:    newPageHandler(site),
		contactHandler: newContactHandler(site),
		adminHandler:   newAdminHandler(adminSite, tokens, adminPassword),
	}
}
