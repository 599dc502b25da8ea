package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kianvosoft/site-backend/admin"
	"github.com/kianvosoft/site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	site      *admin.Site
	tokens    tokenIssuer
	password  string
}

func newAdminHandler(site *admin.Site, tokens tokenIssuer, password string) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		site:      site,
		tokens:    tokens,
		password:  password,
	}
}

// login exchanges the admin password for a bearer token
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Admin password"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /admin/login [post]
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSONBody(w, r, &req, "login"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !h.tokens.enabled() || !passwordMatches(h.password, req.Password) {
			h.logger.Warn().Str("remoteAddr", r.RemoteAddr).Msg("failed admin login")
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, expiresAt, err := h.tokens.issue()
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		h.responder.WriteJSON(w, LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		})
	}
}

func (h adminHandler) getIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.site.Index())
	}
}

func (h adminHandler) entity(r *http.Request) (admin.Entity, error) {
	name := chi.URLParam(r, "entity")
	e, ok := h.site.Entity(name)
	if !ok {
		return nil, errs.NewNotFoundError("admin entity " + name)
	}
	return e, nil
}

func (h adminHandler) entityAndID(r *http.Request) (admin.Entity, uuid.UUID, error) {
	e, err := h.entity(r)
	if err != nil {
		return nil, uuid.Nil, err
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, uuid.Nil, errs.NewBadRequestError("invalid id")
	}
	return e, id, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		return nil, errs.NewMalformedPayloadError("admin", err)
	}
	return body, nil
}

func (h adminHandler) audit(r *http.Request, action string, e admin.Entity, id string) {
	subject, _ := ctxGetAdminSubject(r.Context())
	h.logger.Info().
		Str("subject", subject).
		Str("action", action).
		Str("entity", e.Descriptor().Name).
		Str("id", id).
		Msg("admin change")
}

// list pages through one entity
// @Summary List entity
// @Tags Admin
// @Produce json
// @Param entity path string true "Entity name"
// @Param q query string false "Search text"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} admin.ListResult[any]
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/{entity} [get]
func (h adminHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := h.entity(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := e.List(r.Context(), r.URL.Query())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

func (h adminHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, id, err := h.entityAndID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := e.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, item)
	}
}

func (h adminHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := h.entity(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := e.Create(r.Context(), body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.audit(r, "create", e, "")
		h.responder.WriteJSONStatus(w, http.StatusCreated, item)
	}
}

func (h adminHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, id, err := h.entityAndID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := e.Update(r.Context(), id, body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.audit(r, "update", e, id.String())
		h.responder.WriteJSON(w, item)
	}
}

// patch applies inline edits limited to the entity's editable list fields
func (h adminHandler) patch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, id, err := h.entityAndID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := e.Patch(r.Context(), id, body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.audit(r, "patch", e, id.String())
		h.responder.WriteJSON(w, item)
	}
}

func (h adminHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, id, err := h.entityAndID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := e.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.audit(r, "delete", e, id.String())
		w.WriteHeader(http.StatusNoContent)
	}
}
