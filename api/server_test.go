package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/kianvosoft/site-backend/admin"
	"github.com/kianvosoft/site-backend/database"
	"github.com/kianvosoft/site-backend/database/dbtest"
	"github.com/kianvosoft/site-backend/models"
	"github.com/kianvosoft/site-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "correct horse"

func newTestRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	gdb := dbtest.New(t)
	db := database.New(gdb)

	adminSite, err := admin.NewSite(db)
	require.NoError(t, err)

	cfg := map[string]string{
		"ACCEPTED_ORIGINS": "https://kianvosoft.com",
		"ADMIN_PASSWORD":   testPassword,
		"ADMIN_JWT_SECRET": "test-secret",
	}
	return newRouter(db, services.NewSite(db), adminSite, withConfig(cfg), withStartupTime(time.Now())), gdb
}

func doRequest(t *testing.T, h http.Handler, method, target string, body []byte, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonHeader() http.Header {
	return http.Header{"Content-Type": {"application/json"}}
}

func formHeader() http.Header {
	return http.Header{"Content-Type": {"application/x-www-form-urlencoded"}}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
}

func TestPublicPages(t *testing.T) {
	h, db := newTestRouter(t)
	erp := &models.ProjectCategory{Name: "ERP Solutions", Slug: "erp-solutions", IsActive: true}
	dbtest.Create(t, db, erp)
	dbtest.Create(t, db,
		&models.Project{Name: "Ledger", Slug: "ledger", CategoryID: &erp.ID, IsActive: true, IsFeatured: true},
		&models.Project{Name: "Payroll", Slug: "payroll", CategoryID: &erp.ID, IsActive: true},
		&models.Service{Name: "Web Development", Slug: "web-development", IsActive: true},
	)

	t.Run("home", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[services.HomePage](t, rec)
		require.Len(t, page.FeaturedProjects, 1)
		assert.Equal(t, "ledger", page.FeaturedProjects[0].Slug)
		assert.Len(t, page.Services, 1)
	})

	t.Run("portfolio filtered by category", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/portfolio?category=erp-solutions", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[services.PortfolioPage](t, rec)
		assert.Len(t, page.Projects, 2)
		assert.Equal(t, "erp-solutions", page.CurrentCategory)
	})

	t.Run("project detail with related", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/portfolio/ledger", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		detail := decode[services.ProjectDetail](t, rec)
		assert.Equal(t, "Ledger", detail.Project.Name)
		require.Len(t, detail.RelatedProjects, 1)
		assert.Equal(t, "payroll", detail.RelatedProjects[0].Slug)
	})

	t.Run("unknown project is 404", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/portfolio/nope", nil, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decode[ErrorResponse](t, rec)
		assert.Equal(t, "error", resp.Status)
	})

	t.Run("unknown service and post are 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, doRequest(t, h, http.MethodGet, "/services/nope", nil, nil).Code)
		assert.Equal(t, http.StatusNotFound, doRequest(t, h, http.MethodGet, "/blog/nope", nil, nil).Code)
	})

	t.Run("contact page lists service types", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/contact", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[services.ContactPage](t, rec)
		assert.Len(t, page.Services, 1)
		assert.Len(t, page.ServiceTypes, len(models.InquiryServiceChoices))
		assert.Empty(t, page.Error)
	})
}

func TestSubmitInquiry(t *testing.T) {
	h, db := newTestRouter(t)

	t.Run("form post redirects", func(t *testing.T) {
		form := url.Values{
			"name":    {"Ada"},
			"email":   {"ada@example.com"},
			"service": {"web"},
			"message": {"We need a shop."},
		}
		rec := doRequest(t, h, http.MethodPost, "/contact", []byte(form.Encode()), formHeader())
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/contact?submitted=true", rec.Header().Get("Location"))

		var stored models.ContactInquiry
		require.NoError(t, db.Where("email = ?", "ada@example.com").First(&stored).Error)
		assert.Equal(t, models.InquiryServiceType("web"), stored.ServiceType)
		assert.Equal(t, models.InquiryStatusNew, stored.Status)
	})

	t.Run("json post returns id", func(t *testing.T) {
		body := []byte(`{"name":"Grace","email":"grace@example.com","message":"Hello"}`)
		rec := doRequest(t, h, http.MethodPost, "/contact", body, jsonHeader())
		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decode[InquiryCreatedResponse](t, rec)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, msgInquiryReceived, resp.Message)
	})

	t.Run("missing message is rejected with the page payload", func(t *testing.T) {
		form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"   "}}
		rec := doRequest(t, h, http.MethodPost, "/contact", []byte(form.Encode()), formHeader())
		require.Equal(t, http.StatusBadRequest, rec.Code)
		page := decode[services.ContactPage](t, rec)
		assert.Equal(t, msgInquiryIncomplete, page.Error)
		assert.NotEmpty(t, page.ServiceTypes)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/contact", []byte(`{"name":`), jsonHeader())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSubscribeNewsletter(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/newsletter/subscribe", []byte(`{"email":"ada@example.com"}`), jsonHeader())
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[NewsletterResponse](t, rec)
	assert.True(t, first.Success)
	assert.True(t, first.Created)
	assert.Equal(t, services.MsgSubscribed, first.Message)

	form := url.Values{"email": {"ada@example.com"}}
	rec = doRequest(t, h, http.MethodPost, "/newsletter/subscribe", []byte(form.Encode()), formHeader())
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[NewsletterResponse](t, rec)
	assert.False(t, second.Success)
	assert.False(t, second.Created)
	assert.Equal(t, services.MsgAlreadySubscribed, second.Message)

	rec = doRequest(t, h, http.MethodPost, "/newsletter/subscribe", []byte(`{"email":"  "}`), jsonHeader())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	blank := decode[NewsletterResponse](t, rec)
	assert.False(t, blank.Success)
	assert.Equal(t, msgInvalidEmail, blank.Message)
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/admin/login", []byte(`{"password":"`+testPassword+`"}`), jsonHeader())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[LoginResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func bearer(token string) http.Header {
	return http.Header{
		"Content-Type":  {"application/json"},
		"Authorization": {"Bearer " + token},
	}
}

func TestAdminAuth(t *testing.T) {
	h, _ := newTestRouter(t)

	t.Run("no token", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/admin/", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/admin/", nil, bearer("not-a-jwt"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/admin/login", []byte(`{"password":"nope"}`), jsonHeader())
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("index", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/admin/", nil, bearer(login(t, h)))
		require.Equal(t, http.StatusOK, rec.Code)
		index := decode[admin.Index](t, rec)
		assert.Equal(t, admin.SiteHeader, index.Header)
		assert.Len(t, index.Entities, 11)
	})
}

func TestAdminCRUD(t *testing.T) {
	h, db := newTestRouter(t)
	auth := bearer(login(t, h))

	rec := doRequest(t, h, http.MethodPost, "/admin/services", []byte(`{"name":"Cloud Hosting","isActive":true}`), auth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Service](t, rec)
	assert.Equal(t, "cloud-hosting", created.Slug)
	id := created.ID.String()

	rec = doRequest(t, h, http.MethodGet, "/admin/services?q=cloud", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[admin.ListResult[models.Service]](t, rec)
	assert.EqualValues(t, 1, page.Total)

	rec = doRequest(t, h, http.MethodPatch, "/admin/services/"+id, []byte(`{"order":7}`), auth)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 7, decode[models.Service](t, rec).Order)

	rec = doRequest(t, h, http.MethodPatch, "/admin/services/"+id, []byte(`{"name":"Renamed"}`), auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, "/admin/services/"+id, nil, auth)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Service{}).Count(&count).Error)
	assert.Zero(t, count)

	t.Run("unknown entity", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/admin/widgets", nil, auth)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/admin/services/42", nil, auth)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing row", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodDelete, "/admin/services/"+id, nil, auth)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	h, _ := newTestRouter(t)

	t.Run("allowed preflight", func(t *testing.T) {
		header := http.Header{
			"Origin":                        {"https://kianvosoft.com"},
			"Access-Control-Request-Method": {"POST"},
		}
		rec := doRequest(t, h, http.MethodOptions, "/contact", nil, header)
		assert.Equal(t, "https://kianvosoft.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("blocked preflight", func(t *testing.T) {
		header := http.Header{
			"Origin":                        {"https://evil.example"},
			"Access-Control-Request-Method": {"POST"},
		}
		rec := doRequest(t, h, http.MethodOptions, "/contact", nil, header)
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), "CORS"))
	})
}
