package api

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/kianvosoft/site-backend/errs"
	"github.com/kianvosoft/site-backend/models"
	"github.com/kianvosoft/site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	msgInquiryReceived   = "Thank you for your message! We will get back to you soon."
	msgInquiryIncomplete = "Please fill in all required fields."
	msgInvalidEmail      = "Please provide a valid email address."

	// maxFormBytes bounds contact and newsletter bodies
	maxFormBytes = 1 << 20
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	site      *services.Site
}

func newContactHandler(site *services.Site) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		site:      site,
	}
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any, payloadType string) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	return nil
}

// getContact returns the services offered on the contact form
// @Summary Contact page
// @Tags Contact
// @Produce json
// @Success 200 {object} services.ContactPage
// @Router /contact [get]
func (h contactHandler) getContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.site.ContactPage(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// submitInquiry stores a contact form submission
// @Summary Submit contact inquiry
// @Description Accepts an urlencoded form or a JSON body. Form posts are redirected back to the contact page.
// @Tags Contact
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 201 {object} InquiryCreatedResponse
// @Success 303 "Redirect to /contact?submitted=true"
// @Failure 400 {object} services.ContactPage "Missing required field"
// @Router /contact [post]
func (h contactHandler) submitInquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonRequest := isJSONRequest(r)

		var input services.InquiryInput
		if jsonRequest {
			if err := decodeJSONBody(w, r, &input, "contact inquiry"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		} else {
			r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
			if err := r.ParseForm(); err != nil {
				h.responder.WriteError(w, errs.NewMalformedPayloadError("contact form", err))
				return
			}
			input = services.InquiryInput{
				Name:        r.PostForm.Get("name"),
				Email:       r.PostForm.Get("email"),
				Phone:       r.PostForm.Get("phone"),
				ServiceType: models.InquiryServiceType(r.PostForm.Get("service")),
				Subject:     r.PostForm.Get("subject"),
				Message:     r.PostForm.Get("message"),
			}
		}

		id, err := h.site.SubmitInquiry(r.Context(), input)
		if err != nil {
			if errs.IsValidationError(err) {
				h.writeInvalidInquiry(w, r, err)
				return
			}
			h.responder.WriteError(w, err)
			return
		}

		if !jsonRequest {
			http.Redirect(w, r, "/contact?submitted=true", http.StatusSeeOther)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, InquiryCreatedResponse{
			ID:      id.String(),
			Message: msgInquiryReceived,
		})
	}
}

// writeInvalidInquiry answers a rejected submission with the contact page
// payload so the form can be shown again.
func (h contactHandler) writeInvalidInquiry(w http.ResponseWriter, r *http.Request, cause error) {
	page, err := h.site.ContactPage(r.Context())
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	page.Error = msgInquiryIncomplete
	if !errs.IsMissingRequiredFieldError(cause) {
		page.Error = cause.Error()
	}
	h.responder.WriteJSONStatus(w, http.StatusBadRequest, page)
}

// subscribeNewsletter adds an address to the newsletter list
// @Summary Newsletter signup
// @Tags Contact
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} NewsletterResponse
// @Failure 400 {object} NewsletterResponse
// @Router /newsletter/subscribe [post]
func (h contactHandler) subscribeNewsletter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var email string
		if isJSONRequest(r) {
			var body struct {
				Email string `json:"email"`
			}
			if err := decodeJSONBody(w, r, &body, "newsletter signup"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			email = body.Email
		} else {
			r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
			if err := r.ParseForm(); err != nil {
				h.responder.WriteError(w, errs.NewMalformedPayloadError("newsletter form", err))
				return
			}
			email = r.PostForm.Get("email")
		}

		result, err := h.site.SubscribeNewsletter(r.Context(), email)
		if err != nil {
			if errs.IsValidationError(err) {
				h.responder.WriteJSONStatus(w, http.StatusBadRequest, NewsletterResponse{
					Success: false,
					Message: msgInvalidEmail,
				})
				return
			}
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, NewsletterResponse{
			Success: result.Created,
			Created: result.Created,
			Message: result.Message,
		})
	}
}
