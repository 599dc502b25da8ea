package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	pageHandler    pageHandler
	contactHandler contactHandler
	adminHandler   adminHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"project not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"slug"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// NewsletterResponse is the payload of the newsletter signup endpoint
type NewsletterResponse struct {
	Success bool   `json:"success"`
	Created bool   `json:"created"`
	Message string `json:"message"`
}

// InquiryCreatedResponse is returned to JSON clients after a contact submission
type InquiryCreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// LoginRequest is the admin login payload
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries a bearer token for the admin routes
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
