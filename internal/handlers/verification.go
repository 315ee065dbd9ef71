// internal/handlers/verification.go
package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agriloop/agriloop-backend/internal/apperrors"
	"github.com/agriloop/agriloop-backend/internal/config"
	"github.com/agriloop/agriloop-backend/internal/services"
)

// VerificationHandler serves the email-confirmation landing pages. These are
// opened from a mail client, so the responses are small HTML documents rather
// than the JSON envelope used everywhere else.
type VerificationHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewVerificationHandler(authService *services.AuthService, cfg *config.Config) *VerificationHandler {
	return &VerificationHandler{
		authService: authService,
		cfg:         cfg,
	}
}

var verificationPage = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>{{.Title}}</title>
</head>
<body>
	<h1>{{.Heading}}</h1>
	<p>{{.Message}}</p>
	{{if .LoginURL}}<p><a href="{{.LoginURL}}">Continue to Login</a></p>{{end}}
</body>
</html>`))

type verificationPageData struct {
	Title    string
	Heading  string
	Message  string
	LoginURL string
}

// GET /api/verify-email?token=...
func (h *VerificationHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.renderPage(c, http.StatusBadRequest, verificationPageData{
			Title:   "Email Verification",
			Heading: "Verification Failed",
			Message: "Verification token is missing. Please check your email for the correct verification link.",
		})
		return
	}

	err := h.authService.VerifyEmail(token)
	switch {
	case err == nil:
		h.renderPage(c, http.StatusOK, verificationPageData{
			Title:    "Email Verification Successful",
			Heading:  "Your email has been verified",
			Message:  "Great! Your email address has been verified. You can now log in to your account.",
			LoginURL: h.cfg.Frontend.BaseURL + "/login",
		})
	case errors.Is(err, apperrors.ErrNotFound):
		h.renderPage(c, http.StatusNotFound, verificationPageData{
			Title:   "Email Verification",
			Heading: "User Not Found",
			Message: "The user associated with this verification token could not be found.",
		})
	case errors.Is(err, apperrors.ErrValidation):
		h.renderPage(c, http.StatusBadRequest, verificationPageData{
			Title:   "Email Verification",
			Heading: "Verification Failed",
			Message: "Invalid or expired token. Please request a new verification email.",
		})
	default:
		h.renderPage(c, http.StatusInternalServerError, verificationPageData{
			Title:   "Email Verification",
			Heading: "Verification Failed",
			Message: "Something went wrong on our side. Please try again later.",
		})
	}
}

func (h *VerificationHandler) renderPage(c *gin.Context, status int, data verificationPageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	verificationPage.Execute(c.Writer, data)
}
