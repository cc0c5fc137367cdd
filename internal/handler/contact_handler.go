package handler

import (
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/pkg/logger"
	"storefront-service/pkg/mailer"
)

var contactMailer *mailer.Client

// SetMailer wires the email relay used by the contact form
func SetMailer(client *mailer.Client) {
	contactMailer = client
}

// Contact validates the contact form and relays it as a templated email.
// Validation failures never reach the relay.
func Contact(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and message are required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email address"})
	}

	if contactMailer == nil {
		log.Warn("Contact form submitted but no mailer configured")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "contact form is unavailable"})
	}

	err := contactMailer.Send(map[string]string{
		"from_name":  req.Name,
		"from_email": req.Email,
		"message":    req.Message,
	})
	if err != nil {
		log.Error("Failed to relay contact email", zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to send message, please try again"})
	}

	log.Info("Contact message relayed", zap.String("from", req.Email))
	return c.JSON(http.StatusOK, echo.Map{"message": "Message sent successfully"})
}
