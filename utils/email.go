package utils

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"
	"github.com/rs/zerolog/log"
)

// EmailService handles sending emails using Postmark. When no API token is
// configured the service is disabled and sends become no-ops, so the
// storefront runs without email config.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance.
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		log.Info().Msg("POSTMARK_API_TOKEN not set, email disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation email to the user.
// The order status stays "Pending": the UPI transaction id is an unverified
// claim and the mail must not suggest the payment was confirmed.
func (es *EmailService) SendOrderConfirmationEmail(toEmail, orderID string, totalAmount float64) error {
	subject := "Order Received"
	htmlContent := fmt.Sprintf(
		"<strong>Thank you for your order!</strong><br><br>Order ID: %s<br>Total Amount: ₹%.2f<br><br>Your order has been recorded with the UPI transaction reference you provided and is pending.",
		orderID,
		totalAmount,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
