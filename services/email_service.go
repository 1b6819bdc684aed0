package services

import (
	"fmt"
	"happycrafts_server/structs"
	"happycrafts_server/structs/tables"
	"html"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient *resend.Client
	clientOnce  = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.APIKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	if es.cfg.Email.APIKey == "" {
		// No API key configured (local development), skip sending
		es.logger.Debug("Email sending skipped, no API key configured", gecho.Field("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.FromAddress,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// NotifyNewReview emails the shop owner when a customer leaves a review
func (es *EmailService) NotifyNewReview(review *tables.Review) error {
	if es.cfg.Email.AdminAddress == "" {
		return nil
	}

	stars := ""
	for i := 1; i <= 5; i++ {
		if i <= review.Rating {
			stars += "★"
		} else {
			stars += "☆"
		}
	}

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #b5651d; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.review { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				.stars { color: #f5b301; font-size: 20px; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>New review on HappyCrafts</h1>
				</div>
				<div class="content">
					<div class="review">
						<p><strong>%s</strong> left a review:</p>
						<p class="stars">%s</p>
						<p>%s</p>
					</div>
				</div>
				<div class="footer">
					<p>HappyCrafts | Handmade with Love</p>
				</div>
			</div>
		</body>
		</html>
	`, html.EscapeString(review.AuthorName), stars, html.EscapeString(review.Comment))

	subject := fmt.Sprintf("New %d-star review from %s", review.Rating, review.AuthorName)

	return es.SendEmail([]string{es.cfg.Email.AdminAddress}, subject, emailBody)
}
