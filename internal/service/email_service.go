package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"wordarena/internal/models"
)

// EmailService sends report emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service. If fromEmail is empty the
// service is disabled and all sends become no-ops.
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendDailySummaryEmail mails the day's play statistics to the admin address
func (s *EmailService) SendDailySummaryEmail(ctx context.Context, toEmail string, summary *models.DailySummary) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): daily summary to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("WordArena daily summary for %s", summary.Date)
	textBody := fmt.Sprintf(`WordArena daily summary for %s

Players today:    %d
Sessions won:     %d

---
This is an automated email from WordArena. Please do not reply.
`, summary.Date, summary.UsersPlayed, summary.CorrectGuesses)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body>
	<h2>WordArena daily summary for %s</h2>
	<table>
		<tr><td>Players today</td><td><strong>%d</strong></td></tr>
		<tr><td>Sessions won</td><td><strong>%d</strong></td></tr>
	</table>
	<p style="font-size: 12px; color: #666;">This is an automated email from WordArena. Please do not reply.</p>
</body>
</html>
`, summary.Date, summary.UsersPlayed, summary.CorrectGuesses)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends a single email through SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
