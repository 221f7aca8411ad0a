package utils

import (
	"fmt"
	"log"
	"protrack/config"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email to the given recipients. The body is
// wrapped in the ProTrack template. Backend selection follows
// EMAIL_BACKEND: "sendgrid" in production, "console" everywhere else.
func SendEmail(to []string, subject string, body string) error {
	html := getEmailTemplate(subject, "<p>"+body+"</p>")

	if config.AppConfig.EmailBackend != "sendgrid" {
		log.Printf("[EMAIL console] To: %s | Subject: %s | %s", strings.Join(to, ","), subject, body)
		return nil
	}

	from := mail.NewEmail("ProTrack", config.AppConfig.EmailSender)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)

	for _, recipient := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipient), body, html)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email to %s: %v", recipient, err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("SendGrid rejected email to %s: %d %s", recipient, resp.StatusCode, resp.Body)
			return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
		}
	}
	return nil
}

// getEmailTemplate wraps body content in the ProTrack house style
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #667eea; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #333333; line-height: 1.6; }
			.content h2 { color: #333333; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #667eea; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>PROTRACK</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 ProTrack. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
