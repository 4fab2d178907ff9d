package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"roomly/config"

	"github.com/go-resty/resty/v2"
)

// Generic Send Email. Uses the HTTP mail provider when one is configured,
// otherwise plain SMTP.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.EmailApiURL != "" {
		return sendViaApi(to, subject, htmlBody)
	}
	return sendViaSmtp(to, subject, htmlBody)
}

func sendViaSmtp(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Roomly <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

func sendViaApi(to []string, subject string, htmlBody string) error {
	client := resty.New()

	resp, err := client.R().
		SetAuthToken(config.AppConfig.EmailApiKey).
		SetBody(map[string]interface{}{
			"from":    config.AppConfig.EmailSender,
			"to":      to,
			"subject": subject,
			"html":    htmlBody,
		}).
		Post(config.AppConfig.EmailApiURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// HTML Wrapper shared by all outbound mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
			.header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
			.header h1 { margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
			.otp-code { background-color: #4F46E5; color: white; font-size: 32px; font-weight: bold; text-align: center; padding: 20px; margin: 20px 0; border-radius: 8px; letter-spacing: 5px; }
			.footer { text-align: center; font-size: 12px; color: #666666; padding-top: 20px; }
		</style>
	</head>
	<body>
		<div class="header">
			<h1>ROOMLY</h1>
		</div>
		<div class="content">
			<h2>%s</h2>
			%s
		</div>
		<div class="footer">
			&copy; 2026 Roomly. All rights reserved.
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendOTPEmail delivers a verification code for the given flow
// ("registration" or "login").
func SendOTPEmail(email, code, purpose string) error {
	subject := "Email Verification OTP"
	title := "Verify your email"
	intro := "Use the code below to complete your registration."
	if purpose == "login" {
		subject = "Login Verification OTP"
		title = "Confirm your login"
		intro = "Use the code below to complete your login."
	}

	body := fmt.Sprintf(`
		<p>%s</p>
		<div class="otp-code">%s</div>
		<p>This code expires in 10 minutes. If you did not request it, you can safely ignore this email.</p>
	`, intro, code)

	return SendEmail([]string{email}, subject, getEmailTemplate(title, body))
}
