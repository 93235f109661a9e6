package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Message bodies for the three transactional mails the site sends.
// Layout mirrors the frontend branding (header color matches the
// primary_color site setting default).

const baseLayout = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background-color: #3b82f6; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">
    <h1>{{.SiteName}}</h1>
  </div>
  <div style="background-color: #f8f9fa; padding: 30px; border-radius: 0 0 8px 8px;">
    {{.Body}}
  </div>
  <div style="text-align: center; margin-top: 30px; color: #666; font-size: 14px;">
    <p>If you did not request this email, please ignore it.</p>
  </div>
</body>
</html>`

var layoutTmpl = template.Must(template.New("layout").Parse(baseLayout))

func renderLayout(siteName string, body template.HTML) string {
	var buf bytes.Buffer
	_ = layoutTmpl.Execute(&buf, struct {
		SiteName string
		Body     template.HTML
	}{SiteName: siteName, Body: body})
	return buf.String()
}

// VerificationEmail builds the subject and bodies for the email
// verification message. The link is valid for 24 hours.
func VerificationEmail(siteName, name, verifyURL string) (subject, html, text string) {
	subject = fmt.Sprintf("%s - Verify Your Email Address", siteName)

	body := template.HTML(fmt.Sprintf(`
    <h2>Hello %s!</h2>
    <p>Welcome to %s. Click the button below to verify your email address and activate your account.</p>
    <div style="text-align: center;">
      <a href="%s" style="display: inline-block; background-color: #3b82f6; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0;">Verify My Email</a>
    </div>
    <p>If the button does not work, copy this link into your browser:</p>
    <p style="word-break: break-all;">%s</p>
    <p><strong>Important:</strong> this link is valid for 24 hours.</p>`,
		template.HTMLEscapeString(name), template.HTMLEscapeString(siteName), verifyURL, verifyURL))

	html = renderLayout(siteName, body)
	text = fmt.Sprintf("Hello %s!\n\nWelcome to %s. Verify your email address:\n\n%s\n\nThis link is valid for 24 hours.\n", name, siteName, verifyURL)
	return subject, html, text
}

// PasswordResetEmail builds the message carrying the 6-digit reset code.
// The code expires after 15 minutes.
func PasswordResetEmail(siteName, name, code string) (subject, html, text string) {
	subject = fmt.Sprintf("%s - Password Reset Code", siteName)

	body := template.HTML(fmt.Sprintf(`
    <h2>Hello %s!</h2>
    <p>We received a request to reset your password. Enter this code to continue:</p>
    <div style="text-align: center;">
      <span style="display: inline-block; font-size: 32px; letter-spacing: 8px; background-color: #e9ecef; padding: 12px 24px; border-radius: 5px;">%s</span>
    </div>
    <p><strong>Important:</strong> this code expires in 15 minutes.</p>`,
		template.HTMLEscapeString(name), template.HTMLEscapeString(code)))

	html = renderLayout(siteName, body)
	text = fmt.Sprintf("Hello %s!\n\nYour password reset code is: %s\n\nThe code expires in 15 minutes.\n", name, code)
	return subject, html, text
}

// NewsletterEmail announces a newly published article to subscribers.
func NewsletterEmail(siteName, title, summary, articleURL string) (subject, html, text string) {
	subject = fmt.Sprintf("%s - New Article: %s", siteName, title)

	body := template.HTML(fmt.Sprintf(`
    <h2>%s</h2>
    <p>%s</p>
    <div style="text-align: center;">
      <a href="%s" style="display: inline-block; background-color: #3b82f6; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0;">Read the Article</a>
    </div>`,
		template.HTMLEscapeString(title), template.HTMLEscapeString(summary), articleURL))

	html = renderLayout(siteName, body)
	text = fmt.Sprintf("%s\n\n%s\n\nRead it here: %s\n", title, summary, articleURL)
	return subject, html, text
}

// TestEmail builds the message the admin SMTP check sends. Subject and
// message fall back to fixed defaults when the caller leaves them empty.
func TestEmail(siteName, subject, message string) (outSubject, html, text string) {
	if subject == "" {
		subject = fmt.Sprintf("%s - Test Email", siteName)
	}
	if message == "" {
		message = fmt.Sprintf("Hello,\n\nThis email was sent to verify that the %s SMTP settings are working correctly.", siteName)
	}

	body := template.HTML(fmt.Sprintf(`
    <h2>SMTP Check</h2>
    <p style="white-space: pre-line;">%s</p>`,
		template.HTMLEscapeString(message)))

	html = renderLayout(siteName, body)
	return subject, html, message
}
