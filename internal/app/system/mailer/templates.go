// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// InquiryEmailData holds data for contact-inquiry notification emails.
type InquiryEmailData struct {
	SiteName string
	Name     string
	Email    string
	Phone    string
	Reason   string
	Message  string
}

// BuildInquiryEmail creates the admin notification for a new contact
// inquiry, with both HTML and text bodies.
func BuildInquiryEmail(data InquiryEmailData) Email {
	return Email{
		To:       nil, // Set by caller
		Subject:  fmt.Sprintf("%s contact inquiry (%s) from %s", data.SiteName, data.Reason, data.Name),
		TextBody: buildInquiryText(data),
		HTMLBody: buildInquiryHTML(data),
	}
}

func buildInquiryText(data InquiryEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("New contact inquiry on %s\n\n", data.SiteName))
	buf.WriteString(fmt.Sprintf("Name:   %s\n", data.Name))
	buf.WriteString(fmt.Sprintf("Email:  %s\n", data.Email))
	if data.Phone != "" {
		buf.WriteString(fmt.Sprintf("Phone:  %s\n", data.Phone))
	}
	buf.WriteString(fmt.Sprintf("Reason: %s\n\n", data.Reason))
	buf.WriteString(data.Message + "\n")
	return buf.String()
}

func buildInquiryHTML(data InquiryEmailData) string {
	tmpl := template.Must(template.New("inquiry").Parse(inquiryHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const inquiryHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>New Contact Inquiry</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 520px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 24px 32px; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 20px; font-weight: 600; color: #065f46;">{{.SiteName}}</h1>
              <p style="margin: 8px 0 0; font-size: 14px; color: #6b7280;">New contact inquiry</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              <table role="presentation" width="100%" cellspacing="0" cellpadding="4" style="font-size: 14px; color: #374151;">
                <tr><td style="color: #6b7280; width: 80px;">Name</td><td>{{.Name}}</td></tr>
                <tr><td style="color: #6b7280;">Email</td><td>{{.Email}}</td></tr>
                {{if .Phone}}<tr><td style="color: #6b7280;">Phone</td><td>{{.Phone}}</td></tr>{{end}}
                <tr><td style="color: #6b7280;">Reason</td><td>{{.Reason}}</td></tr>
              </table>
              <p style="margin: 16px 0 0; font-size: 14px; color: #374151; line-height: 1.5;">{{.Message}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
