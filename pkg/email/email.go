package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// ReceiptLine is a single line item on an emailed receipt.
type ReceiptLine struct {
	Name      string
	Unit      string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

// ReceiptData carries a display-ready receipt into the email template.
// All amounts are pre-formatted strings so the template never does math.
type ReceiptData struct {
	StoreName          string
	StoreAddress       string
	StorePhone         string
	ReceiptNumber      string
	Date               string
	Customer           string
	PaymentMethod      string
	ConfirmationNumber string
	Lines              []ReceiptLine
	SubTotal           string
	TaxRate            string
	Tax                string
	CCFee              string // empty when no fee applies
	Total              string
}

// SendReceiptEmail sends a copy of a sale receipt to the customer
func (s *EmailService) SendReceiptEmail(toEmail string, data *ReceiptData) error {
	htmlContent, err := s.renderReceiptEmail(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your receipt %s from %s", data.ReceiptNumber, data.StoreName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderReceiptEmail renders the receipt email template
func (s *EmailService) renderReceiptEmail(data *ReceiptData) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// receiptTemplate is the HTML template for receipt emails
const receiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Receipt {{.ReceiptNumber}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <!-- Header -->
                    <tr>
                        <td style="background-color: #1a1a2e; padding: 32px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 26px; font-weight: 600;">{{.StoreName}}</h1>
                            {{if .StoreAddress}}<p style="color: #a0aec0; margin: 8px 0 0 0; font-size: 14px;">{{.StoreAddress}}</p>{{end}}
                            {{if .StorePhone}}<p style="color: #a0aec0; margin: 4px 0 0 0; font-size: 14px;">{{.StorePhone}}</p>{{end}}
                        </td>
                    </tr>

                    <!-- Receipt info -->
                    <tr>
                        <td style="padding: 30px 30px 10px 30px;">
                            <p style="color: #4a5568; font-size: 14px; margin: 0;">Receipt <strong>{{.ReceiptNumber}}</strong></p>
                            <p style="color: #4a5568; font-size: 14px; margin: 4px 0 0 0;">{{.Date}}</p>
                            {{if .Customer}}<p style="color: #4a5568; font-size: 14px; margin: 4px 0 0 0;">Customer: {{.Customer}}</p>{{end}}
                            <p style="color: #4a5568; font-size: 14px; margin: 4px 0 0 0;">Payment: {{.PaymentMethod}}{{if .ConfirmationNumber}} (Conf. {{.ConfirmationNumber}}){{end}}</p>
                        </td>
                    </tr>

                    <!-- Items -->
                    <tr>
                        <td style="padding: 10px 30px;">
                            <table role="presentation" style="width: 100%; border-collapse: collapse; font-size: 14px; color: #1a1a2e;">
                                <tr style="border-bottom: 2px solid #e2e8f0; text-align: left;">
                                    <th style="padding: 8px 0;">Item</th>
                                    <th style="padding: 8px 0; text-align: right;">Qty</th>
                                    <th style="padding: 8px 0; text-align: right;">Price</th>
                                    <th style="padding: 8px 0; text-align: right;">Amount</th>
                                </tr>
                                {{range .Lines}}
                                <tr style="border-bottom: 1px solid #edf2f7;">
                                    <td style="padding: 8px 0;">{{.Name}}{{if .Unit}} <span style="color: #718096;">({{.Unit}})</span>{{end}}</td>
                                    <td style="padding: 8px 0; text-align: right;">{{.Quantity}}</td>
                                    <td style="padding: 8px 0; text-align: right;">{{.UnitPrice}}</td>
                                    <td style="padding: 8px 0; text-align: right;">{{.Subtotal}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>

                    <!-- Totals -->
                    <tr>
                        <td style="padding: 10px 30px 30px 30px;">
                            <table role="presentation" style="width: 100%; border-collapse: collapse; font-size: 14px; color: #1a1a2e;">
                                <tr>
                                    <td style="padding: 4px 0;">Subtotal</td>
                                    <td style="padding: 4px 0; text-align: right;">{{.SubTotal}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 4px 0;">Tax ({{.TaxRate}}%)</td>
                                    <td style="padding: 4px 0; text-align: right;">{{.Tax}}</td>
                                </tr>
                                {{if .CCFee}}
                                <tr>
                                    <td style="padding: 4px 0;">Card Fee (3%)</td>
                                    <td style="padding: 4px 0; text-align: right;">{{.CCFee}}</td>
                                </tr>
                                {{end}}
                                <tr style="border-top: 2px solid #e2e8f0; font-weight: 600; font-size: 16px;">
                                    <td style="padding: 8px 0;">Total</td>
                                    <td style="padding: 8px 0; text-align: right;">{{.Total}}</td>
                                </tr>
                            </table>
                        </td>
                    </tr>

                    <!-- Footer -->
                    <tr>
                        <td style="background-color: #f8fafc; padding: 24px 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0;">
                                Thank you for shopping with {{.StoreName}}!
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
