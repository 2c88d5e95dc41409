// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type ReceiptLine struct {
	Name   string
	Amount string
}

// Receipt is the rendered view of an issued bill.
type Receipt struct {
	BillId      string
	PlanName    string
	Lines       []ReceiptLine
	Subtotal    string
	Tax         string
	Total       string
	Currency    string
	PaymentLink string
}

type IEmailService interface {
	SendReceipt(toEmail string, receipt Receipt) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendReceipt(toEmail string, receipt Receipt) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your %s invoice", receipt.PlanName))
	m.SetBody("text/html", RenderReceipt(receipt))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send receipt to %s: %w", toEmail, err)
	}
	return nil
}

// RenderReceipt builds the HTML body of a receipt e-mail.
func RenderReceipt(r Receipt) string {
	var rows strings.Builder
	for _, line := range r.Lines {
		fmt.Fprintf(&rows, `<tr><td>%s</td><td style="text-align:right">%s %s</td></tr>`,
			html.EscapeString(line.Name), line.Amount, r.Currency)
	}

	payment := ""
	if r.PaymentLink != "" {
		payment = fmt.Sprintf(`<p><a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Pay now</a></p>`,
			html.EscapeString(r.PaymentLink))
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thank you for choosing %s</h2>
			<p>Invoice <strong>%s</strong></p>
			<table style="width: 100%%; border-collapse: collapse;">%s</table>
			<p>Subtotal: %s %s<br/>Tax: %s %s<br/><strong>Total: %s %s</strong></p>
			%s
		</div>
	`, html.EscapeString(r.PlanName), r.BillId, rows.String(),
		r.Subtotal, r.Currency, r.Tax, r.Currency, r.Total, r.Currency, payment)
}
