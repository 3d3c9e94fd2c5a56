// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEnrollmentConfirmation(toEmail, studentName, courseTitle string, amount float64, awaitingPayment bool) error
	SendPaymentReceipt(toEmail, courseTitle, reference string, amount float64) error
	SendAccessUpdate(toEmail, courseTitle, status string) error
	SendEnrollmentAlert(toEmail, courseTitle, studentName, status string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string // Added to construct links
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	// Get Frontend URL from ENV or default to a safe placeholder
	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendEnrollmentConfirmation(toEmail, studentName, courseTitle string, amount float64, awaitingPayment bool) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Enrolled: %s", courseTitle))

	var body string
	if awaitingPayment {
		body = fmt.Sprintf(`
			<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
				<h2>Hi %s,</h2>
				<p>Your enrollment in <b>%s</b> is reserved.</p>
				<p>Amount due: <b>&#8377;%.2f</b></p>
				<p>Complete the UPI payment and submit your transaction reference to unlock the course.</p>
				<a href="%s/my-courses" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Complete Payment</a>
			</div>
		`, studentName, courseTitle, amount, s.frontendURL)
	} else {
		body = fmt.Sprintf(`
			<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
				<h2>Hi %s,</h2>
				<p>You're enrolled in <b>%s</b>. Happy learning!</p>
				<a href="%s/my-courses" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Start Learning</a>
			</div>
		`, studentName, courseTitle, s.frontendURL)
	}

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send enrollment confirmation to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Enrollment confirmation sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendPaymentReceipt(toEmail, courseTitle, reference string, amount float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Payment received for %s", courseTitle))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment Received</h2>
			<p>Your payment for <b>%s</b> has been recorded.</p>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px 4px 0;">Amount</td><td><b>&#8377;%.2f</b></td></tr>
				<tr><td style="padding: 4px 12px 4px 0;">Reference</td><td>%s</td></tr>
			</table>
			<p>The course is now unlocked in your account.</p>
			<a href="%s/my-courses" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Go to Course</a>
		</div>
	`, courseTitle, amount, reference, s.frontendURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send payment receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Payment receipt sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendAccessUpdate(toEmail, courseTitle, status string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Access update for %s", courseTitle))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Course Access Update</h2>
			<p>Your access to <b>%s</b> is now: <b>%s</b>.</p>
			<p>If you have questions, reply to this email and our team will help.</p>
		</div>
	`, courseTitle, status)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send access update to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Access update sent to %s\n", toEmail)
	return nil
}

// SendEnrollmentAlert is the course-owner copy of an access change.
func (s *emailService) SendEnrollmentAlert(toEmail, courseTitle, studentName, status string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Enrollment update for %s", courseTitle))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Enrollment Update</h2>
			<p>Access for <b>%s</b> in your course <b>%s</b> is now: <b>%s</b>.</p>
		</div>
	`, studentName, courseTitle, status)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send enrollment alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Enrollment alert sent to %s\n", toEmail)
	return nil
}
