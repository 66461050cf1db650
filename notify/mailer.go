// Package notify sends outbound OTP messages over email and SMS. Sends are
// fire-and-forget from the caller's perspective but errors are always
// returned so the handler can report a failed delivery.
package notify

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendOTPEmail delivers a password-reset code over SMTP.
func SendOTPEmail(to, otp string) error {
	host := os.Getenv("MAILER_HOST")
	port := os.Getenv("MAILER_PORT")
	user := os.Getenv("MAILER_USER")
	password := os.Getenv("MAILER_PASSWORD")
	sender := os.Getenv("MAILER_SENDER_NAME")

	if host == "" || port == "" || user == "" {
		return fmt.Errorf("mailer configuration missing")
	}

	msg := []byte(fmt.Sprintf(
		"From: %q <%s>\r\nTo: %s\r\nSubject: Password Reset OTP\r\n\r\nYour OTP for password reset is: %s\r\n",
		sender, user, to, otp,
	))

	auth := smtp.PlainAuth("", user, password, host)
	if err := smtp.SendMail(host+":"+port, auth, user, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}
