package email

import (
	"fmt"
	"time"
)

// PasswordResetEmailData contains the data needed for the password reset OTP email.
type PasswordResetEmailData struct {
	Name       string
	Email      string
	OTP        string
	TTLMinutes int
	ClinicName string
}

// BuildPasswordResetEmail creates the one-time-password email sent during the
// forgot-password flow.
func BuildPasswordResetEmail(data PasswordResetEmailData) Message {
	clinicName := data.ClinicName
	if clinicName == "" {
		clinicName = DefaultConfig().ClinicName
	}

	name := data.Name
	if name == "" {
		name = "there"
	}

	ttl := data.TTLMinutes
	if ttl <= 0 {
		ttl = 10
	}

	subject := fmt.Sprintf("Your Password Reset OTP (Valid for %d Minutes)", ttl)

	textBody := fmt.Sprintf(`Hello %s,

We received a request to reset the password for your %s account.

Your one-time password (OTP): %s

This OTP is valid for the next %d minutes.

If you did not request a password reset, please secure your account
immediately or ignore this email.

%s`,
		name, clinicName, data.OTP, ttl, clinicName)

	const (
		brandPrimary   = "#27a4db"
		brandSecondary = "#81be41"
	)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto;">
    <div style="background-color: %s; color: white; padding: 20px 30px; text-align: center;">
        <h1 style="margin: 0; font-size: 24px;">Password Reset Request</h1>
        <p style="margin: 5px 0 0; font-size: 14px;">%s</p>
    </div>
    <div style="padding: 30px; background-color: #ffffff;">
        <p style="font-size: 16px;">Hello %s,</p>
        <p style="font-size: 16px;">We received a request to reset the password for your %s account. Please use the following one-time password (OTP) to proceed.</p>
        <p style="text-align: center; margin: 30px 0;">
            <span style="display: inline-block; background-color: #f7f7f7; color: %s; font-size: 36px; font-weight: bold; padding: 20px 40px; border-radius: 8px; border: 3px solid %s; letter-spacing: 3px;">%s</span>
        </p>
        <p style="font-size: 14px; color: #555; text-align: center;">This OTP is valid for the next %d minutes.</p>
        <p style="font-size: 14px; color: #555;">If you did not request a password reset, please secure your account immediately or ignore this email.</p>
    </div>
    <div style="background-color: #f7f7f7; color: #888; padding: 15px 30px; text-align: center; font-size: 12px; border-top: 1px solid #e0e0e0;">
        <p style="margin: 0;">This is an automated message. Please do not reply.</p>
        <p style="margin: 5px 0 0;">&copy; %d %s. All rights reserved.</p>
    </div>
</body>
</html>`,
		brandPrimary, clinicName, name, clinicName, brandPrimary, brandSecondary, data.OTP, ttl, time.Now().Year(), clinicName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
