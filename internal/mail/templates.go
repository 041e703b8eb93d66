package mail

import "fmt"

// BuildVerificationEmail is sent after registration with the confirmation link.
func BuildVerificationEmail(to, name, confirmationURL string) Message {
	return Message{
		To:      []string{to},
		Subject: "Confirm Your Account",
		Text: fmt.Sprintf(
			"Hey %s, Please confirm your account by clicking on the link given below.\n\n%s",
			name, confirmationURL),
	}
}

// BuildResetRequestEmail is sent when a password reset is requested.
func BuildResetRequestEmail(to, name, resetURL string, expiryMinutes int) Message {
	return Message{
		To:      []string{to},
		Subject: "Account Password Reset Requested",
		Text: fmt.Sprintf(
			"Hey %s, Please reset your account password by clicking on the link below.\n\nLink will expire within %d Minutes.\n\n%s",
			name, expiryMinutes, resetURL),
	}
}

// BuildResetConfirmationEmail is sent after a successful password reset.
func BuildResetConfirmationEmail(to, name string) Message {
	return Message{
		To:      []string{to},
		Subject: "Account Password Reset",
		Text:    fmt.Sprintf("Hey %s, Your account password has been reset successfully.", name),
	}
}

// BuildChangeConfirmationEmail is sent after a password change.
func BuildChangeConfirmationEmail(to, name string) Message {
	return Message{
		To:      []string{to},
		Subject: "Password Changed",
		Text:    fmt.Sprintf("Hey %s, Your account password has been changed successfully.", name),
	}
}
