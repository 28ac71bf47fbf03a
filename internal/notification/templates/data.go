package templates

// VerifyEmailData holds variables for the user.verify_email scenario: a
// signed verification link the recipient clicks to activate their account.
type VerifyEmailData struct {
	Name      string
	VerifyURL string
	AppName   string
}

// VerifyEmail is the typed handle for the user.verify_email template.
var VerifyEmail = Expect[VerifyEmailData]("user.verify_email")

// PasswordResetData holds variables for the user.password_reset scenario.
type PasswordResetData struct {
	Name     string
	ResetURL string
	AppName  string
}

// PasswordReset is the typed handle for the user.password_reset template.
var PasswordReset = Expect[PasswordResetData]("user.password_reset")
