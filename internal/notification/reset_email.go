package notification

import (
	"strings"
	"text/template"
	"time"
)

// ResetEmailSubject is the subject line used for reset code deliveries.
const ResetEmailSubject = "Password Reset Code"

var resetEmailTemplate = template.Must(template.New("reset").Parse(`Hi {{.Name}},

Your password reset code is:

{{.Code}}

The code is valid for {{printf "%.0f" .Window.Minutes}} minutes and can be used once.

If you did not request a password reset, you can ignore this email.
`))

type resetEmailParams struct {
	Name   string
	Code   string
	Window time.Duration
}

// RenderPasswordResetOTP renders the reset email body for the given
// recipient name, code, and validity window.
func RenderPasswordResetOTP(name, code string, window time.Duration) (string, error) {
	var b strings.Builder
	err := resetEmailTemplate.Execute(&b, resetEmailParams{Name: name, Code: code, Window: window})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
