package usecase

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/shandysiswandi/goproof/internal/passcode/entity"
)

// emailCopy is the subject and plaintext body for one purpose. Bodies stay
// plain text; the only dynamic parts are the code and its lifetime.
type emailCopy struct {
	subject string
	body    string
}

var emailCopies = map[entity.Purpose]emailCopy{
	entity.PurposeSignupVerification: {
		subject: "Verify your email address",
		body: "Hi,\n\n" +
			"Your verification code is {{.code}}. Enter it to confirm your email address.\n\n" +
			"The code expires in {{.ttl_minutes}} minutes. If you did not sign up, you can ignore this email.\n",
	},
	entity.PurposeEmailChange: {
		subject: "Confirm your new email address",
		body: "Hi,\n\n" +
			"Your confirmation code is {{.code}}. Enter it to confirm your new email address.\n\n" +
			"The code expires in {{.ttl_minutes}} minutes. If you did not request this change, you can ignore this email.\n",
	},
	entity.PurposePasswordReset: {
		subject: "Your password reset code",
		body: "Hi,\n\n" +
			"Your password reset code is {{.code}}. Enter it to continue resetting your password.\n\n" +
			"The code expires in {{.ttl_minutes}} minutes. If you did not request a reset, you can ignore this email.\n",
	},
}

func renderEmail(p entity.Purpose, code string, ttl time.Duration) (string, string, error) {
	c, ok := emailCopies[p]
	if !ok {
		return "", "", fmt.Errorf("no email copy for purpose %q", p.String())
	}

	t, err := template.New(p.String()).Option("missingkey=zero").Parse(c.body)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, map[string]any{
		"code":        code,
		"ttl_minutes": int(ttl.Minutes()),
	}); err != nil {
		return "", "", err
	}

	return c.subject, buf.String(), nil
}
