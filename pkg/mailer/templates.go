package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var templates = map[string]struct {
	subject string
	html    string
}{
	TemplateWelcome: {
		subject: "Welcome to Phishy",
		html: `<p>Hi {{.Username}},</p>
<p>Your Phishy account is ready. Log in to start the phishing-awareness game and
build your personal learning path.</p>`,
	},
	TemplateAccountNotice: {
		subject: "Your account status changed",
		html: `<p>Hi {{.Username}},</p>
<p>An administrator set your account status to <b>{{.Status}}</b>.
If you think this is a mistake, contact your course administrator.</p>`,
	},
}

// Render returns subject and HTML body for a named template.
func Render(name string, data map[string]any) (string, string, error) {
	t, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	tpl, err := template.New(name).Parse(t.html)
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return t.subject, buf.String(), nil
}
