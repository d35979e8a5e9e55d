package mailer

// Template names understood by the email worker.
const (
	TemplateWelcome       = "welcome"
	TemplateAccountNotice = "account_notice"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Subject/Text/HTML are used verbatim when Template is empty; otherwise the
// worker renders the named template with Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
