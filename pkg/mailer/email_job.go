package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either the literal Subject/Text/HTML are used, or Template names an embedded
// template rendered with Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome" or "profile_updated"
	Data     map[string]any `json:"data,omitempty"`
}
