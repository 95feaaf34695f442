package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue when a notification
// should also reach the user by email.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
