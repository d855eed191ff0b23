package model

import "time"

// EmailRecord delivery statuses. A record is created pending and moves
// to exactly one terminal status per attempt.
const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// EmailTypeSubmissionConfirmation tags the confirmation sent after a
// project submission.
const EmailTypeSubmissionConfirmation = "submission_confirmation"

// EmailRecord is an audit row capturing one transactional email and
// its send attempts. Records are never deleted by the pipeline.
type EmailRecord struct {
	ID           string     `db:"id" json:"id"`
	SubmissionID *string    `db:"submission_id" json:"submission_id,omitempty"`
	FromEmail    string     `db:"from_email" json:"from_email"`
	FromName     string     `db:"from_name" json:"from_name"`
	ToEmail      string     `db:"to_email" json:"to_email"`
	ToName       string     `db:"to_name" json:"to_name"`
	ReplyTo      string     `db:"reply_to" json:"reply_to"`
	Subject      string     `db:"subject" json:"subject"`
	BodyHTML     string     `db:"body_html" json:"body_html"`
	BodyPlain    string     `db:"body_plain" json:"body_plain"`
	EmailType    string     `db:"email_type" json:"email_type"`
	Status       string     `db:"status" json:"status"`
	MessageID    *string    `db:"message_id" json:"message_id,omitempty"`
	SMTPResponse *string    `db:"smtp_response" json:"smtp_response,omitempty"`
	ErrorMessage *string    `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int        `db:"retry_count" json:"retry_count"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	SentAt       *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	FailedAt     *time.Time `db:"failed_at" json:"failed_at,omitempty"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
