package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/omiglobal/submission-backend/internal/db"
	appErrors "github.com/omiglobal/submission-backend/internal/errors"
	"github.com/omiglobal/submission-backend/internal/model"
)

type EmailRepositoryInterface interface {
	Create(ctx context.Context, rec *model.EmailRecord) error
	GetByID(ctx context.Context, id string) (*model.EmailRecord, error)
	MarkSent(ctx context.Context, id, messageID, smtpResponse string) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
	ListBySubmission(ctx context.Context, submissionID string) ([]model.EmailRecord, error)
}

type EmailRepository struct {
	DB *db.Gateway
}

const emailColumns = `id, submission_id, from_email, from_name, to_email, to_name, reply_to,
       subject, body_html, body_plain, email_type, status,
       message_id, smtp_response, error_message, retry_count,
       created_at, sent_at, failed_at, updated_at`

func emailDest(e *model.EmailRecord) []any {
	return []any{
		&e.ID, &e.SubmissionID, &e.FromEmail, &e.FromName, &e.ToEmail, &e.ToName, &e.ReplyTo,
		&e.Subject, &e.BodyHTML, &e.BodyPlain, &e.EmailType, &e.Status,
		&e.MessageID, &e.SMTPResponse, &e.ErrorMessage, &e.RetryCount,
		&e.CreatedAt, &e.SentAt, &e.FailedAt, &e.UpdatedAt,
	}
}

// Create inserts a new email record in pending status before any
// network attempt is made.
func (r *EmailRepository) Create(ctx context.Context, rec *model.EmailRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.Status = model.EmailStatusPending
	rec.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO emails_sent
        (id, submission_id, from_email, from_name, to_email, to_name, reply_to,
         subject, body_html, body_plain, email_type, status, retry_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `
	return r.DB.Execute(ctx, query,
		rec.ID, rec.SubmissionID, rec.FromEmail, rec.FromName, rec.ToEmail, rec.ToName, rec.ReplyTo,
		rec.Subject, rec.BodyHTML, rec.BodyPlain, rec.EmailType, rec.Status, rec.RetryCount, rec.CreatedAt,
	)
}

// GetByID fetches an email record by its ID.
func (r *EmailRepository) GetByID(ctx context.Context, id string) (*model.EmailRecord, error) {
	query := `SELECT ` + emailColumns + ` FROM emails_sent WHERE id=$1`
	var e model.EmailRecord
	err := r.DB.FetchOne(ctx, query, []any{id}, emailDest(&e)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewEmailRecordNotFound(id)
		}
		return nil, err
	}
	return &e, nil
}

// MarkSent records a successful delivery attempt.
func (r *EmailRepository) MarkSent(ctx context.Context, id, messageID, smtpResponse string) error {
	query := `
        UPDATE emails_sent
        SET status=$1, message_id=$2, smtp_response=$3, sent_at=NOW(), updated_at=NOW()
        WHERE id=$4
        RETURNING id
    `
	var updatedID string
	err := r.DB.FetchOne(ctx, query, []any{model.EmailStatusSent, messageID, smtpResponse, id}, &updatedID)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NewEmailRecordNotFound(id)
	}
	return err
}

// MarkFailed records a failed delivery attempt. The retry counter
// increments only here, never on a successful send.
func (r *EmailRepository) MarkFailed(ctx context.Context, id, errorMessage string) error {
	query := `
        UPDATE emails_sent
        SET status=$1, error_message=$2, failed_at=NOW(), retry_count=retry_count+1, updated_at=NOW()
        WHERE id=$3
        RETURNING id
    `
	var updatedID string
	err := r.DB.FetchOne(ctx, query, []any{model.EmailStatusFailed, errorMessage, id}, &updatedID)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NewEmailRecordNotFound(id)
	}
	return err
}

// ListBySubmission returns the audit trail of every send attempt for
// one submission, oldest first.
func (r *EmailRepository) ListBySubmission(ctx context.Context, submissionID string) ([]model.EmailRecord, error) {
	records := []model.EmailRecord{}
	query := `SELECT ` + emailColumns + ` FROM emails_sent WHERE submission_id=$1 ORDER BY created_at ASC`
	err := r.DB.FetchAll(ctx, query, []any{submissionID}, func(rows *sql.Rows) error {
		var e model.EmailRecord
		if err := rows.Scan(emailDest(&e)...); err != nil {
			return err
		}
		records = append(records, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

var _ EmailRepositoryInterface = (*EmailRepository)(nil)
