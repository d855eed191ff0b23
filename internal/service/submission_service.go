package service

import (
	"context"
	"log"
	"strings"

	"github.com/omiglobal/submission-backend/internal/mail"
	"github.com/omiglobal/submission-backend/internal/model"
	"github.com/omiglobal/submission-backend/internal/queue"
	"github.com/omiglobal/submission-backend/internal/repository"
)

// SubmissionService orchestrates the intake pipeline: best-effort
// persist, render, background-dispatch, and delivery bookkeeping.
// Persistence and delivery fail independently; the only failure a
// caller ever sees is payload validation.
type SubmissionService struct {
	SubmissionRepo repository.SubmissionRepositoryInterface
	EmailRepo      repository.EmailRepositoryInterface
	Sender         mail.Sender
	Queue          queue.Queue
	FromEmail      string
	SenderName     string
}

// SubmitResult reports what actually happened for one intake.
type SubmitResult struct {
	SubmissionID *string
	DBSaved      bool
	EmailQueued  bool
	Payload      SubmissionPayload
}

// ValidationError marks a rejected intake.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "invalid or missing required field: " + e.Field
}

func validate(p SubmissionPayload) error {
	if strings.TrimSpace(p.ContactName) == "" {
		return &ValidationError{Field: "contact_name"}
	}
	if strings.TrimSpace(p.ContactPhone) == "" {
		return &ValidationError{Field: "contact_phone"}
	}
	if email := strings.TrimSpace(p.ContactEmail); email != "" && !strings.Contains(email, "@") {
		return &ValidationError{Field: "contact_email"}
	}
	return nil
}

// Submit runs the intake pipeline for one submission. The returned
// result never carries a persistence or delivery error; those are
// logged and reflected in the DBSaved/EmailQueued flags.
func (s *SubmissionService) Submit(ctx context.Context, p SubmissionPayload) (*SubmitResult, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	result := &SubmitResult{Payload: p}

	sub := p.toModel()
	if err := s.SubmissionRepo.Create(ctx, sub); err != nil {
		log.Println("submission save failed:", err)
	} else {
		result.SubmissionID = &sub.ID
		result.DBSaved = true
	}

	if strings.TrimSpace(p.ContactEmail) == "" {
		return result, nil
	}

	subject, bodyHTML, bodyPlain := RenderConfirmation(p)

	rec := &model.EmailRecord{
		SubmissionID: result.SubmissionID,
		FromEmail:    s.FromEmail,
		FromName:     s.SenderName,
		ToEmail:      p.ContactEmail,
		ToName:       p.ContactName,
		ReplyTo:      s.FromEmail,
		Subject:      subject,
		BodyHTML:     bodyHTML,
		BodyPlain:    bodyPlain,
		EmailType:    model.EmailTypeSubmissionConfirmation,
	}
	if err := s.EmailRepo.Create(ctx, rec); err != nil {
		log.Println("email record create failed:", err)
		rec.ID = "" // delivery proceeds without bookkeeping
	}

	job := queue.EmailJob{
		EmailID:   rec.ID,
		ToEmail:   p.ContactEmail,
		ToName:    p.ContactName,
		Subject:   subject,
		BodyHTML:  bodyHTML,
		BodyPlain: bodyPlain,
	}
	if err := s.Queue.Publish(queue.TopicEmailSends, job); err != nil {
		log.Println("email dispatch failed:", err)
		return result, nil
	}
	result.EmailQueued = true

	return result, nil
}

// DeliverEmail performs one delivery attempt and records exactly one
// terminal status for it. The returned error feeds the queue's retry
// policy and is never surfaced to the submitting caller.
func (s *SubmissionService) DeliverEmail(ctx context.Context, job queue.EmailJob) error {
	messageID, response, err := s.Sender.Send(job.ToEmail, job.ToName, job.Subject, job.BodyHTML, job.BodyPlain)
	if err != nil {
		log.Printf("email delivery to %s failed: %v", job.ToEmail, err)
		if job.EmailID != "" {
			if dbErr := s.EmailRepo.MarkFailed(ctx, job.EmailID, err.Error()); dbErr != nil {
				log.Println("email record update failed:", dbErr)
			}
		}
		return err
	}

	if job.EmailID != "" {
		if dbErr := s.EmailRepo.MarkSent(ctx, job.EmailID, messageID, response); dbErr != nil {
			log.Println("email record update failed:", dbErr)
		}
	}
	return nil
}

// GetSubmission fetches a submission by ID.
func (s *SubmissionService) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	return s.SubmissionRepo.GetByID(ctx, id)
}

// ListSubmissions fetches submissions with pagination.
func (s *SubmissionService) ListSubmissions(ctx context.Context, page, pageSize int, status string) ([]model.Submission, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	submissions, total, err := s.SubmissionRepo.List(ctx, offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}
	return submissions, pagination, nil
}

// UpdateStatus moves a submission through its review lifecycle.
func (s *SubmissionService) UpdateStatus(ctx context.Context, id, status, reviewedBy string) error {
	if !model.ValidStatus(status) {
		return &ValidationError{Field: "status"}
	}
	return s.SubmissionRepo.UpdateStatus(ctx, id, status, reviewedBy)
}

// DeleteSubmission removes a submission by ID.
func (s *SubmissionService) DeleteSubmission(ctx context.Context, id string) error {
	return s.SubmissionRepo.Delete(ctx, id)
}

// ListEmailRecords returns the email audit trail for a submission.
func (s *SubmissionService) ListEmailRecords(ctx context.Context, submissionID string) ([]model.EmailRecord, error) {
	return s.EmailRepo.ListBySubmission(ctx, submissionID)
}
