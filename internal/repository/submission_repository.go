package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/omiglobal/submission-backend/internal/db"
	appErrors "github.com/omiglobal/submission-backend/internal/errors"
	"github.com/omiglobal/submission-backend/internal/model"
)

type SubmissionRepositoryInterface interface {
	Create(ctx context.Context, s *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	List(ctx context.Context, offset, limit int, status string) ([]model.Submission, int, error)
	UpdateStatus(ctx context.Context, id, status string, reviewedBy string) error
	Delete(ctx context.Context, id string) error
}

type SubmissionRepository struct {
	DB *db.Gateway
}

const submissionColumns = `id, contact_name, contact_email, contact_phone, title, logline, synopsis,
       treatment, moodboard, soundtracks, writer_bio,
       actor_1, actor_2, actor_3, actor_4, actor_5, actor_6,
       budget, languages, previous_works, terms_accepted,
       status, reviewed_by, reviewed_at, created_at, updated_at`

func submissionDest(s *model.Submission) []any {
	return []any{
		&s.ID, &s.ContactName, &s.ContactEmail, &s.ContactPhone, &s.Title, &s.Logline, &s.Synopsis,
		&s.Treatment, &s.Moodboard, &s.Soundtracks, &s.WriterBio,
		&s.Actor1, &s.Actor2, &s.Actor3, &s.Actor4, &s.Actor5, &s.Actor6,
		&s.Budget, &s.Languages, &s.PreviousWorks, &s.TermsAccepted,
		&s.Status, &s.ReviewedBy, &s.ReviewedAt, &s.CreatedAt, &s.UpdatedAt,
	}
}

// Create inserts a new submission and assigns its identity.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = model.StatusPending
	}
	s.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO project_submissions
        (id, contact_name, contact_email, contact_phone, title, logline, synopsis,
         treatment, moodboard, soundtracks, writer_bio,
         actor_1, actor_2, actor_3, actor_4, actor_5, actor_6,
         budget, languages, previous_works, terms_accepted, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
                $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
    `
	return r.DB.Execute(ctx, query,
		s.ID, s.ContactName, s.ContactEmail, s.ContactPhone, s.Title, s.Logline, s.Synopsis,
		s.Treatment, s.Moodboard, s.Soundtracks, s.WriterBio,
		s.Actor1, s.Actor2, s.Actor3, s.Actor4, s.Actor5, s.Actor6,
		s.Budget, s.Languages, s.PreviousWorks, s.TermsAccepted, s.Status, s.CreatedAt,
	)
}

// GetByID fetches a submission by its ID.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM project_submissions WHERE id=$1`
	var s model.Submission
	err := r.DB.FetchOne(ctx, query, []any{id}, submissionDest(&s)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewSubmissionNotFound(id)
		}
		return nil, err
	}
	return &s, nil
}

// List fetches submissions newest first, optionally filtered by status.
func (r *SubmissionRepository) List(ctx context.Context, offset, limit int, status string) ([]model.Submission, int, error) {
	submissions := []model.Submission{}
	query := `SELECT ` + submissionColumns + ` FROM project_submissions WHERE 1=1`
	args := []any{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	err := r.DB.FetchAll(ctx, query, args, func(rows *sql.Rows) error {
		var s model.Submission
		if err := rows.Scan(submissionDest(&s)...); err != nil {
			return err
		}
		submissions = append(submissions, s)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM project_submissions WHERE 1=1`
	countArgs := []any{}
	if status != "" {
		countQuery += " AND status=$1"
		countArgs = append(countArgs, status)
	}
	var total int
	if err := r.DB.FetchOne(ctx, countQuery, countArgs, &total); err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

// UpdateStatus is the only mutation allowed on an existing submission.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id, status string, reviewedBy string) error {
	query := `
        UPDATE project_submissions
        SET status=$1, reviewed_by=$2, reviewed_at=NOW(), updated_at=NOW()
        WHERE id=$3
        RETURNING id
    `
	var updatedID string
	err := r.DB.FetchOne(ctx, query, []any{status, reviewedBy, id}, &updatedID)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NewSubmissionNotFound(id)
	}
	return err
}

// Delete removes a submission by ID. Email audit rows survive with
// their submission reference cleared.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	var deletedID string
	err := r.DB.FetchOne(ctx, `DELETE FROM project_submissions WHERE id=$1 RETURNING id`, []any{id}, &deletedID)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NewSubmissionNotFound(id)
	}
	return err
}

var _ SubmissionRepositoryInterface = (*SubmissionRepository)(nil)
