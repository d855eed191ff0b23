package model

import "time"

// Submission lifecycle statuses.
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the four lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Submission is one project-intake record from a prospective creator.
// Identity and contact fields are immutable after creation; only the
// review status changes afterwards.
type Submission struct {
	ID            string     `db:"id" json:"id"`
	ContactName   string     `db:"contact_name" json:"contact_name"`
	ContactEmail  string     `db:"contact_email" json:"contact_email"`
	ContactPhone  string     `db:"contact_phone" json:"contact_phone"`
	Title         string     `db:"title" json:"title"`
	Logline       string     `db:"logline" json:"logline"`
	Synopsis      string     `db:"synopsis" json:"synopsis"`
	Treatment     string     `db:"treatment" json:"treatment"`
	Moodboard     string     `db:"moodboard" json:"moodboard"`
	Soundtracks   string     `db:"soundtracks" json:"soundtracks"`
	WriterBio     string     `db:"writer_bio" json:"writer_bio"`
	Actor1        string     `db:"actor_1" json:"actor_1"`
	Actor2        string     `db:"actor_2" json:"actor_2"`
	Actor3        string     `db:"actor_3" json:"actor_3"`
	Actor4        string     `db:"actor_4" json:"actor_4"`
	Actor5        string     `db:"actor_5" json:"actor_5"`
	Actor6        string     `db:"actor_6" json:"actor_6"`
	Budget        *float64   `db:"budget" json:"budget,omitempty"`
	Languages     string     `db:"languages" json:"languages"`
	PreviousWorks string     `db:"previous_works" json:"previous_works"`
	TermsAccepted bool       `db:"terms_accepted" json:"terms_accepted"`
	Status        string     `db:"status" json:"status"`
	ReviewedBy    *string    `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
