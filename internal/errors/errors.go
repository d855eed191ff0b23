package appErrors

import "fmt"

// ErrSubmissionNotFound is a sentinel error
type ErrSubmissionNotFound struct {
	SubmissionID string
}

func (e *ErrSubmissionNotFound) Error() string {
	return fmt.Sprintf("submission with ID %s not found", e.SubmissionID)
}

// Helper constructor
func NewSubmissionNotFound(id string) error {
	return &ErrSubmissionNotFound{SubmissionID: id}
}

// ErrEmailRecordNotFound is returned when a terminal-status update
// targets a record that does not exist.
type ErrEmailRecordNotFound struct {
	EmailID string
}

func (e *ErrEmailRecordNotFound) Error() string {
	return fmt.Sprintf("email record with ID %s not found", e.EmailID)
}

func NewEmailRecordNotFound(id string) error {
	return &ErrEmailRecordNotFound{EmailID: id}
}
