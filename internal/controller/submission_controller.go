package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/omiglobal/submission-backend/internal/db"
	appErrors "github.com/omiglobal/submission-backend/internal/errors"
	"github.com/omiglobal/submission-backend/internal/service"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
	DB                *db.Gateway
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("failed to encode response:", err)
	}
}

// SubmitProject handles the intake form. Validation is the only
// failure a caller sees; persistence and delivery problems surface
// as flags in a 200 response.
func (c *SubmissionController) SubmitProject(w http.ResponseWriter, r *http.Request) {
	var payload service.SubmissionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	result, err := c.SubmissionService.Submit(r.Context(), payload)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": vErr.Error(),
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "internal error",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "Project submitted successfully",
		"submission_id": result.SubmissionID,
		"db_saved":      result.DBSaved,
		"email_queued":  result.EmailQueued,
		"data": map[string]any{
			"title":   payload.Title,
			"logline": payload.Logline,
			"actors":  payload.Actors(),
			"budget":  payload.Budget,
		},
	})
}

// GetSubmission returns a single submission by ID.
func (c *SubmissionController) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sub, err := c.SubmissionService.GetSubmission(r.Context(), id)
	if err != nil {
		var nf *appErrors.ErrSubmissionNotFound
		if errors.As(err, &nf) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch submission: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// ListSubmissions returns a paginated list of submissions.
func (c *SubmissionController) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	submissions, pagination, err := c.SubmissionService.ListSubmissions(r.Context(), page, pageSize, status)
	if err != nil {
		http.Error(w, "failed to fetch submissions: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       submissions,
		"pagination": pagination,
	})
}

// UpdateSubmissionStatus moves a submission through its review
// lifecycle and records the reviewer.
func (c *SubmissionController) UpdateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Status     string `json:"status"`
		ReviewedBy string `json:"reviewed_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	err := c.SubmissionService.UpdateStatus(r.Context(), id, body.Status, body.ReviewedBy)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Error(), http.StatusBadRequest)
			return
		}
		var nf *appErrors.ErrSubmissionNotFound
		if errors.As(err, &nf) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update status: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"status": body.Status,
	})
}

// DeleteSubmission removes a submission by ID.
func (c *SubmissionController) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.SubmissionService.DeleteSubmission(r.Context(), id); err != nil {
		var nf *appErrors.ErrSubmissionNotFound
		if errors.As(err, &nf) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete submission: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubmissionEmails returns the email audit trail for a submission.
func (c *SubmissionController) ListSubmissionEmails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	records, err := c.SubmissionService.ListEmailRecords(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to fetch email records: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": records})
}

// Health reports liveness and database reachability.
func (c *SubmissionController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := c.DB.Ping(ctx); err != nil {
		dbStatus = "disconnected"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"database": dbStatus,
	})
}
