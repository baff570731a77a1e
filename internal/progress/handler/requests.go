package handler

import (
	"errors"

	"takeon/internal/progress/models"
	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
)

// EditedRow is one row of the submitted edited view. The id must reference a
// stored record; everything else is the proposed editable field set.
type EditedRow struct {
	ID            id.RecordID      `json:"id"`
	Complete      bool             `json:"complete"`
	DateCompleted *id.Date         `json:"date_completed"`
	CompletedBy   *models.Operator `json:"completed_by"`
	Notes         string           `json:"notes"`
}

// ReconcileRequest is the wire shape for PUT progress.
type ReconcileRequest struct {
	Rows []EditedRow `json:"rows"`
}

func (r ReconcileRequest) Validate() error {
	if len(r.Rows) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "edited view has no rows")
	}
	seen := make(map[id.RecordID]bool, len(r.Rows))
	for _, row := range r.Rows {
		if row.ID.IsNil() {
			return dErrors.New(dErrors.CodeInvalidInput, "every row needs a record id")
		}
		if seen[row.ID] {
			return dErrors.New(dErrors.CodeInvalidInput, "duplicate record id "+row.ID.String())
		}
		seen[row.ID] = true
		if row.CompletedBy != nil && !row.CompletedBy.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, "completed_by must be one of Me, Portfolio Assistant, Bookkeeper")
		}
	}
	return nil
}

// Entries converts the wire rows to domain edited entries.
func (r ReconcileRequest) Entries() []models.EditedEntry {
	entries := make([]models.EditedEntry, len(r.Rows))
	for i, row := range r.Rows {
		entries[i] = models.EditedEntry{
			ID:            row.ID,
			Complete:      row.Complete,
			DateCompleted: row.DateCompleted,
			CompletedBy:   row.CompletedBy,
			Notes:         row.Notes,
		}
	}
	return entries
}

// ListProgressResponse wraps the display grid rows.
type ListProgressResponse struct {
	Records []models.DisplayRecord `json:"records"`
}

// FailedRow reports one record that could not be written.
type FailedRow struct {
	ID    id.RecordID `json:"id"`
	Error string      `json:"error"`
}

// ReconcileResponse enumerates per-id outcomes so clients retry precisely.
type ReconcileResponse struct {
	UpdatedCount int           `json:"updated_count"`
	Updated      []id.RecordID `json:"updated"`
	Failed       []FailedRow   `json:"failed,omitempty"`
}

// FromReconcileResult converts the domain result to the wire shape.
func FromReconcileResult(result *models.ReconcileResult) ReconcileResponse {
	resp := ReconcileResponse{
		UpdatedCount: result.UpdatedCount(),
		Updated:      result.Updated,
	}
	if resp.Updated == nil {
		resp.Updated = []id.RecordID{}
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, FailedRow{ID: f.ID, Error: failureMessage(f.Err)})
	}
	return resp
}

// failureMessage keeps storage details out of the response body.
func failureMessage(err error) string {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de.Message()
	}
	return "update did not persist"
}
