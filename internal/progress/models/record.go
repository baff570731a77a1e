// Package models defines scheme-bound progress records and the field-level
// delta types the reconciliation engine operates on.
package models

import (
	"time"

	catalog "takeon/internal/catalog/models"
	id "takeon/pkg/domain"
)

// Operator is the fixed set of staff labels allowed in the completed-by field.
type Operator string

const (
	OperatorMe                 Operator = "Me"
	OperatorPortfolioAssistant Operator = "Portfolio Assistant"
	OperatorBookkeeper         Operator = "Bookkeeper"
)

func (o Operator) IsValid() bool {
	switch o {
	case OperatorMe, OperatorPortfolioAssistant, OperatorBookkeeper:
		return true
	}
	return false
}

// Record is one trackable checklist instance bound to a scheme.
//
// Invariants:
//   - SchemeID and TemplateItemID are fixed at creation and never change.
//   - Party and SchemeType are snapshots copied from the template item at
//     instantiation time; they are never recomputed from the catalog, so
//     later catalog edits cannot change a scheme's checklist composition or
//     report inclusion.
//   - DateCompleted and CompletedBy are present only while Complete is true.
type Record struct {
	ID             id.RecordID        `json:"id"`
	SchemeID       id.SchemeID        `json:"scheme_id"`
	TemplateItemID id.TemplateItemID  `json:"template_item_id"`
	Party          catalog.Party      `json:"party"`
	SchemeType     catalog.SchemeType `json:"scheme_type"`
	Position       int                `json:"position"`
	Complete       bool               `json:"complete"`
	DateCompleted  *id.Date           `json:"date_completed,omitempty"`
	CompletedBy    *Operator          `json:"completed_by,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Clone returns a deep copy so stores never hand out aliased pointers.
func (r *Record) Clone() *Record {
	cp := *r
	if r.DateCompleted != nil {
		d := *r.DateCompleted
		cp.DateCompleted = &d
	}
	if r.CompletedBy != nil {
		o := *r.CompletedBy
		cp.CompletedBy = &o
	}
	return &cp
}

// EditedEntry is one row of a user-edited view, identified by the record's
// stable ID. Matching edited rows to stored rows happens by this ID only;
// positional matching is unsafe under any display reordering or filtering.
type EditedEntry struct {
	ID            id.RecordID `json:"id"`
	Complete      bool        `json:"complete"`
	DateCompleted *id.Date    `json:"date_completed,omitempty"`
	CompletedBy   *Operator   `json:"completed_by,omitempty"`
	Notes         string      `json:"notes"`
}

// Normalized applies the completion invariant to the proposed values before
// any diffing: an incomplete item carries no completion date and no
// completed-by label, regardless of what was submitted.
func (e EditedEntry) Normalized() EditedEntry {
	if !e.Complete {
		e.DateCompleted = nil
		e.CompletedBy = nil
	}
	return e
}

// FieldUpdate carries only the editable field set for a partial update. The
// description, scheme binding and template reference are immutable through
// reconciliation and have no place here.
type FieldUpdate struct {
	Complete      bool      `json:"complete"`
	DateCompleted *id.Date  `json:"date_completed,omitempty"`
	CompletedBy   *Operator `json:"completed_by,omitempty"`
	Notes         string    `json:"notes"`
}

// Diff normalizes the proposed entry and compares it against the stored
// record's editable fields. It returns the update to apply and whether the
// record is dirty; clean records must not be written.
func Diff(stored *Record, proposed EditedEntry) (FieldUpdate, bool) {
	proposed = proposed.Normalized()

	update := FieldUpdate{
		Complete:      proposed.Complete,
		DateCompleted: proposed.DateCompleted,
		CompletedBy:   proposed.CompletedBy,
		Notes:         proposed.Notes,
	}

	dirty := stored.Complete != proposed.Complete ||
		!datesEqual(stored.DateCompleted, proposed.DateCompleted) ||
		!operatorsEqual(stored.CompletedBy, proposed.CompletedBy) ||
		stored.Notes != proposed.Notes

	return update, dirty
}

// Apply writes the update onto the record. Stores use it under their own
// locking; tests use it to model the post-update state.
func (r *Record) Apply(update FieldUpdate, now time.Time) {
	r.Complete = update.Complete
	if update.DateCompleted != nil {
		d := *update.DateCompleted
		r.DateCompleted = &d
	} else {
		r.DateCompleted = nil
	}
	if update.CompletedBy != nil {
		o := *update.CompletedBy
		r.CompletedBy = &o
	} else {
		r.CompletedBy = nil
	}
	r.Notes = update.Notes
	r.UpdatedAt = now
}

func datesEqual(a, b *id.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func operatorsEqual(a, b *Operator) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// DisplayRecord is a record joined with its template description for the
// editable grid. The join is display-only convenience; Party and SchemeType
// come from the record's own snapshot fields, never from the catalog.
type DisplayRecord struct {
	Record
	Description string `json:"description"`
}
