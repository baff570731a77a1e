package models

import (
	id "takeon/pkg/domain"
)

// FailedUpdate records one per-record write failure during reconciliation.
type FailedUpdate struct {
	ID  id.RecordID
	Err error
}

// ReconcileResult enumerates exactly which records were written and which
// failed, so the caller can retry only the failures. Records with no
// detected change appear in neither list.
type ReconcileResult struct {
	Updated []id.RecordID
	Failed  []FailedUpdate
}

// UpdatedCount is the number of records actually written.
func (r *ReconcileResult) UpdatedCount() int {
	return len(r.Updated)
}
