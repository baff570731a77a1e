// Package audit defines operational audit events and the publisher contract.
// Events describe what staff did (scheme created, progress updated), not the
// historical content of records; record versioning is out of scope.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Actions emitted by the core services.
const (
	ActionSchemeCreated          = "scheme_created"
	ActionChecklistInstantiated  = "checklist_instantiated"
	ActionProgressUpdated        = "progress_updated"
	ActionReportGenerated        = "report_generated"
	ActionChecklistItemCreated   = "checklist_item_created"
	ActionDepartmentContactAdded = "department_contact_added"
)

// Event is a single operational audit record.
type Event struct {
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	Operator  string    `json:"operator,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Count     int       `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers audit events to an external sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Emitter wraps a Publisher so services can emit unconditionally. A nil
// publisher degrades to logging only; a publish failure is logged, never
// surfaced, since audit delivery must not fail the business operation.
type Emitter struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewEmitter builds an emitter. Both arguments may be nil.
func NewEmitter(publisher Publisher, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{publisher: publisher, logger: logger}
}

// Emit publishes the event, logging on failure.
func (e *Emitter) Emit(ctx context.Context, event Event) {
	if e == nil {
		return
	}
	if e.publisher == nil {
		e.logger.DebugContext(ctx, "audit event (no publisher configured)",
			"action", event.Action,
			"subject", event.Subject,
		)
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "failed to publish audit event",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
	}
}
