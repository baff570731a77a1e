package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"takeon/internal/catalog/models"
	progress "takeon/internal/progress/models"
	id "takeon/pkg/domain"
	"takeon/pkg/platform/sentinel"
	"takeon/pkg/requestcontext"
)

// Postgres persists progress records in the progress_records table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// CreateBatch inserts the whole record set inside one transaction. A failure
// on any row rolls back every row: instantiation never leaves a partial
// checklist behind.
func (s *Postgres) CreateBatch(ctx context.Context, records []*progress.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin instantiation batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO progress_records (
			id, scheme_id, template_item_id, party, scheme_type,
			position, complete, date_completed, completed_by, notes,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, r := range records {
		_, err := tx.ExecContext(ctx, query,
			uuid.UUID(r.ID),
			uuid.UUID(r.SchemeID),
			uuid.UUID(r.TemplateItemID),
			string(r.Party),
			string(r.SchemeType),
			r.Position,
			r.Complete,
			dateArg(r.DateCompleted),
			operatorArg(r.CompletedBy),
			r.Notes,
			r.CreatedAt,
			r.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert progress record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit instantiation batch: %w", err)
	}
	return nil
}

func (s *Postgres) ListByScheme(ctx context.Context, schemeID id.SchemeID) ([]*progress.Record, error) {
	query := `
		SELECT id, scheme_id, template_item_id, party, scheme_type,
		       position, complete, date_completed, completed_by, notes,
		       created_at, updated_at
		FROM progress_records
		WHERE scheme_id = $1
		ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(schemeID))
	if err != nil {
		return nil, fmt.Errorf("query progress records for scheme %s: %w", schemeID, err)
	}
	defer rows.Close()

	var records []*progress.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress records: %w", err)
	}
	return records, nil
}

// UpdateFields applies a partial update carrying only the editable field set,
// keyed by the record's stable id.
func (s *Postgres) UpdateFields(ctx context.Context, recordID id.RecordID, update progress.FieldUpdate) error {
	query := `
		UPDATE progress_records
		SET complete = $2, date_completed = $3, completed_by = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(recordID),
		update.Complete,
		dateArg(update.DateCompleted),
		operatorArg(update.CompletedBy),
		update.Notes,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return fmt.Errorf("update progress record %s: %w", recordID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update progress record %s: %w", recordID, err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) CountByScheme(ctx context.Context, schemeID id.SchemeID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM progress_records WHERE scheme_id = $1`,
		uuid.UUID(schemeID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count progress records for scheme %s: %w", schemeID, err)
	}
	return count, nil
}

func scanRecord(rows *sql.Rows) (*progress.Record, error) {
	var (
		record     progress.Record
		recordID   uuid.UUID
		schemeID   uuid.UUID
		templateID uuid.UUID
		party      string
		schemeType string
		date       sql.NullTime
		by         sql.NullString
	)
	err := rows.Scan(
		&recordID, &schemeID, &templateID, &party, &schemeType,
		&record.Position, &record.Complete, &date, &by, &record.Notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan progress record: %w", err)
	}
	record.ID = id.RecordID(recordID)
	record.SchemeID = id.SchemeID(schemeID)
	record.TemplateItemID = id.TemplateItemID(templateID)
	record.Party = models.Party(party)
	record.SchemeType = models.SchemeType(schemeType)
	if date.Valid {
		d := id.DateOf(date.Time)
		record.DateCompleted = &d
	}
	if by.Valid {
		op := progress.Operator(by.String)
		record.CompletedBy = &op
	}
	return &record, nil
}

func dateArg(d *id.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

func operatorArg(o *progress.Operator) any {
	if o == nil {
		return nil
	}
	return string(*o)
}
