package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"takeon/internal/catalog/models"
	id "takeon/pkg/domain"
)

// Postgres persists the catalog in the checklist_items table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO checklist_items (id, description, party, scheme_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(item.ID),
		item.Description,
		string(item.Party),
		string(item.SchemeType),
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert checklist item %s: %w", item.ID, err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Item, error) {
	query := `
		SELECT id, description, party, scheme_type, created_at
		FROM checklist_items
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query checklist items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		var (
			item       models.Item
			itemID     uuid.UUID
			party      string
			schemeType string
		)
		if err := rows.Scan(&itemID, &item.Description, &party, &schemeType, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan checklist item: %w", err)
		}
		item.ID = id.TemplateItemID(itemID)
		item.Party = models.Party(party)
		item.SchemeType = models.SchemeType(schemeType)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checklist items: %w", err)
	}
	return items, nil
}
