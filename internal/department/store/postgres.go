package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"takeon/internal/department/models"
	id "takeon/pkg/domain"
)

// Postgres persists the directory in the departments table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, dept *models.Department) error {
	query := `
		INSERT INTO departments (id, name, email, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(dept.ID),
		dept.Name,
		dept.Email,
		dept.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert department %s: %w", dept.ID, err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Department, error) {
	query := `
		SELECT id, name, email, created_at
		FROM departments
		ORDER BY name, created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var (
			dept   models.Department
			deptID uuid.UUID
		)
		if err := rows.Scan(&deptID, &dept.Name, &dept.Email, &dept.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		dept.ID = id.DepartmentID(deptID)
		departments = append(departments, &dept)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}
	return departments, nil
}
