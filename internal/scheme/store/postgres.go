package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalog "takeon/internal/catalog/models"
	"takeon/internal/scheme/models"
	id "takeon/pkg/domain"
	"takeon/pkg/platform/sentinel"
)

// Postgres persists schemes in the schemes table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const schemeColumns = `
	id, name, scheme_type,
	appointment_date, financial_year_end, initial_request_date,
	portfolio_manager, pm_email, number_of_units, management_fees,
	registration_number, vat_registered, vat_number, sars_tax_number,
	auditors, erf_number, building_code, building_expense_code,
	physical_address, previous_agent, previous_pm, pma_email, pma_phone,
	created_at`

func (s *Postgres) Create(ctx context.Context, scheme *models.Scheme) error {
	query := `
		INSERT INTO schemes (` + schemeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(scheme.ID),
		scheme.Name,
		string(scheme.Type),
		scheme.AppointmentDate.Time(),
		scheme.FinancialYearEnd.Time(),
		scheme.InitialRequestDate.Time(),
		scheme.PortfolioManager,
		scheme.PMEmail,
		scheme.NumberOfUnits,
		scheme.ManagementFees,
		scheme.RegistrationNumber,
		scheme.VATRegistered,
		scheme.VATNumber,
		scheme.SARSTaxNumber,
		scheme.Auditors,
		scheme.ErfNumber,
		scheme.BuildingCode,
		scheme.BuildingExpenseCode,
		scheme.PhysicalAddress,
		scheme.PreviousAgent,
		scheme.PreviousPM,
		scheme.PMAEmail,
		scheme.PMAPhone,
		scheme.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scheme %s: %w", scheme.ID, err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes WHERE id = $1`
	scheme, err := scanScheme(s.db.QueryRowContext(ctx, query, uuid.UUID(schemeID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query scheme %s: %w", schemeID, err)
	}
	return scheme, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Scheme, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query schemes: %w", err)
	}
	defer rows.Close()

	var schemes []*models.Scheme
	for rows.Next() {
		scheme, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheme: %w", err)
		}
		schemes = append(schemes, scheme)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schemes: %w", err)
	}
	return schemes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScheme(row rowScanner) (*models.Scheme, error) {
	var (
		scheme     models.Scheme
		schemeID   uuid.UUID
		schemeType string
	)
	err := row.Scan(
		&schemeID,
		&scheme.Name,
		&schemeType,
		&scheme.AppointmentDate,
		&scheme.FinancialYearEnd,
		&scheme.InitialRequestDate,
		&scheme.PortfolioManager,
		&scheme.PMEmail,
		&scheme.NumberOfUnits,
		&scheme.ManagementFees,
		&scheme.RegistrationNumber,
		&scheme.VATRegistered,
		&scheme.VATNumber,
		&scheme.SARSTaxNumber,
		&scheme.Auditors,
		&scheme.ErfNumber,
		&scheme.BuildingCode,
		&scheme.BuildingExpenseCode,
		&scheme.PhysicalAddress,
		&scheme.PreviousAgent,
		&scheme.PreviousPM,
		&scheme.PMAEmail,
		&scheme.PMAPhone,
		&scheme.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	scheme.ID = id.SchemeID(schemeID)
	scheme.Type = catalog.SchemeType(schemeType)
	return &scheme, nil
}
