// Package models defines the managed property scheme aggregate.
package models

import (
	"strings"
	"time"

	catalog "takeon/internal/catalog/models"
	"takeon/pkg/email"

	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
)

// Scheme is a managed property entity being onboarded. The core reads only
// the name (report label) and type (catalog partition key); the
// administrative and statutory fields are opaque payload captured at intake.
// Schemes are immutable once created for the purposes of take-on tracking.
type Scheme struct {
	ID   id.SchemeID        `json:"id"`
	Name string             `json:"name"`
	Type catalog.SchemeType `json:"scheme_type"`

	AppointmentDate    id.Date `json:"appointment_date"`
	FinancialYearEnd   id.Date `json:"financial_year_end"`
	InitialRequestDate id.Date `json:"initial_request_date"`

	PortfolioManager string  `json:"portfolio_manager"`
	PMEmail          string  `json:"pm_email"`
	NumberOfUnits    int     `json:"number_of_units"`
	ManagementFees   float64 `json:"management_fees"`

	RegistrationNumber  string `json:"registration_number"`
	VATRegistered       bool   `json:"vat_registered"`
	VATNumber           string `json:"vat_number,omitempty"`
	SARSTaxNumber       string `json:"sars_tax_number,omitempty"`
	Auditors            string `json:"auditors,omitempty"`
	ErfNumber           string `json:"erf_number,omitempty"`
	BuildingCode        string `json:"building_code,omitempty"`
	BuildingExpenseCode string `json:"building_expense_code,omitempty"`
	PhysicalAddress     string `json:"physical_address,omitempty"`

	PreviousAgent string `json:"previous_agent,omitempty"`
	PreviousPM    string `json:"previous_pm,omitempty"`
	PMAEmail      string `json:"pma_email,omitempty"`
	PMAPhone      string `json:"pma_phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate enforces the intake form's mandatory fields: name, assigned
// portfolio manager, a valid PM email, registration number, and a known
// scheme type.
func (s *Scheme) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "scheme name is required")
	}
	if !s.Type.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "scheme type must be BC or HOA")
	}
	if strings.TrimSpace(s.PortfolioManager) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "assigned portfolio manager is required")
	}
	if !email.Valid(s.PMEmail) {
		return dErrors.New(dErrors.CodeInvalidInput, "portfolio manager email is invalid")
	}
	if strings.TrimSpace(s.RegistrationNumber) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "registration number is required")
	}
	return nil
}
