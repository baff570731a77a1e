package handler

import (
	catalog "takeon/internal/catalog/models"
	"takeon/internal/scheme/models"
	id "takeon/pkg/domain"
)

// CreateSchemeRequest mirrors the intake form. Dates arrive as YYYY-MM-DD.
// Field-level validation happens on the domain model so the rules live in
// one place.
type CreateSchemeRequest struct {
	Name string `json:"name"`
	Type string `json:"scheme_type"`

	AppointmentDate    id.Date `json:"appointment_date"`
	FinancialYearEnd   id.Date `json:"financial_year_end"`
	InitialRequestDate id.Date `json:"initial_request_date"`

	PortfolioManager string  `json:"portfolio_manager"`
	PMEmail          string  `json:"pm_email"`
	NumberOfUnits    int     `json:"number_of_units"`
	ManagementFees   float64 `json:"management_fees"`

	RegistrationNumber  string `json:"registration_number"`
	VATRegistered       bool   `json:"vat_registered"`
	VATNumber           string `json:"vat_number"`
	SARSTaxNumber       string `json:"sars_tax_number"`
	Auditors            string `json:"auditors"`
	ErfNumber           string `json:"erf_number"`
	BuildingCode        string `json:"building_code"`
	BuildingExpenseCode string `json:"building_expense_code"`
	PhysicalAddress     string `json:"physical_address"`

	PreviousAgent string `json:"previous_agent"`
	PreviousPM    string `json:"previous_pm"`
	PMAEmail      string `json:"pma_email"`
	PMAPhone      string `json:"pma_phone"`
}

// ToScheme maps the wire shape onto the domain aggregate.
func (r CreateSchemeRequest) ToScheme() *models.Scheme {
	return &models.Scheme{
		Name:                r.Name,
		Type:                catalog.SchemeType(r.Type),
		AppointmentDate:     r.AppointmentDate,
		FinancialYearEnd:    r.FinancialYearEnd,
		InitialRequestDate:  r.InitialRequestDate,
		PortfolioManager:    r.PortfolioManager,
		PMEmail:             r.PMEmail,
		NumberOfUnits:       r.NumberOfUnits,
		ManagementFees:      r.ManagementFees,
		RegistrationNumber:  r.RegistrationNumber,
		VATRegistered:       r.VATRegistered,
		VATNumber:           r.VATNumber,
		SARSTaxNumber:       r.SARSTaxNumber,
		Auditors:            r.Auditors,
		ErfNumber:           r.ErfNumber,
		BuildingCode:        r.BuildingCode,
		BuildingExpenseCode: r.BuildingExpenseCode,
		PhysicalAddress:     r.PhysicalAddress,
		PreviousAgent:       r.PreviousAgent,
		PreviousPM:          r.PreviousPM,
		PMAEmail:            r.PMAEmail,
		PMAPhone:            r.PMAPhone,
	}
}

// CreateSchemeResponse reports the created scheme and how many checklist
// items were copied onto it. CopiedItems of zero is informational.
type CreateSchemeResponse struct {
	Scheme      *models.Scheme `json:"scheme"`
	CopiedItems int            `json:"copied_items"`
}

// ListSchemesResponse wraps the scheme listing for selection UIs.
type ListSchemesResponse struct {
	Schemes []*models.Scheme `json:"schemes"`
}
