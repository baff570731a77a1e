// Package domain holds the typed identifiers and small value types shared by
// every module. Typed IDs prevent cross-entity assignment at compile time:
// a SchemeID can never be passed where a RecordID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "takeon/pkg/domain-errors"
)

type (
	// TemplateItemID identifies a master checklist template item.
	TemplateItemID uuid.UUID

	// SchemeID identifies a managed property scheme.
	SchemeID uuid.UUID

	// RecordID identifies a scheme-bound progress record.
	RecordID uuid.UUID

	// DepartmentID identifies a department contact entry.
	DepartmentID uuid.UUID
)

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	if len(raw) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is malformed")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is malformed")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be nil")
	}
	return u, nil
}

// ParseTemplateItemID parses an untrusted string into a TemplateItemID.
func ParseTemplateItemID(raw string) (TemplateItemID, error) {
	u, err := parseUUID(raw, "template item")
	return TemplateItemID(u), err
}

// ParseSchemeID parses an untrusted string into a SchemeID.
func ParseSchemeID(raw string) (SchemeID, error) {
	u, err := parseUUID(raw, "scheme")
	return SchemeID(u), err
}

// ParseRecordID parses an untrusted string into a RecordID.
func ParseRecordID(raw string) (RecordID, error) {
	u, err := parseUUID(raw, "record")
	return RecordID(u), err
}

// ParseDepartmentID parses an untrusted string into a DepartmentID.
func ParseDepartmentID(raw string) (DepartmentID, error) {
	u, err := parseUUID(raw, "department")
	return DepartmentID(u), err
}

func (i TemplateItemID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }
func (i TemplateItemID) String() string { return uuid.UUID(i).String() }

func (i SchemeID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }
func (i SchemeID) String() string { return uuid.UUID(i).String() }

func (i RecordID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }
func (i RecordID) String() string { return uuid.UUID(i).String() }

func (i DepartmentID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }
func (i DepartmentID) String() string { return uuid.UUID(i).String() }

// MarshalText/UnmarshalText keep the typed IDs rendering as canonical UUID
// strings in JSON rather than as raw byte arrays.

func (i TemplateItemID) MarshalText() ([]byte, error) { return []byte(i.String()), nil }
func (i *TemplateItemID) UnmarshalText(b []byte) error {
	v, err := ParseTemplateItemID(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i SchemeID) MarshalText() ([]byte, error) { return []byte(i.String()), nil }
func (i *SchemeID) UnmarshalText(b []byte) error {
	v, err := ParseSchemeID(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i RecordID) MarshalText() ([]byte, error) { return []byte(i.String()), nil }
func (i *RecordID) UnmarshalText(b []byte) error {
	v, err := ParseRecordID(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i DepartmentID) MarshalText() ([]byte, error) { return []byte(i.String()), nil }
func (i *DepartmentID) UnmarshalText(b []byte) error {
	v, err := ParseDepartmentID(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// NewTemplateItemID returns a fresh random TemplateItemID.
func NewTemplateItemID() TemplateItemID { return TemplateItemID(uuid.New()) }

// NewSchemeID returns a fresh random SchemeID.
func NewSchemeID() SchemeID { return SchemeID(uuid.New()) }

// NewRecordID returns a fresh random RecordID.
func NewRecordID() RecordID { return RecordID(uuid.New()) }

// NewDepartmentID returns a fresh random DepartmentID.
func NewDepartmentID() DepartmentID { return DepartmentID(uuid.New()) }
