// Package models defines the master checklist template catalog types.
package models

import (
	"strings"
	"time"

	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
)

// Party is the responsible-party category of a checklist item: who owns
// completing it during take-on.
type Party string

const (
	// PartyPMA marks items owed by the previous managing agent.
	PartyPMA Party = "PMA"
	// PartyPretor marks Pretor Group internal items; only these appear on the
	// client-facing report.
	PartyPretor Party = "Pretor"
)

func (p Party) IsValid() bool {
	return p == PartyPMA || p == PartyPretor
}

// SchemeType partitions the catalog by the kind of scheme an item applies to.
type SchemeType string

const (
	// SchemeTypeBC is a Body Corporate.
	SchemeTypeBC SchemeType = "BC"
	// SchemeTypeHOA is a Home Owners Association.
	SchemeTypeHOA SchemeType = "HOA"
)

func (t SchemeType) IsValid() bool {
	return t == SchemeTypeBC || t == SchemeTypeHOA
}

// Item is one reusable checklist template entry.
//
// Invariants:
//   - Description is non-empty
//   - Party and SchemeType are valid enum values
//   - Immutable once created; progress records snapshot Party and SchemeType
//     at instantiation time, so later catalog edits never rewrite an existing
//     scheme's checklist composition.
type Item struct {
	ID          id.TemplateItemID `json:"id"`
	Description string            `json:"description"`
	Party       Party             `json:"party"`
	SchemeType  SchemeType        `json:"scheme_type"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewItem validates and constructs a template item.
func NewItem(itemID id.TemplateItemID, description string, party Party, schemeType SchemeType, now time.Time) (*Item, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "item description cannot be empty")
	}
	if !party.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "party must be PMA or Pretor")
	}
	if !schemeType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "scheme type must be BC or HOA")
	}
	return &Item{
		ID:          itemID,
		Description: description,
		Party:       party,
		SchemeType:  schemeType,
		CreatedAt:   now,
	}, nil
}
