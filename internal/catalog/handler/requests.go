package handler

import (
	"strings"

	"takeon/internal/catalog/models"
	dErrors "takeon/pkg/domain-errors"
)

// CreateItemRequest is the wire shape for adding a template item.
type CreateItemRequest struct {
	Description string `json:"description"`
	Party       string `json:"party"`
	SchemeType  string `json:"scheme_type"`
}

func (r CreateItemRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "description is required")
	}
	if !models.Party(r.Party).IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "party must be PMA or Pretor")
	}
	if !models.SchemeType(r.SchemeType).IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "scheme_type must be BC or HOA")
	}
	return nil
}

// ListItemsResponse wraps the catalog listing.
type ListItemsResponse struct {
	Items []*models.Item `json:"items"`
}
