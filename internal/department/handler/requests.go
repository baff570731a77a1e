package handler

import (
	"strings"

	"takeon/internal/department/models"
	dErrors "takeon/pkg/domain-errors"
)

// CreateDepartmentRequest is the admin payload for adding a directory entry.
type CreateDepartmentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r CreateDepartmentRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	return nil
}

// ListDepartmentsResponse wraps the directory listing.
type ListDepartmentsResponse struct {
	Departments []*models.Department `json:"departments"`
}
