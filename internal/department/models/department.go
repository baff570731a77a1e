// Package models defines the department contact directory.
package models

import (
	"strings"
	"time"

	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/email"
)

// Department is an internal team that receives take-on correspondence.
type Department struct {
	ID        id.DepartmentID `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewDepartment validates and constructs a directory entry.
func NewDepartment(deptID id.DepartmentID, name, addr string, createdAt time.Time) (*Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "department name is required")
	}
	if !email.Valid(addr) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "department email is invalid")
	}
	return &Department{
		ID:        deptID,
		Name:      name,
		Email:     addr,
		CreatedAt: createdAt,
	}, nil
}
