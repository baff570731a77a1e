// Package handler wires department directory endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"takeon/internal/department/models"
	"takeon/pkg/platform/httputil"
	"takeon/pkg/requestcontext"
)

// Service defines the directory operations the handler consumes.
type Service interface {
	CreateDepartment(ctx context.Context, name, email string) (*models.Department, error)
	ListDepartments(ctx context.Context) ([]*models.Department, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the read-only directory endpoint on the staff router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/departments", h.HandleList)
}

// RegisterAdmin mounts directory management endpoints on the admin router.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/departments", h.HandleCreate)
}

// HandleCreate handles POST /admin/departments.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateDepartmentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	dept, err := h.service.CreateDepartment(ctx, req.Name, req.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create department",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, dept)
}

// HandleList handles GET /departments.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	departments, err := h.service.ListDepartments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list departments",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ListDepartmentsResponse{Departments: departments})
}
