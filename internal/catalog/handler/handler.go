// Package handler wires catalog endpoints to the catalog service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"takeon/internal/catalog/models"
	"takeon/pkg/platform/httputil"
	"takeon/pkg/requestcontext"
)

// Service defines the catalog operations the handler consumes.
type Service interface {
	CreateItem(ctx context.Context, description string, party models.Party, schemeType models.SchemeType) (*models.Item, error)
	ListItems(ctx context.Context) ([]*models.Item, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the read-only catalog endpoint on the staff router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/checklist-items", h.HandleList)
}

// RegisterAdmin mounts catalog management endpoints on the admin router.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/checklist-items", h.HandleCreate)
}

// HandleCreate handles POST /admin/checklist-items.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateItemRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	item, err := h.service.CreateItem(ctx, req.Description, models.Party(req.Party), models.SchemeType(req.SchemeType))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create checklist item",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, item)
}

// HandleList handles GET /checklist-items.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.service.ListItems(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list checklist items",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ListItemsResponse{Items: items})
}
