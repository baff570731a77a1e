// Package handler exposes the progress grid endpoints: read the current view
// and reconcile an edited view.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"takeon/internal/progress/models"
	id "takeon/pkg/domain"
	"takeon/pkg/platform/httputil"
	"takeon/pkg/requestcontext"
)

// Service defines the progress operations the handler consumes.
type Service interface {
	ListForDisplay(ctx context.Context, schemeID id.SchemeID) ([]models.DisplayRecord, error)
	Reconcile(ctx context.Context, schemeID id.SchemeID, edited []models.EditedEntry) (*models.ReconcileResult, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts progress endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/schemes/{schemeID}/progress", h.HandleList)
	r.Put("/schemes/{schemeID}/progress", h.HandleReconcile)
}

// HandleList handles GET /schemes/{schemeID}/progress.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schemeID, err := id.ParseSchemeID(chi.URLParam(r, "schemeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.service.ListForDisplay(ctx, schemeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list progress records",
			"request_id", requestcontext.RequestID(ctx),
			"scheme_id", schemeID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ListProgressResponse{Records: records})
}

// HandleReconcile handles PUT /schemes/{schemeID}/progress.
func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	schemeID, err := id.ParseSchemeID(chi.URLParam(r, "schemeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ReconcileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Reconcile(ctx, schemeID, req.Entries())
	if err != nil {
		h.logger.ErrorContext(ctx, "reconciliation failed",
			"request_id", requestID,
			"scheme_id", schemeID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "progress reconciled",
		"request_id", requestID,
		"scheme_id", schemeID,
		"updated", len(result.Updated),
		"failed", len(result.Failed),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromReconcileResult(result))
}
