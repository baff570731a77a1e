// Package handler wires scheme intake and lookup endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"takeon/internal/scheme/models"
	id "takeon/pkg/domain"
	"takeon/pkg/platform/httputil"
	"takeon/pkg/requestcontext"
)

// Service defines the scheme operations the handler consumes.
type Service interface {
	CreateScheme(ctx context.Context, scheme *models.Scheme) (*models.Scheme, int, error)
	GetScheme(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error)
	ListSchemes(ctx context.Context) ([]*models.Scheme, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts scheme endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/schemes", h.HandleCreate)
	r.Get("/schemes", h.HandleList)
	r.Get("/schemes/{schemeID}", h.HandleGet)
}

// HandleCreate handles POST /schemes: create the scheme and copy the
// matching checklist items.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CreateSchemeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	scheme, copied, err := h.service.CreateScheme(ctx, req.ToScheme())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create scheme",
			"request_id", requestID,
			"scheme_name", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "scheme intake complete",
		"request_id", requestID,
		"scheme_id", scheme.ID,
		"copied_items", copied,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, CreateSchemeResponse{
		Scheme:      scheme,
		CopiedItems: copied,
	})
}

// HandleGet handles GET /schemes/{schemeID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schemeID, err := id.ParseSchemeID(chi.URLParam(r, "schemeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	scheme, err := h.service.GetScheme(ctx, schemeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, scheme)
}

// HandleList handles GET /schemes.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schemes, err := h.service.ListSchemes(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list schemes",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ListSchemesResponse{Schemes: schemes})
}
