package report

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	id "takeon/pkg/domain"
	"takeon/pkg/platform/httputil"
	"takeon/pkg/requestcontext"
)

// Generator defines the report operation the handler consumes.
type Generator interface {
	Generate(ctx context.Context, schemeID id.SchemeID) (*Document, error)
}

type Handler struct {
	service Generator
	logger  *slog.Logger
}

func NewHandler(service Generator, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the report download endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/schemes/{schemeID}/report", h.HandleDownload)
}

// HandleDownload handles GET /schemes/{schemeID}/report. The response is the
// PDF itself, served as an attachment.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	schemeID, err := id.ParseSchemeID(chi.URLParam(r, "schemeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	doc, err := h.service.Generate(ctx, schemeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate report",
			"request_id", requestID,
			"scheme_id", schemeID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "report generated",
		"request_id", requestID,
		"scheme_id", schemeID,
		"bytes", len(doc.Content),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote(doc.Filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}
