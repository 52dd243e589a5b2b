// Package handler wires medication administration endpoints to the service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"medgate/internal/medadmin/models"
	id "medgate/pkg/domain"
	"medgate/pkg/platform/httputil"
	"medgate/pkg/requestcontext"
)

// Service defines the interface for administration operations.
type Service interface {
	AttemptAdministration(ctx context.Context, req models.AdministrationRequest) (*models.AdministrationResult, error)
	AuditTrail(ctx context.Context, residentID id.ResidentID) ([]models.AuditEntry, error)
}

// Handler wires administration endpoints to the administration service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an administration handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts administration endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/administrations", h.HandleAttempt)
	r.Get("/residents/{residentID}/administrations", h.HandleAuditTrail)
}

// HandleAttempt handles POST /administrations requests.
func (h *Handler) HandleAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AttemptRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.AttemptAdministration(ctx, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "administration attempt failed",
			"request_id", requestID,
			"resident_id", req.ResidentID,
			"medication_id", req.MedicationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "administration attempt completed",
		"request_id", requestID,
		"attempt_id", result.AttemptID,
		"disposition", result.Disposition,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleAuditTrail handles GET /residents/{residentID}/administrations requests.
func (h *Handler) HandleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entries, err := h.service.AuditTrail(ctx, residentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit trail lookup failed",
			"request_id", requestID,
			"resident_id", residentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromEntries(entries))
}
