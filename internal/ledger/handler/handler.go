// Package handler exposes the vendor ledger over HTTP: batch uploads,
// ledger reads, breach reports and the ITC exposure rollup.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vendorwatch/internal/ingest"
	"vendorwatch/internal/ledger"
	"vendorwatch/internal/platform/middleware"
	"vendorwatch/internal/vendor"
	"vendorwatch/pkg/domain"
	dErrors "vendorwatch/pkg/domain-errors"
	"vendorwatch/pkg/platform/audit"
	"vendorwatch/pkg/platform/httputil"
	"vendorwatch/pkg/requestcontext"
)

// Service defines the ledger operations the handler needs.
type Service interface {
	ConsolidateBatch(ctx context.Context, batch *ingest.Batch) (ledger.Report, error)
	ListVendors(ctx context.Context) ([]vendor.Vendor, error)
	GetVendor(ctx context.Context, gstin domain.GSTIN) (vendor.Vendor, error)
	VendorBreaches(ctx context.Context, gstin domain.GSTIN) ([]string, error)
	ITCExposure(ctx context.Context, minTier vendor.RiskTier) (ledger.ExposureReport, error)
}

// AuditLog reads the ledger mutation trail.
type AuditLog interface {
	List(ctx context.Context, gstin string) ([]audit.Event, error)
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler handles ledger endpoints.
type Handler struct {
	logger   *slog.Logger
	ledger   Service
	auditLog AuditLog
}

// New creates a new ledger Handler. auditLog may be nil, disabling the
// audit trail endpoint.
func New(ledgerService Service, logger *slog.Logger, auditLog AuditLog) *Handler {
	return &Handler{
		logger:   logger,
		ledger:   ledgerService,
		auditLog: auditLog,
	}
}

// Register registers the ledger routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/batches", h.handleConsolidateBatch)
	r.Get("/vendors", h.handleListVendors)
	r.Get("/vendors/{gstin}", h.handleGetVendor)
	r.Get("/vendors/{gstin}/breaches", h.handleVendorBreaches)
	r.Get("/vendors/{gstin}/audit", h.handleVendorAudit)
	r.Get("/audit", h.handleRecentAudit)
	r.Get("/exposure", h.handleExposure)
}

// handleConsolidateBatch accepts a CSV transaction batch and merges it
// into the ledger.
func (h *Handler) handleConsolidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	batch, err := ingest.ParseCSV(r.Body)
	if err != nil {
		h.logger.WarnContext(ctx, "unreadable batch upload",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	ctx = requestcontext.WithBatchID(ctx, uuid.NewString())
	report, err := h.ledger.ConsolidateBatch(ctx, batch)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.WarnContext(ctx, "batch rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "batch consolidation failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to consolidate batch"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleListVendors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vendors, err := h.ledger.ListVendors(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list vendors",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list vendors"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newVendorListResponse(vendors))
}

func (h *Handler) handleGetVendor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gstin, ok := h.pathGSTIN(w, r)
	if !ok {
		return
	}

	v, err := h.ledger.GetVendor(ctx, gstin)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newVendorResponse(v))
}

func (h *Handler) handleVendorBreaches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gstin, ok := h.pathGSTIN(w, r)
	if !ok {
		return
	}

	breaches, err := h.ledger.VendorBreaches(ctx, gstin)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, breachResponse{
		GSTIN:    gstin.String(),
		Breaches: breaches,
		Count:    len(breaches),
	})
}

func (h *Handler) handleVendorAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.auditLog == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "audit trail not configured"))
		return
	}

	gstin, ok := h.pathGSTIN(w, r)
	if !ok {
		return
	}

	events, err := h.auditLog.List(ctx, gstin.String())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read audit trail",
			"request_id", middleware.GetRequestID(ctx),
			"gstin", gstin,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to read audit trail"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, auditResponse{
		GSTIN:  gstin.String(),
		Events: events,
		Count:  len(events),
	})
}

// handleRecentAudit returns the newest ledger mutations across all
// vendors; defaults to the last 50 events.
func (h *Handler) handleRecentAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.auditLog == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "audit trail not configured"))
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	events, err := h.auditLog.Recent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read audit trail",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to read audit trail"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, recentAuditResponse{
		Events: events,
		Count:  len(events),
	})
}

// handleExposure reports the ITC total at or above a tier; defaults to
// High Risk when no tier is given.
func (h *Handler) handleExposure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	minTier := vendor.TierHigh
	if raw := r.URL.Query().Get("tier"); raw != "" {
		tier, ok := parseTier(raw)
		if !ok {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown risk tier: "+raw))
			return
		}
		minTier = tier
	}

	report, err := h.ledger.ITCExposure(ctx, minTier)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to compute exposure",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to compute exposure"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) pathGSTIN(w http.ResponseWriter, r *http.Request) (domain.GSTIN, bool) {
	gstin, err := domain.ParseGSTIN(chi.URLParam(r, "gstin"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return gstin, true
}

func parseTier(raw string) (vendor.RiskTier, bool) {
	switch vendor.RiskTier(raw) {
	case vendor.TierLow, vendor.TierMedium, vendor.TierHigh, vendor.TierCritical:
		return vendor.RiskTier(raw), true
	}
	return "", false
}
