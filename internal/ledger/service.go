// Package ledger consolidates transaction batches into the vendor
// registry: one record per GSTIN, additive counters, risk recomputed on
// every mutation, always readable in descending risk order.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vendorwatch/internal/enrichment/models"
	"vendorwatch/internal/ingest"
	"vendorwatch/internal/ledger/metrics"
	"vendorwatch/internal/risk"
	riskmetrics "vendorwatch/internal/risk/metrics"
	"vendorwatch/internal/vendor"
	"vendorwatch/pkg/domain"
	dErrors "vendorwatch/pkg/domain-errors"
	"vendorwatch/pkg/platform/audit"
	"vendorwatch/pkg/platform/sentinel"
	"vendorwatch/pkg/requestcontext"
)

// Enricher resolves registry and director-network signals for a GSTIN
// that is entering the ledger for the first time.
type Enricher interface {
	Lookup(ctx context.Context, gstin domain.GSTIN) (*models.Profile, error)
}

// Auditor records ledger mutations. The publisher package provides the
// production implementation.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Report summarizes one consolidation run.
type Report struct {
	BatchID        string `json:"batch_id"`
	NewVendors     int    `json:"new_vendors"`
	UpdatedVendors int    `json:"updated_vendors"`
	LedgerSize     int    `json:"ledger_size"`
	// PendingEnrichment lists GSTINs whose rows were skipped because a
	// registry lookup failed; resubmitting the batch retries them.
	PendingEnrichment []string `json:"pending_enrichment,omitempty"`
}

// ExposureReport is the ITC total at risk at or above a tier.
type ExposureReport struct {
	MinTier     vendor.RiskTier `json:"min_tier"`
	VendorCount int             `json:"vendor_count"`
	TotalITC    decimal.Decimal `json:"total_itc_exposure"`
}

// Service is the ledger consolidator.
type Service struct {
	store    Store
	enricher Enricher
	attrs    AttributeSource
	auditor  Auditor
	logger   *slog.Logger
	metrics  *metrics.Metrics
	riskObs  *riskmetrics.Metrics
	clock    func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithRiskMetrics publishes a risk observation for every recompute the
// consolidator performs.
func WithRiskMetrics(m *riskmetrics.Metrics) Option {
	return func(s *Service) { s.riskObs = m }
}

func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.auditor = a }
}

// WithClock fixes the time source for tests. Registration age is derived
// against this clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

func NewService(store Store, enricher Enricher, attrs AttributeSource, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if enricher == nil {
		return nil, fmt.Errorf("enricher is required")
	}
	if attrs == nil {
		return nil, fmt.Errorf("attribute source is required")
	}
	svc := &Service{
		store:    store,
		enricher: enricher,
		attrs:    attrs,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ConsolidateBatch merges one transaction batch into the ledger.
//
// Rows for a known GSTIN add to its counters and take its name; rows for
// a new GSTIN trigger enrichment and insert a fresh record. Risk is
// recomputed after every mutation. A schema failure rejects the whole
// batch; an enrichment failure skips only that vendor's rows.
func (s *Service) ConsolidateBatch(ctx context.Context, batch *ingest.Batch) (Report, error) {
	start := s.clock()

	summaries, err := ingest.Aggregate(batch)
	if err != nil {
		s.metrics.ObserveBatch("rejected", 0, 0)
		return Report{}, err
	}

	batchID := requestcontext.BatchID(ctx)
	if batchID == "" {
		batchID = uuid.NewString()
	}
	report := Report{BatchID: batchID}

	for _, summary := range summaries {
		existing, err := s.store.FindByGSTIN(ctx, summary.GSTIN)
		switch {
		case err == nil:
			if err := s.mergeExisting(ctx, existing, summary, batchID); err != nil {
				return Report{}, err
			}
			report.UpdatedVendors++
			s.metrics.IncrementMutation("updated")

		case dErrors.Is(err, sentinel.ErrNotFound):
			created, err := s.createVendor(ctx, summary, batchID)
			if err != nil {
				return Report{}, err
			}
			if !created {
				report.PendingEnrichment = append(report.PendingEnrichment, summary.GSTIN.String())
				s.metrics.IncrementMutation("skipped")
				continue
			}
			report.NewVendors++
			s.metrics.IncrementMutation("created")

		default:
			return Report{}, dErrors.Wrap(err, dErrors.CodeInternal, "ledger lookup failed")
		}
	}

	size, err := s.store.Len(ctx)
	if err != nil {
		return Report{}, dErrors.Wrap(err, dErrors.CodeInternal, "ledger size lookup failed")
	}
	report.LedgerSize = size

	s.emit(ctx, audit.Event{
		Action:  audit.ActionBatchConsolidated,
		BatchID: batchID,
		Detail:  fmt.Sprintf("%d new, %d updated, %d pending enrichment", report.NewVendors, report.UpdatedVendors, len(report.PendingEnrichment)),
	})
	s.metrics.ObserveBatch("ok", len(summaries), s.clock().Sub(start))
	s.log(ctx, "batch consolidated",
		"batch_id", batchID,
		"rows", len(summaries),
		"new", report.NewVendors,
		"updated", report.UpdatedVendors,
		"pending_enrichment", len(report.PendingEnrichment),
	)
	return report, nil
}

func (s *Service) mergeExisting(ctx context.Context, v vendor.Vendor, summary ingest.VendorSummary, batchID string) error {
	v.TransactionCount += summary.TransactionCount
	v.ITCAmount = v.ITCAmount.Add(summary.ITCAmount)
	v.CashPayments = v.CashPayments.Add(summary.CashAmount)
	v.Name = summary.VendorName

	s.rescore(&v)

	if err := s.store.Update(ctx, v); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "ledger update failed")
	}
	s.emit(ctx, audit.Event{
		Action:     audit.ActionVendorUpdated,
		GSTIN:      v.GSTIN.String(),
		VendorName: v.Name,
		BatchID:    batchID,
		RequestID:  requestcontext.RequestID(ctx),
		RiskScore:  v.RiskScore,
		RiskTier:   string(v.RiskTier),
	})
	return nil
}

// createVendor returns (false, nil) when enrichment failed and the row
// was skipped.
func (s *Service) createVendor(ctx context.Context, summary ingest.VendorSummary, batchID string) (bool, error) {
	profile, err := s.enricher.Lookup(ctx, summary.GSTIN)
	if err != nil {
		s.logWarn(ctx, "enrichment failed, skipping vendor",
			"gstin", summary.GSTIN,
			"batch_id", batchID,
			"error", err,
		)
		return false, nil
	}

	v := vendor.Vendor{
		GSTIN:               summary.GSTIN,
		Name:                summary.VendorName,
		RegistrationAgeDays: s.registrationAge(profile.Registry.RegistrationDate),
		Premises:            s.attrs.Premises(),
		DirectorEntityCount: profile.Network.TotalEntities,
		GSTR1Status:         gstr1Status(profile.Registry.GSTR1LastFiled),
		GSTR3BStatus:        gstr3bStatus(profile.Registry.GSTR3BLastFiled),
		MonthsNotFiled:      s.attrs.MonthsNotFiled(),
		TransactionCount:    summary.TransactionCount,
		ITCAmount:           summary.ITCAmount,
		CashPayments:        summary.CashAmount,
	}
	s.rescore(&v)

	if err := s.store.Insert(ctx, v); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "ledger insert failed")
	}
	s.emit(ctx, audit.Event{
		Action:     audit.ActionVendorCreated,
		GSTIN:      v.GSTIN.String(),
		VendorName: v.Name,
		BatchID:    batchID,
		RequestID:  requestcontext.RequestID(ctx),
		RiskScore:  v.RiskScore,
		RiskTier:   string(v.RiskTier),
	})
	return true, nil
}

// ListVendors returns the full ledger in descending risk order.
func (s *Service) ListVendors(ctx context.Context) ([]vendor.Vendor, error) {
	return s.store.List(ctx)
}

// GetVendor returns one ledger record.
func (s *Service) GetVendor(ctx context.Context, gstin domain.GSTIN) (vendor.Vendor, error) {
	v, err := s.store.FindByGSTIN(ctx, gstin)
	if err != nil {
		if dErrors.Is(err, sentinel.ErrNotFound) {
			return vendor.Vendor{}, dErrors.New(dErrors.CodeNotFound, "vendor not found")
		}
		return vendor.Vendor{}, dErrors.Wrap(err, dErrors.CodeInternal, "ledger lookup failed")
	}
	return v, nil
}

// VendorBreaches returns the statutory compliance breaches for a vendor.
func (s *Service) VendorBreaches(ctx context.Context, gstin domain.GSTIN) ([]string, error) {
	v, err := s.GetVendor(ctx, gstin)
	if err != nil {
		return nil, err
	}
	return risk.DetectBreaches(v), nil
}

// ITCExposure totals the claimed input tax credit across vendors at or
// above the given tier.
func (s *Service) ITCExposure(ctx context.Context, minTier vendor.RiskTier) (ExposureReport, error) {
	vendors, err := s.store.List(ctx)
	if err != nil {
		return ExposureReport{}, dErrors.Wrap(err, dErrors.CodeInternal, "ledger list failed")
	}
	total, count := risk.Exposure(vendors, minTier)
	return ExposureReport{MinTier: minTier, VendorCount: count, TotalITC: total}, nil
}

func (s *Service) rescore(v *vendor.Vendor) {
	assessment := risk.Assess(*v)
	v.RiskScore = assessment.Score
	v.RiskFactors = assessment.Factors
	v.RiskTier = risk.Classify(assessment.Score)
	s.riskObs.ObserveAssessment(assessment.Score, string(v.RiskTier), assessment.Triggered)
}

func (s *Service) registrationAge(registered time.Time) int {
	age := int(s.clock().Sub(registered).Hours() / 24)
	if age < 0 {
		age = 0
	}
	return age
}

// gstr1Status maps a registry last-filed marker to a filing status. Only
// the literal not-filed marker means unfiled; any period string counts
// as filed. Nil returns are declared on the record itself, not derived
// from the registry.
func gstr1Status(lastFiled string) vendor.GSTR1Status {
	if lastFiled == models.NotFiledMarker {
		return vendor.GSTR1NotFiled
	}
	return vendor.GSTR1Filed
}

func gstr3bStatus(lastFiled string) vendor.GSTR3BStatus {
	if lastFiled == models.NotFiledMarker {
		return vendor.GSTR3BNotFiled
	}
	return vendor.GSTR3BFiled
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logWarn(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}
