package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"vendorwatch/internal/enrichment/models"
	"vendorwatch/internal/ledger"
	"vendorwatch/internal/vendor"
	"vendorwatch/pkg/domain"
	dErrors "vendorwatch/pkg/domain-errors"
	"vendorwatch/pkg/platform/audit"
	"vendorwatch/pkg/platform/audit/publisher"
	auditmemory "vendorwatch/pkg/platform/audit/store/memory"
	"vendorwatch/pkg/testutil"
)

const (
	knownGSTIN   = "27ABCDE1234F1Z5"
	unknownGSTIN = "29FGHIJ5678K1Z3"
)

type LedgerHandlerSuite struct {
	suite.Suite
	router *chi.Mux
	pub    *publisher.Publisher
}

func TestLedgerHandlerSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerSuite))
}

func (s *LedgerHandlerSuite) SetupTest() {
	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

	enricher := &stubEnricher{profiles: map[domain.GSTIN]*models.Profile{
		knownGSTIN: {
			Registry: models.RegistrySnapshot{
				GSTIN:            knownGSTIN,
				RegistrationDate: now.AddDate(0, 0, -400),
				Status:           "Active",
				GSTR1LastFiled:   "2026-07",
				GSTR3BLastFiled:  "2026-07",
			},
			Network: models.NetworkSnapshot{TotalEntities: 5},
		},
	}}

	store := auditmemory.NewInMemoryStore()
	s.pub = publisher.NewPublisher(store)

	svc, err := ledger.NewService(
		ledger.NewInMemoryStore(),
		enricher,
		fixedAttributes{premises: vendor.PremisesRegisteredOffice},
		ledger.WithClock(func() time.Time { return now }),
		ledger.WithAuditor(s.pub),
	)
	require.NoError(s.T(), err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(svc, logger, s.pub)

	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func (s *LedgerHandlerSuite) TearDownTest() {
	s.pub.Close()
}

func (s *LedgerHandlerSuite) uploadBatch(csv string) *ledger.Report {
	req := testutil.NewCSVRequest(s.T(), http.MethodPost, "/batches", csv)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	return testutil.UnmarshalResponse[ledger.Report](s.T(), rr)
}

func (s *LedgerHandlerSuite) TestConsolidateBatch() {
	report := s.uploadBatch(
		"vendor_name,gstin,transaction_amount,tax_amount,payment_mode\n" +
			"Apex Trading Co," + knownGSTIN + ",50000,4500,Bank Transfer\n" +
			"Apex Trading Co," + knownGSTIN + ",30000,2700,Cash\n")

	s.Equal(1, report.NewVendors)
	s.Zero(report.UpdatedVendors)
	s.Equal(1, report.LedgerSize)
	s.NotEmpty(report.BatchID)
}

func (s *LedgerHandlerSuite) TestConsolidateBatch_MissingColumns() {
	req := testutil.NewCSVRequest(s.T(), http.MethodPost, "/batches",
		"vendor_name,transaction_amount\nApex Trading Co,50000\n")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	testutil.AssertErrorCode(s.T(), rr, string(dErrors.CodeValidation))
}

func (s *LedgerHandlerSuite) TestConsolidateBatch_EmptyBody() {
	req := testutil.NewCSVRequest(s.T(), http.MethodPost, "/batches", "")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}

func (s *LedgerHandlerSuite) TestListVendors() {
	s.uploadBatch(
		"vendor_name,gstin,transaction_amount,tax_amount\n" +
			"Apex Trading Co," + knownGSTIN + ",50000,4500\n")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/vendors")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[vendorListResponse](s.T(), rr)
	s.Equal(1, resp.Count)
	s.Equal(knownGSTIN, resp.Vendors[0].GSTIN.String())
	s.Equal("#90EE90", resp.Vendors[0].TierColor)
}

func (s *LedgerHandlerSuite) TestGetVendor() {
	s.uploadBatch(
		"vendor_name,gstin,transaction_amount,tax_amount\n" +
			"Apex Trading Co," + knownGSTIN + ",50000,4500\n")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/vendors/"+knownGSTIN)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[vendorResponse](s.T(), rr)
	s.Equal("Apex Trading Co", resp.Name)
	s.Equal(vendor.TierLow, resp.RiskTier)
}

func (s *LedgerHandlerSuite) TestGetVendor_NotFound() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/vendors/"+unknownGSTIN)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	testutil.AssertErrorCode(s.T(), rr, string(dErrors.CodeNotFound))
}

func (s *LedgerHandlerSuite) TestGetVendor_MalformedGSTIN() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/vendors/not-a-gstin")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	testutil.AssertErrorCode(s.T(), rr, string(dErrors.CodeInvalidInput))
}

func (s *LedgerHandlerSuite) TestVendorBreaches() {
	s.uploadBatch(
		"vendor_name,gstin,transaction_amount,tax_amount,payment_mode\n" +
			"Apex Trading Co," + knownGSTIN + ",60000,5400,Cash\n")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/vendors/"+knownGSTIN+"/breaches")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[breachResponse](s.T(), rr)
	s.Equal(1, resp.Count)
	s.Contains(resp.Breaches[0], "Section 40A(3) Breach")
}

func (s *LedgerHandlerSuite) TestVendorAudit() {
	s.uploadBatch(
		"vendor_name,gstin,transaction_amount,tax_amount\n" +
			"Apex Trading Co," + knownGSTIN + ",50000,4500\n")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/vendors/"+knownGSTIN+"/audit")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[auditResponse](s.T(), rr)
	s.Equal(1, resp.Count)
	s.Equal(audit.ActionVendorCreated, resp.Events[0].Action)
}

func (s *LedgerHandlerSuite) TestRecentAudit() {
	s.uploadBatch(
		"vendor_name,gstin,transaction_amount,tax_amount\n" +
			"Apex Trading Co," + knownGSTIN + ",50000,4500\n")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/audit")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[recentAuditResponse](s.T(), rr)
	s.Equal(2, resp.Count)
	s.Equal(audit.ActionVendorCreated, resp.Events[0].Action)
	s.Equal(audit.ActionBatchConsolidated, resp.Events[1].Action)
}

func (s *LedgerHandlerSuite) TestRecentAudit_Limit() {
	s.uploadBatch(
		"vendor_name,gstin,transaction_amount,tax_amount\n" +
			"Apex Trading Co," + knownGSTIN + ",50000,4500\n")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/audit?limit=1")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[recentAuditResponse](s.T(), rr)
	s.Equal(1, resp.Count)
	s.Equal(audit.ActionBatchConsolidated, resp.Events[0].Action)
}

func (s *LedgerHandlerSuite) TestRecentAudit_BadLimit() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/audit?limit=zero")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	testutil.AssertErrorCode(s.T(), rr, string(dErrors.CodeInvalidInput))
}

func (s *LedgerHandlerSuite) TestExposure() {
	s.uploadBatch(
		"vendor_name,gstin,transaction_amount,tax_amount\n" +
			"Apex Trading Co," + knownGSTIN + ",50000,4500\n")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/exposure?tier=Medium+Risk")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[ledger.ExposureReport](s.T(), rr)
	s.Equal(vendor.TierMedium, resp.MinTier)
	s.Zero(resp.VendorCount, "a compliant vendor carries no exposure")
}

func (s *LedgerHandlerSuite) TestExposure_UnknownTier() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/exposure?tier=Extreme")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	testutil.AssertErrorCode(s.T(), rr, string(dErrors.CodeInvalidInput))
}

type stubEnricher struct {
	profiles map[domain.GSTIN]*models.Profile
}

func (s *stubEnricher) Lookup(_ context.Context, gstin domain.GSTIN) (*models.Profile, error) {
	profile, ok := s.profiles[gstin]
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnavailable, "registry enrichment failed")
	}
	copied := *profile
	return &copied, nil
}

type fixedAttributes struct {
	premises vendor.PremisesType
}

func (f fixedAttributes) Premises() vendor.PremisesType { return f.premises }
func (f fixedAttributes) MonthsNotFiled() int           { return 0 }
