package handler

import (
	"vendorwatch/internal/vendor"
	"vendorwatch/pkg/platform/audit"
)

// vendorResponse is a ledger record plus the display color its tier
// maps to.
type vendorResponse struct {
	vendor.Vendor
	TierColor string `json:"risk_tier_color"`
}

func newVendorResponse(v vendor.Vendor) vendorResponse {
	return vendorResponse{Vendor: v, TierColor: v.RiskTier.Color()}
}

type vendorListResponse struct {
	Vendors []vendorResponse `json:"vendors"`
	Count   int              `json:"count"`
}

func newVendorListResponse(vendors []vendor.Vendor) vendorListResponse {
	out := make([]vendorResponse, len(vendors))
	for i, v := range vendors {
		out[i] = newVendorResponse(v)
	}
	return vendorListResponse{Vendors: out, Count: len(out)}
}

type breachResponse struct {
	GSTIN    string   `json:"gstin"`
	Breaches []string `json:"breaches"`
	Count    int      `json:"count"`
}

type auditResponse struct {
	GSTIN  string        `json:"gstin"`
	Events []audit.Event `json:"events"`
	Count  int           `json:"count"`
}

type recentAuditResponse struct {
	Events []audit.Event `json:"events"`
	Count  int           `json:"count"`
}
