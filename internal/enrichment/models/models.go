// Package models defines the snapshot records returned by external
// registry providers.
package models

import "time"

// RegistrySnapshot is the GSTN registry's view of a taxpayer at lookup
// time.
type RegistrySnapshot struct {
	GSTIN              string    `json:"gstin"`
	LegalName          string    `json:"legal_name"`
	TradeName          string    `json:"trade_name"`
	RegistrationDate   time.Time `json:"registration_date"`
	Status             string    `json:"status"`
	TaxpayerType       string    `json:"taxpayer_type"`
	GSTR1LastFiled     string    `json:"gstr1_last_filed"`
	GSTR3BLastFiled    string    `json:"gstr3b_last_filed"`
	CenterJurisdiction string    `json:"center_jurisdiction"`
	StateJurisdiction  string    `json:"state_jurisdiction"`
	CheckedAt          time.Time `json:"checked_at"`
}

// NotFiledMarker is the literal the registry reports for a return that
// was never filed; any other last-filed value means a filing exists.
const NotFiledMarker = "Not Filed"

// NetworkSnapshot is the corporate-affairs view of the controlling
// person behind a GSTIN: how many other entities the director is linked
// to and in what state.
type NetworkSnapshot struct {
	PAN                  string    `json:"pan"`
	DirectorName         string    `json:"director_name"`
	DIN                  string    `json:"din"`
	TotalEntities        int       `json:"total_linked_entities"`
	ActiveEntities       int       `json:"active_linked_entities"`
	DissolvedEntities    int       `json:"dissolved_linked_entities"`
	RecentIncorporations int       `json:"recent_incorporations"`
	FlaggedEntities      int       `json:"flagged_entities"`
	ComplianceStatus     string    `json:"compliance_status"`
	DirectorSince        time.Time `json:"director_since"`
	CheckedAt            time.Time `json:"checked_at"`
}

// Profile bundles both snapshots for one GSTIN; the unit the enrichment
// cache stores.
type Profile struct {
	Registry RegistrySnapshot `json:"registry"`
	Network  NetworkSnapshot  `json:"network"`
}
