// Package providers defines the interfaces external registry sources
// must implement, plus a normalized failure taxonomy. The in-repo
// implementations are synthetic; a production deployment swaps in real
// GSTN and MCA API clients behind the same interfaces.
package providers

import (
	"context"

	"vendorwatch/internal/enrichment/models"
	"vendorwatch/pkg/domain"
)

// RegistryProvider looks up taxpayer registration state by GSTIN.
type RegistryProvider interface {
	// ID returns a unique identifier for this provider instance.
	ID() string

	// FetchRegistration returns the registry snapshot for a GSTIN.
	FetchRegistration(ctx context.Context, gstin domain.GSTIN) (*models.RegistrySnapshot, error)

	// Health checks if the provider is available.
	Health(ctx context.Context) error
}

// NetworkProvider looks up the director-network snapshot for the entity
// behind a GSTIN.
type NetworkProvider interface {
	ID() string

	// FetchNetwork returns the corporate-network snapshot for a GSTIN.
	FetchNetwork(ctx context.Context, gstin domain.GSTIN) (*models.NetworkSnapshot, error)

	Health(ctx context.Context) error
}
