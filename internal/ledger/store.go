package ledger

import (
	"context"

	"vendorwatch/internal/vendor"
	"vendorwatch/pkg/domain"
)

// Store holds the consolidated vendor ledger. Implementations return
// sentinel.ErrNotFound for unknown GSTINs and sentinel.ErrConflict for
// duplicate inserts.
type Store interface {
	Insert(ctx context.Context, v vendor.Vendor) error
	FindByGSTIN(ctx context.Context, gstin domain.GSTIN) (vendor.Vendor, error)
	Update(ctx context.Context, v vendor.Vendor) error

	// List returns a snapshot ordered by risk score descending. Vendors
	// with equal scores keep their insertion order.
	List(ctx context.Context) ([]vendor.Vendor, error)
	Len(ctx context.Context) (int, error)
}
