package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorwatch/internal/enrichment/models"
	"vendorwatch/pkg/domain"
	"vendorwatch/pkg/platform/sentinel"
)

func TestInMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewInMemory(5 * time.Minute)
	gstin := domain.GSTIN("27ABCDE1234F1Z5")

	_, err := c.Find(ctx, gstin)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	profile := &models.Profile{
		Registry: models.RegistrySnapshot{GSTIN: gstin.String(), LegalName: "Ruby Traders"},
		Network:  models.NetworkSnapshot{TotalEntities: 7},
	}
	require.NoError(t, c.Save(ctx, gstin, profile))

	found, err := c.Find(ctx, gstin)
	require.NoError(t, err)
	assert.Equal(t, "Ruby Traders", found.Registry.LegalName)
	assert.Equal(t, 7, found.Network.TotalEntities)
}

func TestInMemory_ReturnsACopy(t *testing.T) {
	ctx := context.Background()
	c := NewInMemory(5 * time.Minute)
	gstin := domain.GSTIN("27ABCDE1234F1Z5")

	require.NoError(t, c.Save(ctx, gstin, &models.Profile{
		Network: models.NetworkSnapshot{TotalEntities: 7},
	}))

	first, err := c.Find(ctx, gstin)
	require.NoError(t, err)
	first.Network.TotalEntities = 99

	second, err := c.Find(ctx, gstin)
	require.NoError(t, err)
	assert.Equal(t, 7, second.Network.TotalEntities, "mutating a result must not corrupt the cache")
}

func TestInMemory_ExpiredEntriesAreMisses(t *testing.T) {
	ctx := context.Background()
	c := NewInMemory(time.Nanosecond)
	gstin := domain.GSTIN("27ABCDE1234F1Z5")

	require.NoError(t, c.Save(ctx, gstin, &models.Profile{}))
	time.Sleep(time.Millisecond)

	_, err := c.Find(ctx, gstin)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemory_NilProfileIsNoOp(t *testing.T) {
	ctx := context.Background()
	c := NewInMemory(5 * time.Minute)
	gstin := domain.GSTIN("27ABCDE1234F1Z5")

	require.NoError(t, c.Save(ctx, gstin, nil))
	_, err := c.Find(ctx, gstin)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
