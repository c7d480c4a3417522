//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vendorwatch/internal/enrichment/cache"
	"vendorwatch/internal/enrichment/models"
	"vendorwatch/pkg/domain"
	"vendorwatch/pkg/platform/sentinel"
	"vendorwatch/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.Redis
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = cache.NewRedis(s.redis.Client, 5*time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestProfileRoundTrip() {
	ctx := context.Background()
	gstin := domain.GSTIN("27ABCDE1234F1Z5")

	profile := &models.Profile{
		Registry: models.RegistrySnapshot{
			GSTIN:           gstin.String(),
			LegalName:       "Ruby Traders",
			GSTR1LastFiled:  "2024-10",
			GSTR3BLastFiled: models.NotFiledMarker,
		},
		Network: models.NetworkSnapshot{TotalEntities: 12, ComplianceStatus: "Compliant"},
	}

	s.Require().NoError(s.cache.Save(ctx, gstin, profile))

	found, err := s.cache.Find(ctx, gstin)
	s.Require().NoError(err)
	s.Equal("Ruby Traders", found.Registry.LegalName)
	s.Equal(models.NotFiledMarker, found.Registry.GSTR3BLastFiled)
	s.Equal(12, found.Network.TotalEntities)
}

func (s *RedisCacheSuite) TestMissReturnsNotFound() {
	_, err := s.cache.Find(context.Background(), domain.GSTIN("29FGHIJ5678K2Z9"))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisCacheSuite) TestExpiredEntriesAreMisses() {
	ctx := context.Background()
	gstin := domain.GSTIN("27ABCDE1234F1Z5")

	short := cache.NewRedis(s.redis.Client, time.Millisecond)
	s.Require().NoError(short.Save(ctx, gstin, &models.Profile{}))

	time.Sleep(50 * time.Millisecond)

	_, err := short.Find(ctx, gstin)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
