package usecase

import (
	"context"
	"time"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/cache"
)

const statsTTL = 5 * time.Minute

type StatsUsecase struct {
	repo  domain.StatsRepository
	cache cache.CacheService
}

func NewStatsUsecase(repo domain.StatsRepository, cache cache.CacheService) *StatsUsecase {
	return &StatsUsecase{repo: repo, cache: cache}
}

// GetCatalogStats returns the dashboard counters, cached briefly and dropped on every catalog write.
func (uc *StatsUsecase) GetCatalogStats(ctx context.Context) (*domain.CatalogStats, error) {
	var stats domain.CatalogStats
	if uc.cache.Get(ctx, keyCatalogStats, &stats) {
		return &stats, nil
	}

	s, err := uc.repo.CatalogStats(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(ctx, keyCatalogStats, s, statsTTL)
	return s, nil
}
