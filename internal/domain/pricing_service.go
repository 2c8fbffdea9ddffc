package domain

import (
	"context"
	"sync"
	"time"

	"github.com/AlchemyApps/mindScript-sub004/internal/observability"
)

// DefaultPricingCacheTTL bounds staleness of admin price changes. One
// query pair per TTL per process regardless of request volume.
const DefaultPricingCacheTTL = 60 * time.Second

// pricingSnapshot pairs a config with the time it was fetched. The
// cache is replaced wholesale, never mutated in place.
type pricingSnapshot struct {
	config    *PricingConfig
	fetchedAt time.Time
}

// PricingService aggregates the admin-configurable price points and COGS
// rates from the two backing tables into one immutable snapshot, cached
// in memory, with hardcoded defaults on fetch failure.
type PricingService struct {
	prices   PriceConfigStore
	settings SettingsStore
	ttl      time.Duration
	now      func() time.Time

	mu     sync.RWMutex
	cached *pricingSnapshot
}

// NewPricingService creates a pricing service with the default cache
// TTL and wall clock (DI constructor).
func NewPricingService(prices PriceConfigStore, settings SettingsStore) *PricingService {
	return NewPricingServiceWithClock(prices, settings, DefaultPricingCacheTTL, time.Now)
}

// NewPricingServiceWithClock creates a pricing service with an explicit
// TTL and clock, so the staleness window and cache identity are
// testable.
func NewPricingServiceWithClock(
	prices PriceConfigStore,
	settings SettingsStore,
	ttl time.Duration,
	now func() time.Time,
) *PricingService {
	return &PricingService{
		prices:   prices,
		settings: settings,
		ttl:      ttl,
		now:      now,
		mu:       sync.RWMutex{},
		cached:   nil,
	}
}

// GetConfig returns the current pricing snapshot. It never fails:
// backing-table outages degrade to default pricing rather than breaking
// the caller's checkout flow. Within the TTL the same snapshot is
// returned without I/O.
func (s *PricingService) GetConfig(ctx context.Context) *PricingConfig {
	if cfg := s.freshConfig(); cfg != nil {
		return cfg
	}

	priceValues, settingValues, err := s.fetch(ctx)
	if err != nil {
		// Transient outage: serve defaults, leave the cache untouched so
		// the next call retries the fetch.
		observability.FromContext(ctx).Error("pricing config fetch failed, serving defaults",
			observability.Error(err))
		return DefaultPricingConfig()
	}

	cfg := mergePricingConfig(priceValues, settingValues)

	s.mu.Lock()
	s.cached = &pricingSnapshot{config: cfg, fetchedAt: s.now()}
	s.mu.Unlock()

	return cfg
}

// freshConfig returns the cached snapshot if it is still within the TTL.
// Concurrent callers racing past an expired cache may both refetch; both
// converge on the same data, so the extra round trip is harmless.
func (s *PricingService) freshConfig() *PricingConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cached == nil {
		return nil
	}

	if s.now().Sub(s.cached.fetchedAt) >= s.ttl {
		return nil
	}

	return s.cached.config
}

// fetch issues the two backing-table reads concurrently.
func (s *PricingService) fetch(ctx context.Context) (map[string]float64, map[string]float64, error) {
	var (
		wg            sync.WaitGroup
		priceValues   map[string]float64
		settingValues map[string]float64
		priceErr      error
		settingErr    error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		priceValues, priceErr = s.prices.ActiveValues(ctx)
	}()

	go func() {
		defer wg.Done()
		settingValues, settingErr = s.settings.Values(ctx, SettingEditFeeCents, SettingFreeEditLimit)
	}()

	wg.Wait()

	if priceErr != nil {
		return nil, nil, priceErr
	}
	if settingErr != nil {
		return nil, nil, settingErr
	}

	return priceValues, settingValues, nil
}
