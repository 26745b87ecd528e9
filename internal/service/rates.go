package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Dan9191/irpf-calculator/internal/models"
	"github.com/sirupsen/logrus"
)

// RateSource fetches fresh exchange rates
type RateSource interface {
	FetchRates(ctx context.Context) (*models.ExchangeRates, error)
}

// RateStore persists rate snapshots across restarts
type RateStore interface {
	SaveRates(ctx context.Context, rates *models.ExchangeRates) error
	LatestRates(ctx context.Context) (*models.ExchangeRates, error)
}

// RateCache keeps the last good exchange rates in memory
type RateCache struct {
	mu     sync.RWMutex
	rates  *models.ExchangeRates
	source RateSource
	store  RateStore
	log    *logrus.Logger
}

// NewRateCache creates an empty cache. store may be nil.
func NewRateCache(source RateSource, store RateStore, log *logrus.Logger) *RateCache {
	return &RateCache{source: source, store: store, log: log}
}

// Load seeds the cache from the latest stored snapshot
func (c *RateCache) Load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	rates, err := c.store.LatestRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored rates: %w", err)
	}
	if rates == nil {
		c.log.Info("No stored exchange rates")
		return nil
	}

	c.set(rates)
	c.log.WithField("date", rates.Date.Format("2006-01-02")).Info("Loaded stored exchange rates")
	return nil
}

// Refresh fetches new rates. On failure the previous rates stay in place.
func (c *RateCache) Refresh(ctx context.Context) error {
	if c.source == nil {
		return models.ErrRatesUnavailable
	}

	rates, err := c.source.FetchRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh exchange rates: %w", err)
	}
	c.set(rates)

	if c.store != nil {
		if err := c.store.SaveRates(ctx, rates); err != nil {
			// the fresh rates are already in memory
			c.log.Warnf("Failed to persist exchange rates: %v", err)
		}
	}
	return nil
}

// Current returns a copy of the cached rates, or nil if none were ever loaded
func (c *RateCache) Current() *models.ExchangeRates {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.rates == nil {
		return nil
	}
	rates := *c.rates
	return &rates
}

func (c *RateCache) set(rates *models.ExchangeRates) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := *rates
	c.rates = &snapshot
}
