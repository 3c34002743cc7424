package cache

import (
	"context"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/config"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheAdapter keeps the booked slots of recently viewed days. Entries expire after ttl so
// writes made by other processes become visible without an explicit invalidation.
type CacheAdapter struct {
	days   *expirable.LRU[domain.Date, []domain.Booking]
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) *CacheAdapter {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil
	}

	return NewDayCache(cfg.Cache.Size, cfg.Cache.TTL, logger)
}

func NewDayCache(size int, ttl time.Duration, logger out.LoggerPort) *CacheAdapter {
	return &CacheAdapter{
		days:   expirable.NewLRU[domain.Date, []domain.Booking](size, nil, ttl),
		logger: logger.WithModule("CacheAdapter"),
	}
}

func (c *CacheAdapter) GetDayBookings(ctx context.Context, date domain.Date) ([]domain.Booking, bool) {
	bookings, ok := c.days.Get(date)
	if !ok {
		c.logger.Debug("cache.day.get.miss", out.LogFields{
			"date": date.String(),
		})
		return nil, false
	}

	c.logger.Debug("cache.day.get.hit", out.LogFields{
		"date":     date.String(),
		"bookings": len(bookings),
	})
	return append([]domain.Booking(nil), bookings...), true
}

func (c *CacheAdapter) StoreDayBookings(ctx context.Context, date domain.Date, bookings []domain.Booking) {
	c.days.Add(date, append([]domain.Booking(nil), bookings...))
}

func (c *CacheAdapter) InvalidateDay(ctx context.Context, date domain.Date) {
	c.days.Remove(date)
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.days.Purge()
}
