package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/out/logger"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/config"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var june2 = domain.Date{Year: 2025, Month: time.June, Day: 2}

func TestCacheAdapter_StoreGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewDayCache(10, time.Minute, logger.NopLogger{})

	_, ok := c.GetDayBookings(ctx, june2)
	assert.False(t, ok)

	stored := []domain.Booking{{Date: june2, Slot: "10:00 AM", ClientName: "Ann"}}
	c.StoreDayBookings(ctx, june2, stored)

	got, ok := c.GetDayBookings(ctx, june2)
	require.True(t, ok)
	assert.Equal(t, stored, got)

	// callers cannot mutate the cached slice
	got[0].ClientName = "Mallory"
	again, _ := c.GetDayBookings(ctx, june2)
	assert.Equal(t, "Ann", again[0].ClientName)

	c.InvalidateDay(ctx, june2)
	_, ok = c.GetDayBookings(ctx, june2)
	assert.False(t, ok)
}

func TestCacheAdapter_EmptyDayIsCached(t *testing.T) {
	ctx := context.Background()
	c := NewDayCache(10, time.Minute, logger.NopLogger{})

	c.StoreDayBookings(ctx, june2, []domain.Booking{})
	got, ok := c.GetDayBookings(ctx, june2)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestCacheAdapter_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	c := NewDayCache(10, time.Minute, logger.NopLogger{})

	c.StoreDayBookings(ctx, june2, nil)
	c.StoreDayBookings(ctx, june2.AddDays(1), nil)
	c.InvalidateAll(ctx)

	_, ok := c.GetDayBookings(ctx, june2)
	assert.False(t, ok)
	_, ok = c.GetDayBookings(ctx, june2.AddDays(1))
	assert.False(t, ok)
}

func TestCacheAdapter_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewDayCache(10, 20*time.Millisecond, logger.NopLogger{})

	c.StoreDayBookings(ctx, june2, nil)
	assert.Eventually(t, func() bool {
		_, ok := c.GetDayBookings(ctx, june2)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNewCacheAdapter_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	assert.Nil(t, NewCacheAdapter(cfg, logger.NopLogger{}))
}
