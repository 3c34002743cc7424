package booking_service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
)

func (s *BookingService) Bookings(ctx context.Context) []domain.Booking {
	bookings := s.store.Load(ctx)

	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if a.Date != b.Date {
			return a.Date.In(s.catalog.Location()).Before(b.Date.In(s.catalog.Location()))
		}
		ai, _ := s.catalog.Index(a.Slot)
		bi, _ := s.catalog.Index(b.Slot)
		return ai < bi
	})

	return bookings
}

// Prune removes expired bookings and returns how many were dropped.
func (s *BookingService) Prune(ctx context.Context) (int, error) {
	before := len(s.store.Load(ctx))

	kept, err := s.store.Prune(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("booking.prune.failed: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}

	removed := before - len(kept)
	if removed < 0 {
		removed = 0
	}

	s.logger.Info("booking.prune.completed", out.LogFields{
		"removed":   removed,
		"remaining": len(kept),
	})

	return removed, nil
}
