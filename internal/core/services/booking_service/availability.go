package booking_service

import (
	"context"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
)

func (s *BookingService) DayAvailability(ctx context.Context, date domain.Date) ([]domain.SlotAvailability, error) {
	if date.IsZero() {
		return nil, domain.ErrStepIncomplete
	}
	return s.engine.DayAvailability(date, s.dayBookings(ctx, date), s.now()), nil
}

func (s *BookingService) IsSelectable(ctx context.Context, date domain.Date, slot domain.TimeSlot) (bool, error) {
	if date.IsZero() || slot.IsEmpty() {
		return false, domain.ErrStepIncomplete
	}
	return s.engine.IsSelectable(date, slot, s.dayBookings(ctx, date), s.now()), nil
}

// dayBookings serves reads from the cache when it is enabled. Writes never go through here.
func (s *BookingService) dayBookings(ctx context.Context, date domain.Date) domain.BookingSet {
	if s.cache != nil {
		if bookings, ok := s.cache.GetDayBookings(ctx, date); ok {
			return domain.NewBookingSet(bookings)
		}
	}

	bookings, err := s.store.Snapshot(ctx)
	if err != nil {
		// nothing is cached so the day is reread once the backend is back
		s.logger.Warn("availability.day.read_failed", out.LogFields{
			"date":  date.String(),
			"error": err.Error(),
		})
		return domain.BookingSet{}
	}

	day := domain.NewBookingSet(bookings).OnDate(date)

	if s.cache != nil {
		s.cache.StoreDayBookings(ctx, date, day)
	}

	s.logger.Debug("availability.day.loaded", out.LogFields{
		"date":     date.String(),
		"bookings": len(day),
	})

	return domain.NewBookingSet(day)
}
