package out

import (
	"context"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
)

type AvailabilityCachePort interface {
	// Booked slots cached per day
	GetDayBookings(ctx context.Context, date domain.Date) ([]domain.Booking, bool)
	StoreDayBookings(ctx context.Context, date domain.Date, bookings []domain.Booking)
	InvalidateDay(ctx context.Context, date domain.Date)
	InvalidateAll(ctx context.Context)
}
