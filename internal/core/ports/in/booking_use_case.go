package in

import (
	"context"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
)

type AvailabilityUseCase interface {
	Services() []domain.Service
	AllSlots() []domain.TimeSlot
	Today() domain.Date

	// DayAvailability lists every catalog slot of date in catalog order.
	DayAvailability(ctx context.Context, date domain.Date) ([]domain.SlotAvailability, error)
	IsSelectable(ctx context.Context, date domain.Date, slot domain.TimeSlot) (bool, error)
}

type BookingUseCase interface {
	AvailabilityUseCase

	// OpenSession prunes expired bookings and returns the ones still standing.
	OpenSession(ctx context.Context) ([]domain.Booking, error)
	ValidateContact(contact domain.Contact) error
	Submit(ctx context.Context, state domain.WizardState) (domain.Booking, error)
}

type BookingAdminUseCase interface {
	Bookings(ctx context.Context) []domain.Booking
	Prune(ctx context.Context) (int, error)
}
