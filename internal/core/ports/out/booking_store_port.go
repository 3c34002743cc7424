package out

import (
	"context"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
)

type BookingStorePort interface {
	// Load never fails: corrupt persisted state yields an empty set.
	Load(ctx context.Context) []domain.Booking

	// Snapshot is Load that reports backend failures instead of hiding them.
	Snapshot(ctx context.Context) ([]domain.Booking, error)

	// Prune drops every booking that starts strictly before now and persists the remainder.
	Prune(ctx context.Context, now time.Time) ([]domain.Booking, error)

	// Add persists b unless its (date, slot) is taken, in which case domain.ErrAlreadyBooked is returned.
	Add(ctx context.Context, b domain.Booking) error
}
