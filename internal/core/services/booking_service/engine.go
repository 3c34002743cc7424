package booking_service

import (
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/catalog"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
)

// Engine computes slot status from the catalog and a booking set. It performs no I/O.
type Engine struct {
	catalog *catalog.Catalog
}

func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

func (e *Engine) StatusOf(date domain.Date, slot domain.TimeSlot, bookings domain.BookingSet) domain.SlotStatus {
	if bookings.Has(date, slot) {
		return domain.SlotStatusBooked
	}
	return domain.SlotStatusFree
}

// IsSelectable reports whether slot on date can still be booked at now: it must be free,
// start strictly after now, belong to the catalog and not fall on a closed weekday.
func (e *Engine) IsSelectable(date domain.Date, slot domain.TimeSlot, bookings domain.BookingSet, now time.Time) bool {
	if e.catalog.IsClosed(date) {
		return false
	}
	if e.StatusOf(date, slot, bookings) == domain.SlotStatusBooked {
		return false
	}

	startsAt, ok := e.catalog.Resolve(date, slot)
	if !ok {
		return false
	}
	return startsAt.After(now)
}

func (e *Engine) DayAvailability(date domain.Date, bookings domain.BookingSet, now time.Time) []domain.SlotAvailability {
	slots := e.catalog.AllSlots()
	result := make([]domain.SlotAvailability, 0, len(slots))

	for _, slot := range slots {
		startsAt, _ := e.catalog.Resolve(date, slot)
		result = append(result, domain.SlotAvailability{
			Slot:       slot,
			StartsAt:   startsAt,
			Status:     e.StatusOf(date, slot, bookings),
			Selectable: e.IsSelectable(date, slot, bookings, now),
		})
	}

	return result
}
