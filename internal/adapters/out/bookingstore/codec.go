package bookingstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/json_types"
)

// CurrentVersion of the persisted layout. Version 0 is the legacy bare array.
const CurrentVersion = 1

type persistedBooking struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
	Name    string `json:"name"`
}

type persistedEnvelope struct {
	Version  int                `json:"version"`
	Bookings []persistedBooking `json:"bookings"`
}

type decodeResult struct {
	bookings []domain.Booking
	version  int
	// duplicates dropped while decoding legacy data
	duplicates int
}

// encode writes the current layout. Dates are stored as RFC3339 date-times at local midnight.
func encode(bookings []domain.Booking, loc *time.Location) ([]byte, error) {
	envelope := persistedEnvelope{
		Version:  CurrentVersion,
		Bookings: make([]persistedBooking, 0, len(bookings)),
	}
	for _, b := range bookings {
		envelope.Bookings = append(envelope.Bookings, persistedBooking{
			Date:    b.Date.In(loc).Format(time.RFC3339),
			Time:    string(b.Slot),
			Service: b.ServiceName,
			Name:    b.ClientName,
		})
	}
	return json.Marshal(envelope)
}

func decode(data []byte, loc *time.Location) (decodeResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return decodeResult{bookings: []domain.Booking{}, version: CurrentVersion}, nil
	}

	var (
		entries []persistedBooking
		version int
	)

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return decodeResult{}, fmt.Errorf("%w: %v", domain.ErrCorruptPersistedState, err)
		}
	case '{':
		var envelope persistedEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return decodeResult{}, fmt.Errorf("%w: %v", domain.ErrCorruptPersistedState, err)
		}
		if envelope.Version != CurrentVersion {
			return decodeResult{}, fmt.Errorf("%w: unsupported version %d", domain.ErrCorruptPersistedState, envelope.Version)
		}
		entries = envelope.Bookings
		version = envelope.Version
	default:
		return decodeResult{}, fmt.Errorf("%w: unexpected leading byte %q", domain.ErrCorruptPersistedState, trimmed[0])
	}

	result := decodeResult{
		bookings: make([]domain.Booking, 0, len(entries)),
		version:  version,
	}
	seen := make(map[domain.BookingKey]struct{}, len(entries))

	for i, entry := range entries {
		if entry.Time == "" {
			return decodeResult{}, fmt.Errorf("%w: entry %d has no time", domain.ErrCorruptPersistedState, i)
		}
		date, err := decodeDate(entry.Date, version, loc)
		if err != nil {
			return decodeResult{}, fmt.Errorf("%w: entry %d: %v", domain.ErrCorruptPersistedState, i, err)
		}

		booking := domain.Booking{
			Date:        date,
			Slot:        domain.TimeSlot(entry.Time),
			ServiceName: entry.Service,
			ClientName:  entry.Name,
		}

		// Legacy data was appended without a conflict check; the first writer wins.
		if _, dup := seen[booking.Key()]; dup {
			result.duplicates++
			continue
		}
		seen[booking.Key()] = struct{}{}
		result.bookings = append(result.bookings, booking)
	}

	return result, nil
}

// decodeDate reads the calendar date literally from current-layout entries, whatever the
// offset they were written with. Legacy entries hold instants (toISOString output) and
// are converted to the business location first.
func decodeDate(value string, version int, loc *time.Location) (domain.Date, error) {
	if version >= CurrentVersion {
		if len(value) < len(domain.DateLayout) {
			return domain.Date{}, fmt.Errorf("date %q is too short", value)
		}
		return domain.ParseDate(value[:len(domain.DateLayout)])
	}

	at, err := json_types.ParseDateTime(value, loc)
	if err != nil {
		return domain.Date{}, err
	}
	return domain.DateOf(at.In(loc)), nil
}
