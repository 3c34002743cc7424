package bookingstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/catalog"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/observability/metrics"
)

// BlobBookingStore keeps every booking in one serialized blob.
//
// Add and Prune hold mu for the whole read-modify-write, so check-then-write is atomic
// within this process. Writers in other processes sharing the same backend are not
// coordinated; the last Put wins at the storage layer.
type BlobBookingStore struct {
	mu      sync.Mutex
	blob    out.BlobPort
	key     string
	catalog *catalog.Catalog
	logger  out.LoggerPort
	metrics *metrics.BookingMetrics
}

func NewBlobBookingStore(blob out.BlobPort, key string, c *catalog.Catalog, logger out.LoggerPort, m *metrics.BookingMetrics) *BlobBookingStore {
	return &BlobBookingStore{
		blob:    blob,
		key:     key,
		catalog: c,
		logger:  logger.WithModule("BookingStore"),
		metrics: m,
	}
}

func (s *BlobBookingStore) Load(ctx context.Context) []domain.Booking {
	bookings, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.Error("bookingstore.load.read_failed", out.LogFields{
			"key":   s.key,
			"error": err.Error(),
		})
		return []domain.Booking{}
	}
	return bookings
}

func (s *BlobBookingStore) Snapshot(ctx context.Context) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, _, err := s.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("bookingstore.snapshot.read_failed: %w", err)
	}
	return bookings, nil
}

func (s *BlobBookingStore) Prune(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, dirty, err := s.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("bookingstore.prune.read_failed: %w", err)
	}

	kept := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		startsAt, ok := s.catalog.StartOf(b.Date, b.Slot)
		if !ok {
			s.logger.Warn("bookingstore.prune.unresolvable", out.LogFields{
				"date": b.Date.String(),
				"time": string(b.Slot),
			})
			kept = append(kept, b)
			continue
		}
		if startsAt.Before(now) {
			continue
		}
		kept = append(kept, b)
	}

	removed := len(bookings) - len(kept)
	if removed == 0 && !dirty {
		return kept, nil
	}

	if err := s.write(ctx, kept); err != nil {
		return nil, fmt.Errorf("bookingstore.prune.write_failed: %w", err)
	}

	s.metrics.ObservePruned(removed)
	s.logger.Info("bookingstore.prune.completed", out.LogFields{
		"removed":   removed,
		"remaining": len(kept),
	})

	return kept, nil
}

func (s *BlobBookingStore) Add(ctx context.Context, b domain.Booking) error {
	if b.Date.IsZero() {
		return fmt.Errorf("bookingstore.add: %w", domain.ErrStepIncomplete)
	}
	if !s.catalog.Contains(b.Slot) {
		return fmt.Errorf("bookingstore.add: %w: %q", domain.ErrUnknownSlot, b.Slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, _, err := s.read(ctx)
	if err != nil {
		return fmt.Errorf("bookingstore.add.read_failed: %w", err)
	}

	if domain.NewBookingSet(bookings).Has(b.Date, b.Slot) {
		s.logger.Info("bookingstore.add.conflict", out.LogFields{
			"date": b.Date.String(),
			"time": string(b.Slot),
		})
		return domain.ErrAlreadyBooked
	}

	bookings = append(bookings, b)
	if err := s.write(ctx, bookings); err != nil {
		return fmt.Errorf("bookingstore.add.write_failed: %w", err)
	}

	s.logger.Debug("bookingstore.add.stored", out.LogFields{
		"date":  b.Date.String(),
		"time":  string(b.Slot),
		"total": len(bookings),
	})

	return nil
}

// read returns the stored bookings. Corrupt data is logged and treated as empty;
// only backend failures are returned as errors. dirty reports that the blob is not
// in the current layout and should be rewritten.
func (s *BlobBookingStore) read(ctx context.Context) ([]domain.Booking, bool, error) {
	data, exists, err := s.blob.Get(ctx, s.key)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return []domain.Booking{}, false, nil
	}

	result, err := decode(data, s.catalog.Location())
	if err != nil {
		if errors.Is(err, domain.ErrCorruptPersistedState) {
			s.metrics.ObserveCorruptLoad()
			s.logger.Warn("bookingstore.load.corrupt", out.LogFields{
				"key":   s.key,
				"error": err.Error(),
				"bytes": len(data),
			})
			return []domain.Booking{}, true, nil
		}
		return nil, false, err
	}

	if result.duplicates > 0 {
		s.logger.Warn("bookingstore.load.duplicates_dropped", out.LogFields{
			"key":        s.key,
			"duplicates": result.duplicates,
		})
	}

	dirty := result.version != CurrentVersion || result.duplicates > 0
	return result.bookings, dirty, nil
}

func (s *BlobBookingStore) write(ctx context.Context, bookings []domain.Booking) error {
	data, err := encode(bookings, s.catalog.Location())
	if err != nil {
		return err
	}
	return s.blob.Put(ctx, s.key, data)
}
