package bookingstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/out/logger"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/out/storage"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/catalog"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "bookings"

var (
	june2 = domain.Date{Year: 2025, Month: time.June, Day: 2}
	june3 = domain.Date{Year: 2025, Month: time.June, Day: 3}
)

func newTestStore(t *testing.T) (*BlobBookingStore, *storage.MemoryAdapter) {
	t.Helper()
	blob := storage.NewMemoryAdapter()
	return NewBlobBookingStore(blob, testKey, catalog.Default(time.UTC), logger.NopLogger{}, nil), blob
}

func booking(date domain.Date, slot domain.TimeSlot, name string) domain.Booking {
	return domain.Booking{Date: date, Slot: slot, ServiceName: "Classic Haircut", ClientName: name}
}

func TestBlobBookingStore_LoadEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	bookings := store.Load(context.Background())
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestBlobBookingStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, blob := newTestStore(t)

	want := []domain.Booking{
		booking(june2, "10:00 AM", "Ann"),
		booking(june2, "10:30 AM", "Bob"),
		booking(june3, "10:00 AM", "Cid"),
	}
	for _, b := range want {
		require.NoError(t, store.Add(ctx, b))
	}

	reopened := NewBlobBookingStore(blob, testKey, catalog.Default(time.UTC), logger.NopLogger{}, nil)
	assert.ElementsMatch(t, want, reopened.Load(ctx))
}

func TestBlobBookingStore_RoundTripInNonUTCLocation(t *testing.T) {
	ctx := context.Background()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	blob := storage.NewMemoryAdapter()
	store := NewBlobBookingStore(blob, testKey, catalog.Default(loc), logger.NopLogger{}, nil)

	b := booking(june2, "9:00 AM", "Ann")
	require.NoError(t, store.Add(ctx, b))
	assert.Equal(t, []domain.Booking{b}, store.Load(ctx))
}

func TestBlobBookingStore_DatesSurviveTimezoneChange(t *testing.T) {
	ctx := context.Background()
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	blob := storage.NewMemoryAdapter()
	b := booking(domain.Date{Year: 2030, Month: time.June, Day: 3}, "9:00 AM", "Ann")

	require.NoError(t, NewBlobBookingStore(blob, testKey, catalog.Default(tokyo), logger.NopLogger{}, nil).Add(ctx, b))

	moved := NewBlobBookingStore(blob, testKey, catalog.Default(newYork), logger.NopLogger{}, nil)
	assert.Equal(t, []domain.Booking{b}, moved.Load(ctx))

	kept, err := moved.Prune(ctx, time.Date(2030, time.June, 3, 8, 0, 0, 0, newYork))
	require.NoError(t, err)
	assert.Equal(t, []domain.Booking{b}, kept)
}

func TestBlobBookingStore_NoDoubleBooking(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Add(ctx, booking(june2, "10:00 AM", "Ann")))

	err := store.Add(ctx, booking(june2, "10:00 AM", "Bob"))
	assert.ErrorIs(t, err, domain.ErrAlreadyBooked)

	require.NoError(t, store.Add(ctx, booking(june3, "10:00 AM", "Bob")))
	require.NoError(t, store.Add(ctx, booking(june2, "10:30 AM", "Bob")))

	bookings := store.Load(ctx)
	assert.Len(t, bookings, 3)
	assert.Len(t, domain.NewBookingSet(bookings), 3)
}

func TestBlobBookingStore_ConcurrentAddSameSlot(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	const writers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Add(ctx, booking(june2, "2:00 PM", fmt.Sprintf("client-%d", i)))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrAlreadyBooked):
				rejected++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, rejected)
	assert.Len(t, store.Load(ctx), 1)
}

func TestBlobBookingStore_AddRejectsUnknownSlot(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Add(context.Background(), booking(june2, "8:00 PM", "Ann"))
	assert.ErrorIs(t, err, domain.ErrUnknownSlot)

	err = store.Add(context.Background(), booking(domain.Date{}, "9:00 AM", "Ann"))
	assert.ErrorIs(t, err, domain.ErrStepIncomplete)
}

func TestBlobBookingStore_PruneExpiry(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		retained bool
	}{
		{name: "one minute after start", now: time.Date(2025, time.June, 2, 9, 1, 0, 0, time.UTC), retained: false},
		{name: "one minute before start", now: time.Date(2025, time.June, 2, 8, 59, 0, 0, time.UTC), retained: true},
		{name: "exactly at start", now: time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC), retained: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, _ := newTestStore(t)
			require.NoError(t, store.Add(ctx, booking(june2, "9:00 AM", "Ann")))

			kept, err := store.Prune(ctx, tt.now)
			require.NoError(t, err)

			if tt.retained {
				assert.Len(t, kept, 1)
				assert.Len(t, store.Load(ctx), 1)
			} else {
				assert.Empty(t, kept)
				assert.Empty(t, store.Load(ctx))
			}
		})
	}
}

func TestBlobBookingStore_PruneIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Add(ctx, booking(june2, "9:00 AM", "Ann")))
	require.NoError(t, store.Add(ctx, booking(june2, "3:00 PM", "Bob")))
	require.NoError(t, store.Add(ctx, booking(june3, "9:00 AM", "Cid")))

	now := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	first, err := store.Prune(ctx, now)
	require.NoError(t, err)
	second, err := store.Prune(ctx, now)
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
	assert.ElementsMatch(t, []domain.Booking{
		booking(june2, "3:00 PM", "Bob"),
		booking(june3, "9:00 AM", "Cid"),
	}, second)
}

func TestBlobBookingStore_PruneKeepsOffCatalogSlots(t *testing.T) {
	ctx := context.Background()
	store, blob := newTestStore(t)

	require.NoError(t, blob.Put(ctx, testKey, []byte(`{"version":1,"bookings":[
		{"date":"2025-06-03T00:00:00Z","time":"11:15 PM","service":"Kids Cut","name":"Ann"},
		{"date":"2025-05-30T00:00:00Z","time":"11:15 PM","service":"Kids Cut","name":"Old"},
		{"date":"2025-06-03T00:00:00Z","time":"whenever","service":"Kids Cut","name":"Odd"},
		{"date":"2025-06-03T00:00:00Z","time":"11:00 AM","service":"Kids Cut","name":"Bob"}
	]}`)))

	kept, err := store.Prune(ctx, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []domain.Booking{
		{Date: june3, Slot: "11:15 PM", ServiceName: "Kids Cut", ClientName: "Ann"},
		{Date: june3, Slot: "whenever", ServiceName: "Kids Cut", ClientName: "Odd"},
		{Date: june3, Slot: "11:00 AM", ServiceName: "Kids Cut", ClientName: "Bob"},
	}, kept)
	assert.Equal(t, kept, store.Load(ctx))
}

func TestBlobBookingStore_PruneSurvivesShorterHours(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemoryAdapter()
	farJune3 := domain.Date{Year: 2030, Month: time.June, Day: 3}
	late := booking(farJune3, "7:30 PM", "Ann")

	wide := NewBlobBookingStore(blob, testKey, catalog.Default(time.UTC), logger.NopLogger{}, nil)
	require.NoError(t, wide.Add(ctx, late))

	shortHours, err := catalog.New(9*time.Hour, 19*time.Hour, 30*time.Minute, nil, time.UTC)
	require.NoError(t, err)
	narrow := NewBlobBookingStore(blob, testKey, shortHours, logger.NopLogger{}, nil)

	kept, err := narrow.Prune(ctx, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []domain.Booking{late}, kept)

	restored := NewBlobBookingStore(blob, testKey, catalog.Default(time.UTC), logger.NopLogger{}, nil)
	assert.Equal(t, []domain.Booking{late}, restored.Load(ctx))

	// once its start has passed it expires like any other booking
	kept, err = narrow.Prune(ctx, time.Date(2030, time.June, 3, 19, 31, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestBlobBookingStore_CorruptStateIsEmpty(t *testing.T) {
	payloads := map[string]string{
		"garbage":        `not json at all`,
		"truncated":      `{"version":1,"bookings":[{"date":"2025-06-02`,
		"future version": `{"version":7,"bookings":[]}`,
		"missing time":   `[{"date":"2025-06-02T00:00:00Z","service":"x","name":"y"}]`,
		"bad date":       `[{"date":"yesterday","time":"9:00 AM","service":"x","name":"y"}]`,
		"wrong shape":    `{"version":1,"bookings":"nope"}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, blob := newTestStore(t)
			require.NoError(t, blob.Put(ctx, testKey, []byte(payload)))

			assert.Empty(t, store.Load(ctx))

			// the corrupt blob is replaced on the next write
			require.NoError(t, store.Add(ctx, booking(june2, "9:00 AM", "Ann")))
			assert.Len(t, store.Load(ctx), 1)
		})
	}
}

func TestBlobBookingStore_LegacyArray(t *testing.T) {
	ctx := context.Background()
	store, blob := newTestStore(t)

	legacy := `[
		{"date":"2025-06-02T14:22:10.512Z","time":"10:00 AM","service":"Classic Haircut","name":"Ann"},
		{"date":"2025-06-02T18:00:00.000Z","time":"10:00 AM","service":"Hot Towel Shave","name":"Bob"},
		{"date":"2025-06-03","time":"2:00 PM","service":"Kids Cut","name":"Cid"}
	]`
	require.NoError(t, blob.Put(ctx, testKey, []byte(legacy)))

	bookings := store.Load(ctx)
	assert.Equal(t, []domain.Booking{
		{Date: june2, Slot: "10:00 AM", ServiceName: "Classic Haircut", ClientName: "Ann"},
		{Date: june3, Slot: "2:00 PM", ServiceName: "Kids Cut", ClientName: "Cid"},
	}, bookings)

	// pruning migrates the blob to the versioned layout
	_, err := store.Prune(ctx, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	raw, _, err := blob.Get(ctx, testKey)
	require.NoError(t, err)
	var envelope persistedEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, CurrentVersion, envelope.Version)
	assert.Len(t, envelope.Bookings, 2)
	assert.Equal(t, "2025-06-02T00:00:00Z", envelope.Bookings[0].Date)
}

type failingBlob struct {
	getErr error
	putErr error
}

func (f failingBlob) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return nil, false, nil
}

func (f failingBlob) Put(ctx context.Context, key string, value []byte) error {
	return f.putErr
}

func (f failingBlob) Close() error { return nil }

func TestBlobBookingStore_BackendFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("backend down")

	readFailing := NewBlobBookingStore(failingBlob{getErr: boom}, testKey, catalog.Default(time.UTC), logger.NopLogger{}, nil)
	assert.Empty(t, readFailing.Load(ctx))
	_, err := readFailing.Snapshot(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, readFailing.Add(ctx, booking(june2, "9:00 AM", "Ann")), boom)
	_, err = readFailing.Prune(ctx, time.Now())
	assert.ErrorIs(t, err, boom)

	writeFailing := NewBlobBookingStore(failingBlob{putErr: boom}, testKey, catalog.Default(time.UTC), logger.NopLogger{}, nil)
	err = writeFailing.Add(ctx, booking(june2, "9:00 AM", "Ann"))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrAlreadyBooked)
}
