package booking_service

import (
	"reflect"
	"strings"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/catalog"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/observability/metrics"
	"github.com/go-playground/validator/v10"
)

type BookingService struct {
	store    out.BookingStorePort
	cache    out.AvailabilityCachePort
	notifier out.NotifierPort
	catalog  *catalog.Catalog
	engine   *Engine
	services []domain.Service
	metrics  *metrics.BookingMetrics
	validate *validator.Validate
	logger   out.LoggerPort
	now      func() time.Time
}

type Option func(*BookingService)

// WithCache enables the per-day availability cache. A nil cache is ignored.
func WithCache(cache out.AvailabilityCachePort) Option {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithNotifier(notifier out.NotifierPort) Option {
	return func(s *BookingService) {
		s.notifier = notifier
	}
}

func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	store out.BookingStorePort,
	c *catalog.Catalog,
	services []domain.Service,
	logger out.LoggerPort,
	opts ...Option,
) *BookingService {
	s := &BookingService{
		store:    store,
		catalog:  c,
		engine:   NewEngine(c),
		services: append([]domain.Service(nil), services...),
		validate: newContactValidator(),
		logger:   logger.WithModule("BookingService"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newContactValidator() *validator.Validate {
	v := validator.New()
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func (s *BookingService) Services() []domain.Service {
	return append([]domain.Service(nil), s.services...)
}

func (s *BookingService) AllSlots() []domain.TimeSlot {
	return s.catalog.AllSlots()
}

func (s *BookingService) Today() domain.Date {
	return s.catalog.Today(s.now())
}

func (s *BookingService) hasService(title string) bool {
	for _, service := range s.services {
		if service.Title == title {
			return true
		}
	}
	return false
}
