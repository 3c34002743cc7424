package booking_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/observability/metrics"
	"github.com/go-playground/validator/v10"
)

// OpenSession prunes expired bookings the way the dialog does when it opens.
func (s *BookingService) OpenSession(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.store.Prune(ctx, s.now())
	if err != nil {
		s.logger.Error("booking.session.prune_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("booking.session.prune_failed: %w", err)
	}
	return bookings, nil
}

// ValidateContact requires name and phone; email is optional but must be well formed.
func (s *BookingService) ValidateContact(contact domain.Contact) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Email = strings.TrimSpace(contact.Email)

	err := s.validate.Struct(contact)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fe.Field())
	}
	return &domain.ValidationError{Fields: fields}
}

func (s *BookingService) Submit(ctx context.Context, state domain.WizardState) (domain.Booking, error) {
	logger := s.logger.WithFields(out.LogFields{
		"date":    state.SelectedDate.String(),
		"time":    string(state.SelectedSlot),
		"service": state.SelectedService,
	})

	if err := s.ValidateContact(state.Contact); err != nil {
		s.metrics.ObserveSubmission(metrics.ResultInvalid)
		logger.Info("booking.submit.invalid", out.LogFields{
			"error": err.Error(),
		})
		return domain.Booking{}, err
	}

	if !s.hasService(state.SelectedService) {
		s.metrics.ObserveSubmission(metrics.ResultInvalid)
		return domain.Booking{}, fmt.Errorf("%w: %q", domain.ErrUnknownService, state.SelectedService)
	}

	if state.SelectedDate.IsZero() || state.SelectedSlot.IsEmpty() {
		s.metrics.ObserveSubmission(metrics.ResultInvalid)
		return domain.Booking{}, domain.ErrStepIncomplete
	}

	// Recheck against the store itself, not the cache: time may have moved past the slot
	// or another session may have taken it since it was selected.
	current := domain.NewBookingSet(s.store.Load(ctx))
	if current.Has(state.SelectedDate, state.SelectedSlot) {
		s.metrics.ObserveSubmission(metrics.ResultAlreadyBooked)
		logger.Info("booking.submit.rejected", out.LogFields{
			"reason": "already_booked",
		})
		return domain.Booking{}, domain.ErrAlreadyBooked
	}
	if !s.engine.IsSelectable(state.SelectedDate, state.SelectedSlot, current, s.now()) {
		s.metrics.ObserveSubmission(metrics.ResultUnavailable)
		logger.Info("booking.submit.rejected", out.LogFields{
			"reason": "unavailable",
		})
		return domain.Booking{}, domain.ErrSlotUnavailable
	}

	state.Contact.Name = strings.TrimSpace(state.Contact.Name)
	booking := state.Booking()

	if err := s.store.Add(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrAlreadyBooked) {
			s.invalidateDay(ctx, booking.Date)
			s.metrics.ObserveSubmission(metrics.ResultAlreadyBooked)
			logger.Info("booking.submit.rejected", out.LogFields{
				"reason": "already_booked",
			})
			return domain.Booking{}, err
		}

		s.metrics.ObserveSubmission(metrics.ResultFailed)
		logger.Error("booking.submit.store_failed", out.LogFields{
			"error": err.Error(),
		})
		return domain.Booking{}, fmt.Errorf("booking.submit.store_failed: %w", err)
	}

	s.invalidateDay(ctx, booking.Date)
	s.metrics.ObserveSubmission(metrics.ResultConfirmed)
	logger.Info("booking.submit.confirmed", out.LogFields{
		"name": booking.ClientName,
	})

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
			s.metrics.ObserveNotifyFailure()
			logger.Warn("booking.notify.failed", out.LogFields{
				"error": err.Error(),
			})
		}
	}

	return booking, nil
}

func (s *BookingService) invalidateDay(ctx context.Context, date domain.Date) {
	if s.cache != nil {
		s.cache.InvalidateDay(ctx, date)
	}
}
