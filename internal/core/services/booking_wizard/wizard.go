package booking_wizard

import (
	"context"
	"errors"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/in"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
)

// Wizard drives one booking session through its three steps:
// service, date and time, contact details. A Wizard is not safe for concurrent use.
type Wizard struct {
	useCase   in.BookingUseCase
	logger    out.LoggerPort
	state     domain.WizardState
	lastErr   error
	closed    bool
	submitted bool
}

// Open starts a session. Expired bookings are pruned first; a failed prune is logged
// and the session opens anyway.
func Open(ctx context.Context, useCase in.BookingUseCase, logger out.LoggerPort) *Wizard {
	w := &Wizard{
		useCase: useCase,
		logger:  logger.WithModule("BookingWizard"),
	}

	if _, err := useCase.OpenSession(ctx); err != nil {
		w.logger.Warn("wizard.open.prune_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	w.reset()
	w.logger.Debug("wizard.opened", out.LogFields{
		"date": w.state.SelectedDate.String(),
	})

	return w
}

func (w *Wizard) reset() {
	w.state = domain.NewWizardState(w.useCase.Today())
	w.lastErr = nil
}

func (w *Wizard) State() domain.WizardState {
	return w.state
}

func (w *Wizard) Step() domain.WizardStep {
	if w.submitted {
		return domain.WizardStepSubmitted
	}
	return w.state.Step
}

// Err is the last error surfaced to the user, cleared on the next successful transition.
func (w *Wizard) Err() error {
	return w.lastErr
}

func (w *Wizard) Done() bool {
	return w.closed
}

func (w *Wizard) SelectService(title string) error {
	if w.closed {
		return domain.ErrWizardClosed
	}

	for _, service := range w.useCase.Services() {
		if service.Title == title {
			w.state.SelectedService = title
			return nil
		}
	}
	return domain.ErrUnknownService
}

// SelectDate changes the day. The selected time is cleared when the day changes.
func (w *Wizard) SelectDate(date domain.Date) error {
	if w.closed {
		return domain.ErrWizardClosed
	}

	if date != w.state.SelectedDate {
		w.state.SelectedSlot = ""
	}
	w.state.SelectedDate = date
	return nil
}

// SelectSlot accepts catalog labels only. An empty slot clears the selection.
func (w *Wizard) SelectSlot(slot domain.TimeSlot) error {
	if w.closed {
		return domain.ErrWizardClosed
	}

	if !slot.IsEmpty() && !containsSlot(w.useCase.AllSlots(), slot) {
		return w.fail(domain.ErrUnknownSlot)
	}
	w.state.SelectedSlot = slot
	return nil
}

func containsSlot(slots []domain.TimeSlot, slot domain.TimeSlot) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

func (w *Wizard) SetContact(contact domain.Contact) error {
	if w.closed {
		return domain.ErrWizardClosed
	}

	w.state.Contact = contact
	return nil
}

// Next advances one step if the current step is complete. Leaving the date step also
// requires the chosen slot to still be selectable.
func (w *Wizard) Next(ctx context.Context) error {
	if w.closed {
		return domain.ErrWizardClosed
	}

	switch w.state.Step {
	case domain.WizardStepSelectService:
		if w.state.SelectedService == "" {
			return w.fail(domain.ErrStepIncomplete)
		}

	case domain.WizardStepSelectDateTime:
		if w.state.SelectedDate.IsZero() || w.state.SelectedSlot.IsEmpty() {
			return w.fail(domain.ErrStepIncomplete)
		}

		ok, err := w.useCase.IsSelectable(ctx, w.state.SelectedDate, w.state.SelectedSlot)
		if err != nil {
			return w.fail(err)
		}
		if !ok {
			return w.fail(domain.ErrSlotUnavailable)
		}

	default:
		// details are committed through Submit
		return w.fail(domain.ErrStepIncomplete)
	}

	w.state.Step++
	w.lastErr = nil
	return nil
}

// Back returns to the previous step keeping every field. It is a no-op on the first step.
func (w *Wizard) Back() error {
	if w.closed {
		return domain.ErrWizardClosed
	}

	if w.state.Step > domain.WizardStepSelectService {
		w.state.Step--
	}
	w.lastErr = nil
	return nil
}

// Submit commits the booking. When the slot was taken meanwhile the wizard goes back to
// the date step with the time cleared; on success it resets and closes.
func (w *Wizard) Submit(ctx context.Context) (domain.Booking, error) {
	if w.closed {
		return domain.Booking{}, domain.ErrWizardClosed
	}
	if w.state.Step != domain.WizardStepEnterDetails {
		return domain.Booking{}, w.fail(domain.ErrStepIncomplete)
	}

	booking, err := w.useCase.Submit(ctx, w.state)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyBooked) || errors.Is(err, domain.ErrSlotUnavailable) {
			w.state.Step = domain.WizardStepSelectDateTime
			w.state.SelectedSlot = ""
		}
		return domain.Booking{}, w.fail(err)
	}

	w.logger.Info("wizard.submitted", out.LogFields{
		"date": booking.Date.String(),
		"time": string(booking.Slot),
	})

	w.reset()
	w.closed = true
	w.submitted = true

	return booking, nil
}

func (w *Wizard) Close() {
	if w.closed {
		return
	}
	w.reset()
	w.closed = true
}

func (w *Wizard) fail(err error) error {
	w.lastErr = err
	return err
}
