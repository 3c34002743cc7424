package domain

import (
	"errors"
	"strings"
)

var (
	ErrAlreadyBooked         = errors.New("slot no longer available")
	ErrCorruptPersistedState = errors.New("corrupt persisted bookings")
	ErrUnknownSlot           = errors.New("unknown time slot")
	ErrUnknownService        = errors.New("unknown service")
	ErrSlotUnavailable       = errors.New("slot is not selectable")
	ErrStepIncomplete        = errors.New("current step is incomplete")
	ErrWizardClosed          = errors.New("booking wizard is closed")
	ErrValidation            = errors.New("validation failed")
)

// ValidationError lists the contact fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid contact fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
