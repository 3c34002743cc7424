package notifier

import (
	"context"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
)

type LogNotifier struct {
	logger out.LoggerPort
}

func NewLogNotifier(logger out.LoggerPort) *LogNotifier {
	return &LogNotifier{logger: logger.WithModule("LogNotifier")}
}

func (n *LogNotifier) BookingConfirmed(ctx context.Context, booking domain.Booking) error {
	n.logger.Info("booking.confirmed", out.LogFields{
		"date":    booking.Date.String(),
		"time":    string(booking.Slot),
		"service": booking.ServiceName,
		"name":    booking.ClientName,
	})
	return nil
}
