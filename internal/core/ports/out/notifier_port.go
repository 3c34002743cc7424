package out

import (
	"context"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
)

type NotifierPort interface {
	BookingConfirmed(ctx context.Context, booking domain.Booking) error
}
