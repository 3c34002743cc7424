package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/config"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/json_types"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const EventTypeBookingConfirmed = "booking.confirmed"

// amqpChannel is the part of *amqp.Channel the publisher needs.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type BookingEvent struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	OccurredAt json_types.DateTime `json:"occurredAt"`
	StartsAt   json_types.DateTime `json:"startsAt"`
	Booking    domain.Booking      `json:"booking"`
}

type RabbitMQNotifier struct {
	conn       *amqp.Connection
	channel    amqpChannel
	exchange   string
	routingKey string
	resolve    func(domain.Booking) time.Time
	now        func() time.Time
	logger     out.LoggerPort
}

// NewRabbitMQNotifier dials the broker and declares the exchange. resolve maps a booking
// to the instant it starts.
func NewRabbitMQNotifier(cfg *config.Config, resolve func(domain.Booking) time.Time, logger out.LoggerPort) (*RabbitMQNotifier, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	n, err := newRabbitMQNotifier(channel, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey, resolve, logger)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}
	n.conn = conn

	return n, nil
}

func newRabbitMQNotifier(channel amqpChannel, exchange, routingKey string, resolve func(domain.Booking) time.Time, logger out.LoggerPort) (*RabbitMQNotifier, error) {
	err := channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		logger.Error("rabbitmq.exchange.declare_failed", out.LogFields{
			"exchange": exchange,
			"error":    err.Error(),
		})
		return nil, err
	}

	return &RabbitMQNotifier{
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
		resolve:    resolve,
		now:        time.Now,
		logger:     logger.WithModule("RabbitMQNotifier"),
	}, nil
}

func (n *RabbitMQNotifier) BookingConfirmed(ctx context.Context, booking domain.Booking) error {
	event := BookingEvent{
		ID:         uuid.NewString(),
		Type:       EventTypeBookingConfirmed,
		OccurredAt: json_types.DateTime{Date: n.now()},
		StartsAt:   json_types.DateTime{Date: n.resolve(booking)},
		Booking:    booking,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq.publish.marshal_failed: %w", err)
	}

	err = n.channel.PublishWithContext(ctx, n.exchange, n.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt.Date,
		Type:         event.Type,
		Body:         body,
	})
	if err != nil {
		n.logger.Error("rabbitmq.publish.failed", out.LogFields{
			"eventId": event.ID,
			"error":   err.Error(),
		})
		return fmt.Errorf("rabbitmq.publish.failed: %w", err)
	}

	n.logger.Info("rabbitmq.publish.sent", out.LogFields{
		"eventId":    event.ID,
		"routingKey": n.routingKey,
	})

	return nil
}

func (n *RabbitMQNotifier) Stop() error {
	if n == nil || n.channel == nil {
		return nil
	}

	if err := n.channel.Close(); err != nil {
		return err
	}
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
