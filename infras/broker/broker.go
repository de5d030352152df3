package broker

//go:generate go run go.uber.org/mock/mockgen -source=./broker.go -destination=./mocks/broker_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/infras/kafka"
	"hotelbooker/infras/otel"
	"hotelbooker/infras/rabbitmq"
	"hotelbooker/shared/constant"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DriverNone     = "none"
	DriverKafka    = "kafka"
	DriverRabbitMQ = "rabbitmq"
)

const (
	EventBookingCreated   = "booking.created"
	EventPaymentCompleted = "booking.payment_completed"
	EventPaymentFailed    = "booking.payment_failed"
	EventBookingCancelled = "booking.cancelled"
)

type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	BookingID     string    `json:"bookingId"`
	HotelID       int64     `json:"hotelId"`
	PaymentStatus string    `json:"paymentStatus"`
	Status        string    `json:"status"`
	TotalAmount   int       `json:"totalAmount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Publisher emits booking lifecycle events. Callers treat failures as non fatal.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

func New(cfg *config.Config, otel otel.Otel) Publisher {
	driver := strings.ToLower(cfg.Queue.Driver)

	switch driver {
	case DriverKafka:
		return &kafkaPublisher{client: kafka.New(cfg), topic: cfg.Queue.Topic, otel: otel}
	case DriverRabbitMQ:
		return &rabbitPublisher{client: rabbitmq.New(cfg), queue: cfg.Queue.Topic, otel: otel}
	case DriverNone, constant.Empty:
		return noopPublisher{}
	default:
		log.Warn().Str("driver", driver).Msg("unknown queue driver, booking events are disabled")

		return noopPublisher{}
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(_ context.Context, event Event) error {
	log.Debug().Str("type", event.Type).Str("booking_id", event.BookingID).Msg("booking event dropped, no queue driver")

	return nil
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelBrokerScopeName, constant.OtelBrokerScopeName+".kafka.Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("event_type", event.Type)

	if err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.BookingID, Value: event}); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	return nil
}

type rabbitPublisher struct {
	client rabbitmq.Client
	queue  string
	otel   otel.Otel
}

func (p *rabbitPublisher) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelBrokerScopeName, constant.OtelBrokerScopeName+".rabbitmq.Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("event_type", event.Type)

	if err = p.client.Publish(ctx, p.queue, event.ID, event); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	return nil
}
