package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/timezone"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

var ErrMissingURL = errors.New("rabbitmq url is not configured")

type Client interface {
	Publish(ctx context.Context, queue, messageID string, value any) error
}

type rabbitClientImpl struct {
	url string
}

func New(config *config.Config) Client {
	return &rabbitClientImpl{url: config.Queue.RabbitMQ.URL}
}

// Publish declares queue as durable and sends value as a persistent JSON message
// through the default exchange. A connection is opened per call.
func (r *rabbitClientImpl) Publish(ctx context.Context, queue, messageID string, value any) error {
	if r.url == constant.Empty {
		return ErrMissingURL
	}

	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal rabbitmq message: %w", err)
	}

	conn, err := amqp.Dial(r.url)
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq dial failed")

		return fmt.Errorf("rabbitmq dial failed: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq channel open failed")

		return fmt.Errorf("rabbitmq channel open failed: %w", err)
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("rabbitmq queue declare failed")

		return fmt.Errorf("rabbitmq queue declare failed: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    timezone.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("rabbitmq publish failed")

		return fmt.Errorf("rabbitmq publish failed: %w", err)
	}

	return nil
}
