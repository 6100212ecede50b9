package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const TypeAttemptCompleted = "attempt.completed"

// AttemptCompleted is published after an attempt row has been written.
type AttemptCompleted struct {
	AttemptID   string    `json:"attemptId"`
	UserID      string    `json:"userId"`
	TestID      string    `json:"testId"`
	Score       int       `json:"score"`
	TotalMarks  int       `json:"totalMarks"`
	Percentage  int       `json:"percentage"`
	TimeTaken   int       `json:"timeTaken"`
	CompletedAt time.Time `json:"completedAt"`
}

type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// AMQPPublisher publishes events to a topic exchange using the event type as
// routing key.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(amqpURL, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(Envelope{Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", eventType, err)
	}

	log.Debug().Str("type", eventType).Str("exchange", p.exchange).Msg("Publishing event")

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher drops every event. It is used when RabbitMQ is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	log.Debug().Str("type", eventType).Msg("RabbitMQ not configured, event dropped")
	return nil
}
