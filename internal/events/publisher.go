package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher отправляет доменные события во внешнюю шину
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Encode собирает тело сообщения
func Encode(eventType string, payload any, now time.Time) ([]byte, error) {
	body, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: now.UTC(),
		Payload:    payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", eventType, err)
	}
	return body, nil
}

// AMQPPublisher публикует события в topic exchange RabbitMQ
type AMQPPublisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *zap.Logger
	mu     sync.Mutex
}

func NewAMQPPublisher(url string, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}

	logger.Info("Connected to RabbitMQ", zap.String("exchange", ExchangeName))

	return &AMQPPublisher{
		conn:   conn,
		ch:     ch,
		logger: logger,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	body, err := Encode(eventType, payload, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         eventType,
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, ExchangeName, eventType, false, false, msg); err != nil {
		p.logger.Error("Failed to publish event", zap.String("type", eventType), zap.Error(err))
		return fmt.Errorf("publish event %s: %w", eventType, err)
	}

	p.logger.Debug("Event published", zap.String("type", eventType))
	return nil
}

func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("close amqp channel: %w", err)
	}
	return p.conn.Close()
}

// NoopPublisher используется когда AMQP_URL не задан
type NoopPublisher struct {
	Logger *zap.Logger
}

func (p NoopPublisher) Publish(_ context.Context, eventType string, _ any) error {
	if p.Logger != nil {
		p.Logger.Debug("Event dropped, publisher disabled", zap.String("type", eventType))
	}
	return nil
}
